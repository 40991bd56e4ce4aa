package services

import (
	"fmt"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"time"
)

// MarketService derives summary figures from the chart buffer through a techan series
type MarketService struct {
	source   interfaces.CandleSource
	interval time.Duration
}

func NewMarketService(source interfaces.CandleSource, interval string) *MarketService {
	duration, err := helpers.IntervalToDuration(interval)
	if err != nil || duration <= 0 {
		duration = time.Minute
	}
	return &MarketService{
		source:   source,
		interval: duration,
	}
}

// TimeSeries rebuilds a techan series from the current buffer snapshot
func (marketService *MarketService) TimeSeries() *techan.TimeSeries {
	series := techan.NewTimeSeries()
	for _, c := range marketService.source.Candles() {
		candle := techan.NewCandle(techan.NewTimePeriod(c.Time(), marketService.interval))
		candle.OpenPrice = big.NewDecimal(c.Open)
		candle.ClosePrice = big.NewDecimal(c.Close)
		candle.MaxPrice = big.NewDecimal(c.High)
		candle.MinPrice = big.NewDecimal(c.Low)
		candle.Volume = big.NewDecimal(c.Volume)
		series.AddCandle(candle)
	}
	return series
}

// Status summarises the last window candles; a window of 0 covers the whole buffer
func (marketService *MarketService) Status(window int) (models.MarketStatus, error) {
	series := marketService.TimeSeries()
	n := len(series.Candles)
	if n == 0 {
		return models.MarketStatus{}, fmt.Errorf("error: no candles loaded")
	}
	if window <= 0 || window > n {
		window = n
	}

	recent := series.Candles[n-window:]
	highs := make([]float64, 0, window)
	lows := make([]float64, 0, window)
	for _, candle := range recent {
		highs = append(highs, candle.MaxPrice.Float())
		lows = append(lows, candle.MinPrice.Float())
	}

	currentPrice := series.LastCandle().ClosePrice.Float()
	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(series), window).Calculate(n - 1)

	return models.MarketStatus{
		CurrentPrice: currentPrice,
		MaxPrice:     helpers.Max(highs),
		MinPrice:     helpers.Min(lows),
		PctVariation: helpers.PctVariation(recent[0].OpenPrice.Float(), currentPrice),
		SMA:          sma.Float(),
		Candles:      n,
	}, nil
}

// CurrentPricePercentile places the last close inside the window's low/high range
func (marketService *MarketService) CurrentPricePercentile(window int) (float64, error) {
	status, err := marketService.Status(window)
	if err != nil {
		return 0, err
	}
	spread := status.MaxPrice - status.MinPrice
	if spread == 0 {
		return 0, nil
	}
	return (status.CurrentPrice - status.MinPrice) * 100 / spread, nil
}
