package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/adshao/go-binance/v2"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/models"
	"strconv"
	"strings"
)

const klineEventType = "kline"

// BinanceService reads public market data: the historical kline window over REST
// and the kline stream address/payloads for the live feed.
type BinanceService struct {
	binanceClient *binance.Client
	streamBaseURL string
}

func NewBinanceService(restBaseURL string, streamBaseURL string) *BinanceService {
	client := binance.NewClient("", "")
	if restBaseURL != "" {
		client.BaseURL = restBaseURL
	}
	return &BinanceService{
		binanceClient: client,
		streamBaseURL: strings.TrimRight(streamBaseURL, "/"),
	}
}

// GetCandles fetches the default historical window for symbol. Rows whose prices
// cannot be parsed are logged and skipped.
func (binanceService *BinanceService) GetCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error) {
	klines, err := binanceService.binanceClient.NewKlinesService().Symbol(strings.ToUpper(symbol)).
		Interval(interval).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting klines: %w", err)
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		candle, err := klineToCandle(k)
		if err != nil {
			helpers.Logger.Warnln(fmt.Sprintf("skipping kline %d of %s: %v", k.OpenTime, symbol, err))
			continue
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func (binanceService *BinanceService) StreamURL(symbol string, interval string) string {
	return fmt.Sprintf("%s/ws/%s@kline_%s", binanceService.streamBaseURL, strings.ToLower(symbol), interval)
}

// DecodeKline turns a kline stream payload into a candle
func (binanceService *BinanceService) DecodeKline(message []byte) (models.Candle, error) {
	var event binance.WsKlineEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return models.Candle{}, fmt.Errorf("error decoding kline event: %w", err)
	}
	if event.Event != klineEventType {
		return models.Candle{}, fmt.Errorf("unexpected event type %q", event.Event)
	}

	prices, err := helpers.ParseOHLC(event.Kline.Open, event.Kline.High, event.Kline.Low, event.Kline.Close)
	if err != nil {
		return models.Candle{}, err
	}

	return models.Candle{
		OpenTime: models.MillisToSeconds(event.Kline.StartTime),
		Open:     prices[0],
		High:     prices[1],
		Low:      prices[2],
		Close:    prices[3],
		Volume:   parseVolume(event.Kline.Volume),
		Closed:   event.Kline.IsFinal,
	}, nil
}

func klineToCandle(k *binance.Kline) (models.Candle, error) {
	prices, err := helpers.ParseOHLC(k.Open, k.High, k.Low, k.Close)
	if err != nil {
		return models.Candle{}, err
	}
	return models.Candle{
		OpenTime: models.MillisToSeconds(k.OpenTime),
		Open:     prices[0],
		High:     prices[1],
		Low:      prices[2],
		Close:    prices[3],
		Volume:   parseVolume(k.Volume),
		Closed:   true,
	}, nil
}

// volume is informational only, a malformed value reads as zero
func parseVolume(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
