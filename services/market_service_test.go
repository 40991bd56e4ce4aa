package services

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahengsu/bullpen/models"
	"testing"
)

type staticCandles []models.Candle

func (candles staticCandles) Candles() []models.Candle {
	return candles
}

func TestMarketStatusWholeBuffer(t *testing.T) {
	marketService := NewMarketService(staticCandles(seedCandles()), "1m")

	status, err := marketService.Status(0)
	require.NoError(t, err)
	assert.Equal(t, 4, status.Candles)
	assert.InDelta(t, 104, status.CurrentPrice, 1e-9)
	assert.InDelta(t, 104, status.MaxPrice, 1e-9)
	assert.InDelta(t, 99, status.MinPrice, 1e-9)
	assert.InDelta(t, 4, status.PctVariation, 1e-9)
	assert.InDelta(t, 101.75, status.SMA, 1e-9)
}

func TestMarketStatusWindow(t *testing.T) {
	marketService := NewMarketService(staticCandles(seedCandles()), "1m")

	status, err := marketService.Status(2)
	require.NoError(t, err)
	assert.InDelta(t, 102.5, status.SMA, 1e-9)
	assert.InDelta(t, 104, status.MaxPrice, 1e-9)
	assert.InDelta(t, 100, status.MinPrice, 1e-9)
	assert.InDelta(t, (104.0-102.0)*100/102.0, status.PctVariation, 1e-9)
}

func TestMarketStatusEmpty(t *testing.T) {
	marketService := NewMarketService(staticCandles(nil), "1m")
	_, err := marketService.Status(10)
	assert.Error(t, err)
}

func TestTimeSeriesKeepsEveryCandle(t *testing.T) {
	marketService := NewMarketService(staticCandles(seedCandles()), "1m")
	series := marketService.TimeSeries()
	require.Len(t, series.Candles, 4)
	assert.InDelta(t, 104, series.LastCandle().ClosePrice.Float(), 1e-9)
}

func TestCurrentPricePercentile(t *testing.T) {
	marketService := NewMarketService(staticCandles(seedCandles()), "1m")
	percentile, err := marketService.CurrentPricePercentile(0)
	require.NoError(t, err)
	assert.InDelta(t, 100, percentile, 1e-9)

	flat := staticCandles{{OpenTime: 60, Open: 1, High: 1, Low: 1, Close: 1}}
	percentile, err = NewMarketService(flat, "1m").CurrentPricePercentile(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, percentile)
}
