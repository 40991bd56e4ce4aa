package interfaces

import "github.com/yahengsu/bullpen/models"

type (
	// Chart is the rendering surface for a candlestick series. Update replaces the
	// latest bar when the open time matches and extends the series when it is newer.
	Chart interface {
		SetData(candles []models.Candle)
		Update(candle models.Candle)
		CreatePriceLine(options models.PriceLineOptions) PriceLine
		RemovePriceLine(line PriceLine)
		CoordinateToPrice(y int) (float64, bool)
	}

	PriceLine interface {
		ApplyOptions(options models.PriceLineOptions)
		Options() models.PriceLineOptions
	}
)
