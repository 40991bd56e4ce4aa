package models

type MarketStatus struct {
	CurrentPrice float64
	MaxPrice     float64
	MinPrice     float64
	PctVariation float64
	SMA          float64
	Candles      int
}
