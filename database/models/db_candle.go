package database

import (
	"github.com/yahengsu/bullpen/models"
	"gorm.io/gorm"
)

// Candle is a recorded bar, unique per symbol and open time
type Candle struct {
	gorm.Model
	Symbol   string  `json:"symbol" gorm:"uniqueIndex:idx_symbol_open_time;size:200"`
	OpenTime int64   `json:"openTime" gorm:"uniqueIndex:idx_symbol_open_time"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
	Closed   bool    `json:"closed"`
}

func (c Candle) ToCandle() models.Candle {
	return models.Candle{
		OpenTime: c.OpenTime,
		Open:     c.Open,
		High:     c.High,
		Low:      c.Low,
		Close:    c.Close,
		Volume:   c.Volume,
		Closed:   c.Closed,
	}
}
