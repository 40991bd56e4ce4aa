package models

import "time"

// Candle is a single 1-minute OHLC bar. OpenTime is expressed in whole unix seconds.
type Candle struct {
	OpenTime int64   `json:"time"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
	Closed   bool    `json:"closed"`
}

// MillisToSeconds truncates an exchange millisecond timestamp to whole seconds
func MillisToSeconds(ms int64) int64 {
	return ms / 1000
}

func (c Candle) Time() time.Time {
	return time.Unix(c.OpenTime, 0)
}
