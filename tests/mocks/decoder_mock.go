package mocks

import (
	"encoding/json"
	"fmt"
	"github.com/yahengsu/bullpen/models"
)

// DecoderMock reads candles encoded as plain models.Candle JSON
type DecoderMock struct{}

func (decoderMock DecoderMock) StreamURL(symbol string, interval string) string {
	return fmt.Sprintf("mock://stream/ws/%s@kline_%s", symbol, interval)
}

func (decoderMock DecoderMock) DecodeKline(message []byte) (models.Candle, error) {
	var candle models.Candle
	if err := json.Unmarshal(message, &candle); err != nil {
		return models.Candle{}, fmt.Errorf("error decoding mock kline: %w", err)
	}
	return candle, nil
}

// EncodeCandle is the inverse of DecodeKline, used to feed ConnMock
func EncodeCandle(candle models.Candle) []byte {
	message, _ := json.Marshal(candle)
	return message
}
