package mocks

import (
	"context"
	"github.com/yahengsu/bullpen/models"
	"sync"
)

// ProviderMock serves a fixed historical window
type ProviderMock struct {
	Candles []models.Candle
	Err     error

	mutex sync.Mutex
	calls int
}

func (providerMock *ProviderMock) GetCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error) {
	providerMock.mutex.Lock()
	defer providerMock.mutex.Unlock()
	providerMock.calls++
	if providerMock.Err != nil {
		return nil, providerMock.Err
	}
	candles := make([]models.Candle, len(providerMock.Candles))
	copy(candles, providerMock.Candles)
	return candles, nil
}

func (providerMock *ProviderMock) Calls() int {
	providerMock.mutex.Lock()
	defer providerMock.mutex.Unlock()
	return providerMock.calls
}

// RecorderMock keeps every recorded candle in memory
type RecorderMock struct {
	Err error

	mutex   sync.Mutex
	candles []models.Candle
}

func (recorderMock *RecorderMock) AddOrUpdateCandle(candle models.Candle, symbol string) error {
	recorderMock.mutex.Lock()
	defer recorderMock.mutex.Unlock()
	recorderMock.candles = append(recorderMock.candles, candle)
	return recorderMock.Err
}

func (recorderMock *RecorderMock) Recorded() []models.Candle {
	recorderMock.mutex.Lock()
	defer recorderMock.mutex.Unlock()
	candles := make([]models.Candle, len(recorderMock.candles))
	copy(candles, recorderMock.candles)
	return candles
}
