package interfaces

import (
	"context"
	"github.com/yahengsu/bullpen/models"
	"time"
)

type (
	// FeedConn is a single open stream connection. ReadMessage blocks until a frame
	// arrives or the connection fails.
	FeedConn interface {
		ReadMessage() (messageType int, p []byte, err error)
		Close() error
	}

	FeedTransport interface {
		Dial(ctx context.Context, url string) (FeedConn, error)
	}

	HistoryProvider interface {
		GetCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error)
	}

	KlineDecoder interface {
		StreamURL(symbol string, interval string) string
		DecodeKline(message []byte) (models.Candle, error)
	}

	CandleRecorder interface {
		AddOrUpdateCandle(candle models.Candle, symbol string) error
	}
)

type (
	Timer interface {
		Stop() bool
	}

	// AfterFunc schedules f after d, time.AfterFunc shaped
	AfterFunc func(d time.Duration, f func()) Timer

	CandleSource interface {
		Candles() []models.Candle
	}

	OrderEntry interface {
		Submit(price float64, amount float64, side models.SideType) models.Order
		CancelAll()
		Orders() []models.Order
	}
)
