package services

import (
	"context"
	"fmt"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"math"
	"sync"
	"time"
)

// ReconnectPolicy controls how a dropped feed is retried. The zero Multiplier and
// MaxAttempts mean a fixed delay retried forever.
type ReconnectPolicy struct {
	Delay       time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
	MaxAttempts int
}

func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Delay:      helpers.DefaultReconnectDelay,
		Multiplier: 1,
	}
}

// NextDelay returns the wait before the given retry attempt, starting at 1
func (p ReconnectPolicy) NextDelay(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	if attempt < 1 {
		attempt = 1
	}
	delay := time.Duration(float64(p.Delay) * math.Pow(multiplier, float64(attempt-1)))
	if p.MaxDelay > 0 && (delay > p.MaxDelay || delay < 0) {
		delay = p.MaxDelay
	}
	return delay
}

// FeedService keeps at most one kline stream open for a symbol and reconnects
// on its own after the stream drops.
//
// Disconnected --Connect--> Connecting --open--> Connected --close--> Disconnected (retry scheduled)
// any --Disconnect--> Disconnected (retry cancelled)
//
// Every dial gets a generation number. Callbacks carrying an older generation
// belong to a connection that was dropped on purpose and are ignored.
type FeedService struct {
	transport interfaces.FeedTransport
	decoder   interfaces.KlineDecoder
	symbol    string
	interval  string
	policy    ReconnectPolicy
	afterFunc interfaces.AfterFunc
	onCandle  func(models.Candle)

	mutex          sync.Mutex
	state          models.ConnectionState
	generation     uint64
	conn           interfaces.FeedConn
	cancelDial     context.CancelFunc
	reconnectTimer interfaces.Timer
	attempts       int
}

func NewFeedService(transport interfaces.FeedTransport, decoder interfaces.KlineDecoder, symbol string,
	interval string, policy ReconnectPolicy, onCandle func(models.Candle)) *FeedService {
	return &FeedService{
		transport: transport,
		decoder:   decoder,
		symbol:    symbol,
		interval:  interval,
		policy:    policy,
		onCandle:  onCandle,
		afterFunc: func(d time.Duration, f func()) interfaces.Timer {
			return time.AfterFunc(d, f)
		},
		state: models.Disconnected,
	}
}

func (fs *FeedService) SetAfterFunc(afterFunc interfaces.AfterFunc) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.afterFunc = afterFunc
}

func (fs *FeedService) State() models.ConnectionState {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return fs.state
}

// Connect opens the stream unless one is already open or opening
func (fs *FeedService) Connect() {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.connectLocked()
}

// Disconnect closes the stream and cancels any pending reconnect
func (fs *FeedService) Disconnect() {
	fs.mutex.Lock()
	fs.generation++
	fs.stopReconnectTimerLocked()
	if fs.cancelDial != nil {
		fs.cancelDial()
		fs.cancelDial = nil
	}
	conn := fs.conn
	fs.conn = nil
	fs.attempts = 0
	wasConnected := fs.state != models.Disconnected
	fs.state = models.Disconnected
	fs.mutex.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if wasConnected {
		helpers.Logger.Infoln("WebSocket disconnected: " + fs.symbol)
	}
}

func (fs *FeedService) connectLocked() {
	if fs.state != models.Disconnected {
		return
	}

	fs.generation++
	generation := fs.generation
	ctx, cancel := context.WithCancel(context.Background())
	fs.cancelDial = cancel
	fs.state = models.Connecting

	url := fs.decoder.StreamURL(fs.symbol, fs.interval)
	helpers.Logger.Debugln("WebSocket connecting: " + url)
	go fs.dial(ctx, generation, url)
}

func (fs *FeedService) dial(ctx context.Context, generation uint64, url string) {
	conn, err := fs.transport.Dial(ctx, url)
	if err != nil {
		fs.onError(generation, err)
		fs.onClose(generation)
		return
	}
	if !fs.onOpen(generation, conn) {
		_ = conn.Close()
		return
	}
	fs.readMessages(generation, conn)
}

func (fs *FeedService) readMessages(generation uint64, conn interfaces.FeedConn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			fs.onError(generation, err)
			fs.onClose(generation)
			return
		}
		fs.onMessage(generation, message)
	}
}

func (fs *FeedService) onOpen(generation uint64, conn interfaces.FeedConn) bool {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if generation != fs.generation {
		return false
	}

	if fs.cancelDial != nil {
		fs.cancelDial()
		fs.cancelDial = nil
	}
	fs.stopReconnectTimerLocked()
	fs.attempts = 0
	fs.conn = conn
	fs.state = models.Connected
	helpers.Logger.Infoln("WebSocket connected: " + fs.symbol)
	return true
}

// onMessage decodes one payload. Bad payloads are dropped and the stream stays up.
func (fs *FeedService) onMessage(generation uint64, message []byte) {
	candle, err := fs.decoder.DecodeKline(message)
	if err != nil {
		helpers.Logger.Errorln("Error parsing WebSocket data: " + err.Error())
		return
	}
	if !fs.isCurrent(generation) {
		return
	}
	if fs.onCandle != nil {
		fs.onCandle(candle)
	}
}

func (fs *FeedService) onError(generation uint64, err error) {
	if !fs.isCurrent(generation) {
		helpers.Logger.Debugln("WebSocket closed after disconnect: " + err.Error())
		return
	}
	helpers.Logger.Errorln("WebSocket error: " + err.Error())
}

func (fs *FeedService) onClose(generation uint64) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if generation != fs.generation {
		return
	}

	if fs.conn != nil {
		_ = fs.conn.Close()
		fs.conn = nil
	}
	if fs.cancelDial != nil {
		fs.cancelDial()
		fs.cancelDial = nil
	}
	fs.state = models.Disconnected
	helpers.Logger.Warnln("WebSocket disconnected: " + fs.symbol)
	fs.scheduleReconnectLocked()
}

func (fs *FeedService) scheduleReconnectLocked() {
	fs.stopReconnectTimerLocked()
	fs.attempts++
	if fs.policy.MaxAttempts > 0 && fs.attempts > fs.policy.MaxAttempts {
		helpers.Logger.Errorln(fmt.Sprintf("giving up on %s stream after %d reconnect attempts", fs.symbol, fs.policy.MaxAttempts))
		return
	}

	delay := fs.policy.NextDelay(fs.attempts)
	generation := fs.generation
	fs.reconnectTimer = fs.afterFunc(delay, func() { fs.retry(generation) })
	helpers.Logger.Infoln(fmt.Sprintf("Reconnecting to %s stream in %s", fs.symbol, delay))
}

func (fs *FeedService) retry(generation uint64) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if generation != fs.generation || fs.reconnectTimer == nil {
		return
	}
	fs.reconnectTimer = nil
	fs.connectLocked()
}

func (fs *FeedService) stopReconnectTimerLocked() {
	if fs.reconnectTimer != nil {
		fs.reconnectTimer.Stop()
		fs.reconnectTimer = nil
	}
}

func (fs *FeedService) isCurrent(generation uint64) bool {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return generation == fs.generation
}
