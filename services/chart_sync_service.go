package services

import (
	"context"
	"fmt"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"sync"
)

// ChartSyncService owns the candle buffer behind a chart. The buffer is seeded once
// from the historical window and then moved forward by live updates only.
type ChartSyncService struct {
	chart    interfaces.Chart
	history  interfaces.HistoryProvider
	recorder interfaces.CandleRecorder
	symbol   string
	interval string

	mutex   sync.Mutex
	candles []models.Candle
	active  bool
}

func NewChartSyncService(chart interfaces.Chart, history interfaces.HistoryProvider, symbol string, interval string) *ChartSyncService {
	return &ChartSyncService{
		chart:    chart,
		history:  history,
		symbol:   symbol,
		interval: interval,
	}
}

func (cs *ChartSyncService) SetRecorder(recorder interfaces.CandleRecorder) {
	cs.recorder = recorder
}

// SetActive toggles whether live updates reach the buffer and the chart
func (cs *ChartSyncService) SetActive(active bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	cs.active = active
}

func (cs *ChartSyncService) Active() bool {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return cs.active
}

// Seed fetches the historical window and hands the whole ordered series to the chart.
// A failed fetch leaves the chart empty instead of failing.
func (cs *ChartSyncService) Seed(ctx context.Context) int {
	history, err := cs.history.GetCandles(ctx, cs.symbol, cs.interval)
	if err != nil {
		helpers.Logger.Errorln("Error fetching historical data: " + err.Error())
		history = nil
	}

	candles := make([]models.Candle, 0, len(history))
	for _, candle := range history {
		if n := len(candles); n > 0 && candle.OpenTime <= candles[n-1].OpenTime {
			helpers.Logger.Warnln(fmt.Sprintf("skipping out of order historical candle %d", candle.OpenTime))
			continue
		}
		candles = append(candles, candle)
	}

	cs.mutex.Lock()
	cs.candles = candles
	snapshot := cs.snapshotLocked()
	cs.chart.SetData(snapshot)
	cs.mutex.Unlock()

	helpers.Logger.Infoln(fmt.Sprintf("Loaded %d historical candles for %s", len(snapshot), cs.symbol))
	for _, candle := range snapshot {
		cs.record(candle)
	}
	return len(snapshot)
}

// Apply moves the series forward with a live candle. An equal open time replaces the
// in-progress bar and a newer one extends the series; older candles are dropped.
func (cs *ChartSyncService) Apply(candle models.Candle) bool {
	cs.mutex.Lock()
	if !cs.active {
		cs.mutex.Unlock()
		return false
	}

	n := len(cs.candles)
	switch {
	case n > 0 && candle.OpenTime == cs.candles[n-1].OpenTime:
		cs.candles[n-1] = candle
	case n == 0 || candle.OpenTime > cs.candles[n-1].OpenTime:
		cs.candles = append(cs.candles, candle)
	default:
		latest := cs.candles[n-1].OpenTime
		cs.mutex.Unlock()
		helpers.Logger.Warnln(fmt.Sprintf("dropping stale candle %d, latest is %d", candle.OpenTime, latest))
		return false
	}
	cs.chart.Update(candle)
	cs.mutex.Unlock()

	if candle.Closed {
		cs.record(candle)
	}
	return true
}

func (cs *ChartSyncService) Candles() []models.Candle {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return cs.snapshotLocked()
}

func (cs *ChartSyncService) Len() int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	return len(cs.candles)
}

// PriceAt converts a chart row into a price, false when outside the plotted range
func (cs *ChartSyncService) PriceAt(y int) (float64, bool) {
	return cs.chart.CoordinateToPrice(y)
}

func (cs *ChartSyncService) snapshotLocked() []models.Candle {
	candles := make([]models.Candle, len(cs.candles))
	copy(candles, cs.candles)
	return candles
}

func (cs *ChartSyncService) record(candle models.Candle) {
	if cs.recorder == nil {
		return
	}
	if err := cs.recorder.AddOrUpdateCandle(candle, cs.symbol); err != nil {
		helpers.Logger.Errorln("error recording candle: " + err.Error())
	}
}
