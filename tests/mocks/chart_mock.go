package mocks

import (
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"sync"
)

// ChartMock mimics the candlestick chart: Update replaces the last bar on an equal
// open time and appends otherwise. Coordinates map linearly from Top at row 0
// down by Step per row, for Height rows.
type ChartMock struct {
	Top    float64
	Step   float64
	Height int

	mutex        sync.Mutex
	candles      []models.Candle
	lines        []*PriceLineMock
	setDataCalls int
	updateCalls  int
}

type PriceLineMock struct {
	mutex   sync.Mutex
	options models.PriceLineOptions
	updates int
}

func (line *PriceLineMock) ApplyOptions(options models.PriceLineOptions) {
	line.mutex.Lock()
	defer line.mutex.Unlock()
	line.options = options
	line.updates++
}

func (line *PriceLineMock) Options() models.PriceLineOptions {
	line.mutex.Lock()
	defer line.mutex.Unlock()
	return line.options
}

func (line *PriceLineMock) Updates() int {
	line.mutex.Lock()
	defer line.mutex.Unlock()
	return line.updates
}

func (chartMock *ChartMock) SetData(candles []models.Candle) {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	chartMock.candles = make([]models.Candle, len(candles))
	copy(chartMock.candles, candles)
	chartMock.setDataCalls++
}

func (chartMock *ChartMock) Update(candle models.Candle) {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	chartMock.updateCalls++
	n := len(chartMock.candles)
	if n > 0 && chartMock.candles[n-1].OpenTime == candle.OpenTime {
		chartMock.candles[n-1] = candle
		return
	}
	chartMock.candles = append(chartMock.candles, candle)
}

func (chartMock *ChartMock) CreatePriceLine(options models.PriceLineOptions) interfaces.PriceLine {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	line := &PriceLineMock{options: options}
	chartMock.lines = append(chartMock.lines, line)
	return line
}

func (chartMock *ChartMock) RemovePriceLine(line interfaces.PriceLine) {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	for i, l := range chartMock.lines {
		if interfaces.PriceLine(l) == line {
			chartMock.lines = append(chartMock.lines[:i], chartMock.lines[i+1:]...)
			return
		}
	}
}

func (chartMock *ChartMock) CoordinateToPrice(y int) (float64, bool) {
	if y < 0 || y >= chartMock.Height {
		return 0, false
	}
	return chartMock.Top - float64(y)*chartMock.Step, true
}

func (chartMock *ChartMock) Candles() []models.Candle {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	candles := make([]models.Candle, len(chartMock.candles))
	copy(candles, chartMock.candles)
	return candles
}

func (chartMock *ChartMock) Lines() []*PriceLineMock {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	lines := make([]*PriceLineMock, len(chartMock.lines))
	copy(lines, chartMock.lines)
	return lines
}

func (chartMock *ChartMock) SetDataCalls() int {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	return chartMock.setDataCalls
}

func (chartMock *ChartMock) UpdateCalls() int {
	chartMock.mutex.Lock()
	defer chartMock.mutex.Unlock()
	return chartMock.updateCalls
}
