package ui

import (
	"github.com/gizak/termui/v3"
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"image"
	"math"
	"strconv"
	"sync"
)

const axisWidth = 12

// CandleChart draws one column per candle with the newest bar on the right edge once
// the series is wider than the plot. Order price lines are drawn across the plot with
// their title on the price axis.
//
// The embedded Block mutex is held by termui.Render while drawing, so the series and
// the lines are guarded by their own lock.
type CandleChart struct {
	termui.Block
	UpColor   termui.Color
	DownColor termui.Color
	AxisColor termui.Color

	dataMutex sync.Mutex
	candles   []models.Candle
	lines     []*chartPriceLine
}

type chartPriceLine struct {
	chart   *CandleChart
	options models.PriceLineOptions
}

func NewCandleChart() *CandleChart {
	return &CandleChart{
		Block:     *termui.NewBlock(),
		UpColor:   termui.ColorGreen,
		DownColor: termui.ColorRed,
		AxisColor: termui.ColorWhite,
	}
}

func (chart *CandleChart) SetData(candles []models.Candle) {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	chart.candles = make([]models.Candle, len(candles))
	copy(chart.candles, candles)
}

// Update replaces the last bar when the open time matches and appends newer bars
func (chart *CandleChart) Update(candle models.Candle) {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	n := len(chart.candles)
	switch {
	case n > 0 && chart.candles[n-1].OpenTime == candle.OpenTime:
		chart.candles[n-1] = candle
	case n == 0 || candle.OpenTime > chart.candles[n-1].OpenTime:
		chart.candles = append(chart.candles, candle)
	}
}

func (chart *CandleChart) CreatePriceLine(options models.PriceLineOptions) interfaces.PriceLine {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	line := &chartPriceLine{chart: chart, options: options}
	chart.lines = append(chart.lines, line)
	return line
}

func (chart *CandleChart) RemovePriceLine(line interfaces.PriceLine) {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	for i, l := range chart.lines {
		if interfaces.PriceLine(l) == line {
			chart.lines = append(chart.lines[:i], chart.lines[i+1:]...)
			return
		}
	}
}

// CoordinateToPrice converts a screen row into a price using the scale of the bars
// currently on screen
func (chart *CandleChart) CoordinateToPrice(y int) (float64, bool) {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()

	plot := chart.plotRect()
	if plot.Empty() || y < plot.Min.Y || y >= plot.Max.Y {
		return 0, false
	}
	low, high, ok := priceRange(chart.visibleLocked(plot.Dx()))
	if !ok {
		return 0, false
	}
	rows := plot.Dy() - 1
	if rows == 0 {
		return high, true
	}
	return high - float64(y-plot.Min.Y)*(high-low)/float64(rows), true
}

func (chart *CandleChart) Len() int {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	return len(chart.candles)
}

func (chart *CandleChart) PriceLines() []models.PriceLineOptions {
	chart.dataMutex.Lock()
	defer chart.dataMutex.Unlock()
	options := make([]models.PriceLineOptions, len(chart.lines))
	for i, line := range chart.lines {
		options[i] = line.options
	}
	return options
}

// Contains reports whether a screen point falls inside the plot area
func (chart *CandleChart) Contains(x int, y int) bool {
	return image.Pt(x, y).In(chart.plotRect())
}

func (chart *CandleChart) Draw(buf *termui.Buffer) {
	chart.Block.Draw(buf)

	chart.dataMutex.Lock()
	plot := chart.plotRect()
	visible := chart.visibleLocked(plot.Dx())
	lines := make([]models.PriceLineOptions, len(chart.lines))
	for i, line := range chart.lines {
		lines[i] = line.options
	}
	chart.dataMutex.Unlock()

	if plot.Empty() {
		return
	}
	low, high, ok := priceRange(visible)
	if !ok {
		buf.SetString("waiting for data", termui.NewStyle(chart.AxisColor), plot.Min)
		return
	}
	row := func(price float64) int {
		if plot.Dy() == 1 {
			return plot.Min.Y
		}
		return plot.Min.Y + int(math.Round((high-price)/(high-low)*float64(plot.Dy()-1)))
	}

	for i, candle := range visible {
		x := plot.Min.X + i
		style := termui.NewStyle(chart.UpColor)
		if candle.Close < candle.Open {
			style = termui.NewStyle(chart.DownColor)
		}
		for y := row(candle.High); y <= row(candle.Low); y++ {
			buf.SetCell(termui.NewCell('│', style), image.Pt(x, y))
		}
		top, bottom := row(math.Max(candle.Open, candle.Close)), row(math.Min(candle.Open, candle.Close))
		for y := top; y <= bottom; y++ {
			buf.SetCell(termui.NewCell('█', style), image.Pt(x, y))
		}
	}

	axisX := plot.Max.X + 1
	axisStyle := termui.NewStyle(chart.AxisColor)
	buf.SetString(formatPrice(high), axisStyle, image.Pt(axisX, plot.Min.Y))
	buf.SetString(formatPrice(low), axisStyle, image.Pt(axisX, plot.Max.Y-1))
	last := visible[len(visible)-1]
	buf.SetString(formatPrice(last.Close), termui.NewStyle(termui.ColorBlack, termui.ColorCyan), image.Pt(axisX, row(last.Close)))

	for _, line := range lines {
		if line.Price < low || line.Price > high {
			continue
		}
		y := row(line.Price)
		style := termui.NewStyle(lineColor(line.Color))
		for x := plot.Min.X; x < plot.Max.X; x++ {
			if r := lineStyleRune(line.LineStyle, x-plot.Min.X); r != ' ' {
				buf.SetCell(termui.NewCell(r, style), image.Pt(x, y))
			}
		}
		if line.AxisLabelVisible {
			buf.SetString(termui.TrimString(line.Title, chart.Inner.Max.X-axisX), termui.NewStyle(termui.ColorBlack, lineColor(line.Color)), image.Pt(axisX, y))
		}
	}
}

func (line *chartPriceLine) ApplyOptions(options models.PriceLineOptions) {
	line.chart.dataMutex.Lock()
	defer line.chart.dataMutex.Unlock()
	line.options = options
}

func (line *chartPriceLine) Options() models.PriceLineOptions {
	line.chart.dataMutex.Lock()
	defer line.chart.dataMutex.Unlock()
	return line.options
}

func (chart *CandleChart) plotRect() image.Rectangle {
	inner := chart.Inner
	if inner.Dx() <= axisWidth+1 {
		return image.Rectangle{}
	}
	return image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X-axisWidth-1, inner.Max.Y)
}

func (chart *CandleChart) visibleLocked(width int) []models.Candle {
	if width <= 0 {
		return nil
	}
	if len(chart.candles) > width {
		return chart.candles[len(chart.candles)-width:]
	}
	return chart.candles
}

func priceRange(candles []models.Candle) (float64, float64, bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	low, high := candles[0].Low, candles[0].High
	for _, candle := range candles[1:] {
		low = math.Min(low, candle.Low)
		high = math.Max(high, candle.High)
	}
	if high == low {
		low--
		high++
	}
	return low, high, true
}

func lineColor(color string) termui.Color {
	switch color {
	case models.ColorGreen:
		return termui.ColorGreen
	case models.ColorRed:
		return termui.ColorRed
	default:
		return termui.ColorWhite
	}
}

// lineStyleRune returns the rune drawn at offset x of a horizontal line, a space for gaps
func lineStyleRune(style models.LineStyle, x int) rune {
	switch style {
	case models.LineStyleDotted:
		if x%2 == 1 {
			return ' '
		}
		return '·'
	case models.LineStyleDashed:
		if x%4 == 3 {
			return ' '
		}
		return '─'
	default:
		return '─'
	}
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
