package models

// LineStyle define price line dash style
type LineStyle int

const (
	LineStyleSolid LineStyle = iota
	LineStyleDotted
	LineStyleDashed
)

const (
	ColorGreen = "green"
	ColorRed   = "red"
)

// PriceLineOptions describes a horizontal price annotation drawn over the chart
type PriceLineOptions struct {
	Price            float64
	Color            string
	Title            string
	LineWidth        int
	LineStyle        LineStyle
	AxisLabelVisible bool
}

// NewOrderPriceLineOptions returns the overlay options for an order line
func NewOrderPriceLineOptions(order Order) PriceLineOptions {
	color := ColorRed
	if order.IsBuy() {
		color = ColorGreen
	}
	return PriceLineOptions{
		Price:            order.Price,
		Color:            color,
		Title:            order.Label(),
		LineWidth:        2,
		LineStyle:        LineStyleDotted,
		AxisLabelVisible: true,
	}
}
