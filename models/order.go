package models

import "strconv"

// SideType define order side
type SideType string

const (
	SideTypeBuy  SideType = "BUY"
	SideTypeSell SideType = "SELL"
)

// Order is a mocked limit order living only in memory for the session
type Order struct {
	ID     string   `json:"id"`
	Symbol string   `json:"symbol"`
	Price  float64  `json:"price"`
	Amount float64  `json:"amount"`
	Side   SideType `json:"side"`
	Time   int64    `json:"time"`
}

// Label renders the overlay title of the order, e.g. "BUY 2500"
func (o Order) Label() string {
	return string(o.Side) + " " + strconv.FormatFloat(o.Price, 'f', -1, 64)
}

func (o Order) IsBuy() bool {
	return o.Side == SideTypeBuy
}
