package ui

import (
	"fmt"
	"github.com/yahengsu/bullpen/models"
	"strconv"
	"strings"
)

// OrderForm is the limit order popup opened by clicking the chart. The price comes
// from the click and cannot be edited.
type OrderForm struct {
	Price  float64
	Side   models.SideType
	amount string
	err    string
}

func NewOrderForm(price float64) *OrderForm {
	return &OrderForm{
		Price: price,
		Side:  models.SideTypeBuy,
	}
}

// HandleKey applies a keyboard event id and reports whether the form used it
func (form *OrderForm) HandleKey(id string) bool {
	switch {
	case id == "b":
		form.Side = models.SideTypeBuy
	case id == "s":
		form.Side = models.SideTypeSell
	case id == "<Backspace>" || id == "<C-<Backspace>>":
		if form.amount != "" {
			form.amount = form.amount[:len(form.amount)-1]
		}
	case id == ".":
		if strings.Contains(form.amount, ".") {
			return false
		}
		form.amount += id
	case len(id) == 1 && id[0] >= '0' && id[0] <= '9':
		form.amount += id
	default:
		return false
	}
	form.err = ""
	return true
}

func (form *OrderForm) AmountText() string {
	return form.amount
}

func (form *OrderForm) Amount() (float64, error) {
	amount, err := strconv.ParseFloat(form.amount, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", form.amount)
	}
	return amount, nil
}

func (form *OrderForm) SetError(err error) {
	form.err = err.Error()
}

func (form *OrderForm) Text() string {
	buy, sell := "( ) BUY", "( ) SELL"
	if form.Side == models.SideTypeBuy {
		buy = "[(•) BUY](fg:green)"
	} else {
		sell = "[(•) SELL](fg:red)"
	}

	text := fmt.Sprintf("Price:  %s\n", strconv.FormatFloat(form.Price, 'f', 2, 64))
	text += fmt.Sprintf("Amount: %s_\n", form.amount)
	text += fmt.Sprintf("Side:   %s  %s\n", buy, sell)
	if form.err != "" {
		text += fmt.Sprintf("[%s](fg:red)\n", form.err)
	}
	text += "\n<b>/<s> side  <Enter> place  <Esc> close"
	return text
}
