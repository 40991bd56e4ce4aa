package paper

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/models"
	"sync"
	"time"
)

// PaperService is the mocked order entry: orders are accepted immediately and
// only live in memory. Fields are not validated here.
type PaperService struct {
	symbol string
	orders []models.Order
	mutex  sync.Mutex
	now    func() time.Time
}

func NewPaperService(symbol string) *PaperService {
	return &PaperService{
		symbol: symbol,
		now:    time.Now,
	}
}

func (paperService *PaperService) Submit(price float64, amount float64, side models.SideType) models.Order {
	order := models.Order{
		ID:     uuid.NewString(),
		Symbol: paperService.symbol,
		Price:  price,
		Amount: amount,
		Side:   side,
		Time:   paperService.now().Unix(),
	}

	paperService.mutex.Lock()
	paperService.orders = append(paperService.orders, order)
	paperService.mutex.Unlock()

	helpers.Logger.Infoln(fmt.Sprintf("Limit order placed: %s %v @ %v (%s)", order.Side, order.Amount, order.Price, order.ID))
	return order
}

func (paperService *PaperService) CancelAll() {
	paperService.mutex.Lock()
	count := len(paperService.orders)
	paperService.orders = nil
	paperService.mutex.Unlock()

	helpers.Logger.Infoln(fmt.Sprintf("Cancelled %d open orders", count))
}

func (paperService *PaperService) Orders() []models.Order {
	paperService.mutex.Lock()
	defer paperService.mutex.Unlock()

	orders := make([]models.Order, len(paperService.orders))
	copy(orders, paperService.orders)
	return orders
}

func (paperService *PaperService) OpenBuyOrdersCount() int {
	count := 0
	for _, order := range paperService.Orders() {
		if order.Side == models.SideTypeBuy {
			count++
		}
	}
	return count
}

func (paperService *PaperService) OpenSellOrdersCount() int {
	count := 0
	for _, order := range paperService.Orders() {
		if order.Side == models.SideTypeSell {
			count++
		}
	}
	return count
}
