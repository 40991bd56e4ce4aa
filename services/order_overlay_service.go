package services

import (
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"sort"
	"sync"
)

// OrderOverlayService keeps exactly one price line on the chart per live order
type OrderOverlayService struct {
	chart interfaces.Chart
	lines map[string]interfaces.PriceLine
	mutex sync.Mutex
}

func NewOrderOverlayService(chart interfaces.Chart) *OrderOverlayService {
	return &OrderOverlayService{
		chart: chart,
		lines: make(map[string]interfaces.PriceLine),
	}
}

// Reconcile drops lines of orders that are gone, then updates or creates a line for
// every order in the set.
func (ob *OrderOverlayService) Reconcile(orders []models.Order) {
	ob.mutex.Lock()
	defer ob.mutex.Unlock()

	live := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		live[order.ID] = struct{}{}
	}

	for id, line := range ob.lines {
		if _, ok := live[id]; !ok {
			ob.chart.RemovePriceLine(line)
			delete(ob.lines, id)
		}
	}

	for _, order := range orders {
		options := models.NewOrderPriceLineOptions(order)
		if line, ok := ob.lines[order.ID]; ok {
			line.ApplyOptions(options)
			continue
		}
		if line := ob.chart.CreatePriceLine(options); line != nil {
			ob.lines[order.ID] = line
		}
	}
}

// RemoveAll clears every tracked line, used when the chart goes away
func (ob *OrderOverlayService) RemoveAll() {
	ob.mutex.Lock()
	defer ob.mutex.Unlock()
	for id, line := range ob.lines {
		ob.chart.RemovePriceLine(line)
		delete(ob.lines, id)
	}
}

func (ob *OrderOverlayService) IDs() []string {
	ob.mutex.Lock()
	defer ob.mutex.Unlock()
	ids := make([]string, 0, len(ob.lines))
	for id := range ob.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ob *OrderOverlayService) Count() int {
	ob.mutex.Lock()
	defer ob.mutex.Unlock()
	return len(ob.lines)
}
