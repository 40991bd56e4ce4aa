package services

import (
	"context"
	"github.com/yahengsu/bullpen/interfaces"
	"github.com/yahengsu/bullpen/models"
	"sync"
)

type TradeViewConfig struct {
	Symbol   string
	Interval string
	Policy   ReconnectPolicy
}

// TradeViewService is one mounted trading panel. It owns the live feed, the candle
// buffer behind its chart, the order lines drawn over it and the mocked order book.
type TradeViewService struct {
	config     TradeViewConfig
	chartSync  *ChartSyncService
	feed       *FeedService
	overlay    *OrderOverlayService
	orderEntry interfaces.OrderEntry
	market     *MarketService

	mutex   sync.Mutex
	mounted bool
	visible bool
}

func NewTradeViewService(chart interfaces.Chart, history interfaces.HistoryProvider, decoder interfaces.KlineDecoder,
	transport interfaces.FeedTransport, orderEntry interfaces.OrderEntry, config TradeViewConfig) *TradeViewService {

	chartSync := NewChartSyncService(chart, history, config.Symbol, config.Interval)
	feed := NewFeedService(transport, decoder, config.Symbol, config.Interval, config.Policy, func(candle models.Candle) {
		chartSync.Apply(candle)
	})

	return &TradeViewService{
		config:     config,
		chartSync:  chartSync,
		feed:       feed,
		overlay:    NewOrderOverlayService(chart),
		orderEntry: orderEntry,
		market:     NewMarketService(chartSync, config.Interval),
	}
}

func (tv *TradeViewService) SetRecorder(recorder interfaces.CandleRecorder) {
	tv.chartSync.SetRecorder(recorder)
}

func (tv *TradeViewService) Feed() *FeedService {
	return tv.feed
}

func (tv *TradeViewService) Symbol() string {
	return tv.config.Symbol
}

// Mount seeds the chart from history, draws the existing orders and opens the feed
func (tv *TradeViewService) Mount(ctx context.Context) {
	tv.mutex.Lock()
	if tv.mounted {
		tv.mutex.Unlock()
		return
	}
	tv.mounted = true
	tv.visible = true
	tv.mutex.Unlock()

	tv.chartSync.SetActive(true)
	tv.chartSync.Seed(ctx)

	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	if !tv.mounted {
		return
	}
	tv.overlay.Reconcile(tv.orderEntry.Orders())
	if tv.visible {
		tv.feed.Connect()
	}
}

// SetVisible pauses the feed while the panel is hidden and resumes it when shown
func (tv *TradeViewService) SetVisible(visible bool) {
	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	if !tv.mounted || tv.visible == visible {
		return
	}
	tv.visible = visible
	tv.chartSync.SetActive(visible)
	if visible {
		tv.feed.Connect()
	} else {
		tv.feed.Disconnect()
	}
}

// Unmount stops the feed, cancels retries and removes every order line
func (tv *TradeViewService) Unmount() {
	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	if !tv.mounted {
		return
	}
	tv.mounted = false
	tv.visible = false
	tv.chartSync.SetActive(false)
	tv.feed.Disconnect()
	tv.overlay.RemoveAll()
}

func (tv *TradeViewService) Mounted() bool {
	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	return tv.mounted
}

func (tv *TradeViewService) Visible() bool {
	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	return tv.visible
}

func (tv *TradeViewService) PlaceOrder(price float64, amount float64, side models.SideType) models.Order {
	order := tv.orderEntry.Submit(price, amount, side)
	tv.syncOverlay()
	return order
}

func (tv *TradeViewService) CancelAllOrders() {
	tv.orderEntry.CancelAll()
	tv.syncOverlay()
}

func (tv *TradeViewService) Orders() []models.Order {
	return tv.orderEntry.Orders()
}

func (tv *TradeViewService) OverlayIDs() []string {
	return tv.overlay.IDs()
}

func (tv *TradeViewService) PriceAt(y int) (float64, bool) {
	return tv.chartSync.PriceAt(y)
}

func (tv *TradeViewService) Candles() []models.Candle {
	return tv.chartSync.Candles()
}

func (tv *TradeViewService) ConnectionState() models.ConnectionState {
	return tv.feed.State()
}

func (tv *TradeViewService) Status(window int) (models.MarketStatus, error) {
	return tv.market.Status(window)
}

// syncOverlay redraws order lines; a panel that is not mounted has no chart to draw on
func (tv *TradeViewService) syncOverlay() {
	tv.mutex.Lock()
	defer tv.mutex.Unlock()
	if !tv.mounted {
		return
	}
	tv.overlay.Reconcile(tv.orderEntry.Orders())
}
