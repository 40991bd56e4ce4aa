package ui

import (
	"context"
	"github.com/gizak/termui/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahengsu/bullpen/models"
	"github.com/yahengsu/bullpen/providers/paper"
	"github.com/yahengsu/bullpen/services"
	"github.com/yahengsu/bullpen/tests/mocks"
	"testing"
	"time"
)

func newTestUserInterface(t *testing.T) (*UserInterface, *mocks.TransportMock) {
	chart := NewCandleChart()
	transport := mocks.NewTransportMock()
	history := &mocks.ProviderMock{Candles: []models.Candle{
		{OpenTime: 60, Open: 2450, High: 2600, Low: 2440, Close: 2550},
		{OpenTime: 120, Open: 2550, High: 2560, Low: 2400, Close: 2500},
	}}
	tradeView := services.NewTradeViewService(chart, history, mocks.DecoderMock{}, transport, paper.NewPaperService("ethusdt"),
		services.TradeViewConfig{Symbol: "ethusdt", Interval: "1m", Policy: services.DefaultReconnectPolicy()})
	tradeView.Feed().SetAfterFunc((&mocks.SchedulerMock{}).AfterFunc)

	ui := NewUserInterface(services.NewTaskService(services.DefaultTaskLists(), time.Second), tradeView, chart)
	ui.Layout(120, 40)
	tradeView.Mount(context.Background())
	require.NotNil(t, transport.WaitConn())
	t.Cleanup(tradeView.Unmount)
	return ui, transport
}

func key(id string) termui.Event {
	return termui.Event{Type: termui.KeyboardEvent, ID: id}
}

func click(x int, y int) termui.Event {
	return termui.Event{Type: termui.MouseEvent, ID: "<MouseLeft>", Payload: termui.Mouse{X: x, Y: y}}
}

func TestClickOpensOrderFormAndPlacesOrder(t *testing.T) {
	ui, _ := newTestUserInterface(t)

	ui.HandleEvent(click(10, 4))
	require.NotNil(t, ui.Form())
	assert.Equal(t, 2600.0, ui.Form().Price)

	for _, id := range []string{"1", ".", "5", "s", "<Enter>"} {
		assert.False(t, ui.HandleEvent(key(id)))
	}

	assert.Nil(t, ui.Form())
	orders := ui.TradeView.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, models.SideTypeSell, orders[0].Side)
	assert.Equal(t, 1.5, orders[0].Amount)
	assert.Equal(t, 2600.0, orders[0].Price)

	lines := ui.Chart.PriceLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "SELL 2600", lines[0].Title)
	assert.Equal(t, models.ColorRed, lines[0].Color)
}

func TestClickedPriceIsRoundedToCents(t *testing.T) {
	ui, _ := newTestUserInterface(t)

	ui.HandleEvent(click(10, 20))
	require.NotNil(t, ui.Form())
	assert.Equal(t, 2496.77, ui.Form().Price)
}

func TestClickOutsideChartIsIgnored(t *testing.T) {
	ui, _ := newTestUserInterface(t)

	ui.HandleEvent(click(100, 20))
	assert.Nil(t, ui.Form())
	ui.HandleEvent(click(10, 1))
	assert.Nil(t, ui.Form())
}

func TestOrderFormEscapeAndEmptyAmount(t *testing.T) {
	ui, _ := newTestUserInterface(t)

	ui.HandleEvent(click(10, 4))
	ui.HandleEvent(key("<Enter>"))
	require.NotNil(t, ui.Form())
	assert.Empty(t, ui.TradeView.Orders())

	ui.HandleEvent(key("<Escape>"))
	assert.Nil(t, ui.Form())
	assert.Empty(t, ui.TradeView.Orders())
}

func TestCancelAllKey(t *testing.T) {
	ui, _ := newTestUserInterface(t)
	ui.TradeView.PlaceOrder(2500, 1, models.SideTypeBuy)
	ui.TradeView.PlaceOrder(2550, 1, models.SideTypeSell)
	require.Len(t, ui.Chart.PriceLines(), 2)

	ui.HandleEvent(key("c"))

	assert.Empty(t, ui.TradeView.Orders())
	assert.Empty(t, ui.Chart.PriceLines())
}

func TestTabSwitchPausesFeed(t *testing.T) {
	ui, transport := newTestUserInterface(t)
	require.Eventually(t, func() bool { return ui.TradeView.ConnectionState() == models.Connected }, time.Second, 5*time.Millisecond)

	ui.HandleEvent(key("<Tab>"))
	assert.Equal(t, tasksTab, ui.ActiveTab())
	assert.False(t, ui.TradeView.Visible())
	assert.Equal(t, models.Disconnected, ui.TradeView.ConnectionState())

	ui.HandleEvent(key("<Tab>"))
	assert.Equal(t, tradeTab, ui.ActiveTab())
	require.NotNil(t, transport.WaitConn())
	assert.Eventually(t, func() bool { return ui.TradeView.ConnectionState() == models.Connected }, time.Second, 5*time.Millisecond)
}

func TestClaimTasksFromKeyboard(t *testing.T) {
	ui, _ := newTestUserInterface(t)
	ui.HandleEvent(key("<Tab>"))
	assert.Equal(t, 16, ui.TaskService.Score())

	ui.HandleEvent(key("<Enter>"))
	assert.Equal(t, 17, ui.TaskService.Score())

	ui.HandleEvent(key("<Down>"))
	ui.HandleEvent(key("<Down>"))
	ui.HandleEvent(key("<Enter>"))
	assert.Equal(t, 17, ui.TaskService.Score())

	ui.HandleEvent(key("<Right>"))
	ui.HandleEvent(key("<Down>"))
	ui.HandleEvent(key("<Enter>"))
	assert.Equal(t, 17, ui.TaskService.Score())

	ui.HandleEvent(key("<Up>"))
	ui.HandleEvent(key("<Enter>"))
	assert.Equal(t, 67, ui.TaskService.Score())
	assert.True(t, ui.TaskService.IsAnimating("w1"))
	assert.Contains(t, ui.taskRow(mustTask(t, ui, "w1")), "+50")
}

func TestQuitKeys(t *testing.T) {
	ui, _ := newTestUserInterface(t)
	assert.True(t, ui.HandleEvent(key("q")))
	assert.True(t, ui.HandleEvent(key("<C-c>")))
	assert.False(t, ui.HandleEvent(key("x")))
}

func mustTask(t *testing.T, ui *UserInterface, id string) models.Task {
	task, ok := ui.TaskService.Task(id)
	require.True(t, ok)
	return task
}
