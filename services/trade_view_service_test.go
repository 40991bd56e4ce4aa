package services

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahengsu/bullpen/models"
	"github.com/yahengsu/bullpen/providers/paper"
	"github.com/yahengsu/bullpen/tests/mocks"
	"testing"
	"time"
)

type tradeViewFixture struct {
	view      *TradeViewService
	chart     *mocks.ChartMock
	transport *mocks.TransportMock
	scheduler *mocks.SchedulerMock
}

func newTradeViewFixture() tradeViewFixture {
	chart := &mocks.ChartMock{Top: 2700, Step: 10, Height: 30}
	transport := mocks.NewTransportMock()
	scheduler := &mocks.SchedulerMock{}
	view := NewTradeViewService(chart, &mocks.ProviderMock{Candles: seedCandles()}, mocks.DecoderMock{}, transport,
		paper.NewPaperService("ethusdt"), TradeViewConfig{Symbol: "ethusdt", Interval: "1m", Policy: DefaultReconnectPolicy()})
	view.Feed().SetAfterFunc(scheduler.AfterFunc)
	return tradeViewFixture{view: view, chart: chart, transport: transport, scheduler: scheduler}
}

func (fixture tradeViewFixture) mount(t *testing.T) *mocks.ConnMock {
	fixture.view.Mount(context.Background())
	conn := fixture.transport.WaitConn()
	require.NotNil(t, conn)
	require.Eventually(t, func() bool { return fixture.view.ConnectionState() == models.Connected }, waitFor, tick)
	return conn
}

func TestMountSeedsThenStreams(t *testing.T) {
	fixture := newTradeViewFixture()
	conn := fixture.mount(t)
	defer fixture.view.Unmount()

	assert.True(t, fixture.view.Mounted())
	assert.True(t, fixture.view.Visible())
	assert.Equal(t, 1, fixture.chart.SetDataCalls())

	conn.Push(mocks.EncodeCandle(models.Candle{OpenTime: 240, Open: 101, High: 105, Low: 101, Close: 105}))
	require.Eventually(t, func() bool { return fixture.chart.UpdateCalls() == 1 }, waitFor, tick)
	candles := fixture.chart.Candles()
	require.Len(t, candles, 4)
	assert.Equal(t, 105.0, candles[3].Close)

	conn.Push(mocks.EncodeCandle(models.Candle{OpenTime: 300, Open: 105, High: 106, Low: 104, Close: 106}))
	require.Eventually(t, func() bool { return len(fixture.chart.Candles()) == 5 }, waitFor, tick)
	assert.Equal(t, 5, len(fixture.view.Candles()))
}

func TestHiddenPanelDisconnectsWithoutRetry(t *testing.T) {
	fixture := newTradeViewFixture()
	conn := fixture.mount(t)
	defer fixture.view.Unmount()

	fixture.view.SetVisible(false)

	assert.False(t, fixture.view.Visible())
	assert.Equal(t, models.Disconnected, fixture.view.ConnectionState())
	assert.True(t, conn.IsClosed())
	assert.Never(t, func() bool { return len(fixture.scheduler.Timers()) > 0 }, 100*time.Millisecond, tick)
	assert.Equal(t, 1, fixture.transport.DialCount())
}

func TestVisibleAgainReconnectsAndAppliesUpdates(t *testing.T) {
	fixture := newTradeViewFixture()
	fixture.mount(t)
	defer fixture.view.Unmount()

	fixture.view.SetVisible(false)
	fixture.view.SetVisible(false)
	fixture.view.SetVisible(true)

	conn := fixture.transport.WaitConn()
	require.NotNil(t, conn)
	require.Eventually(t, func() bool { return fixture.view.ConnectionState() == models.Connected }, waitFor, tick)
	assert.Equal(t, 2, fixture.transport.DialCount())

	conn.Push(mocks.EncodeCandle(models.Candle{OpenTime: 300, Close: 107}))
	assert.Eventually(t, func() bool { return len(fixture.view.Candles()) == 5 }, waitFor, tick)
	assert.Equal(t, 1, fixture.chart.SetDataCalls())
}

func TestUpdatesWhileHiddenAreDropped(t *testing.T) {
	fixture := newTradeViewFixture()
	fixture.mount(t)
	defer fixture.view.Unmount()

	fixture.view.SetVisible(false)
	assert.False(t, fixture.view.chartSync.Apply(models.Candle{OpenTime: 300, Close: 1}))
	assert.Equal(t, 0, fixture.chart.UpdateCalls())
}

func TestOrdersDrawnAndCancelled(t *testing.T) {
	fixture := newTradeViewFixture()
	fixture.mount(t)
	defer fixture.view.Unmount()

	buy := fixture.view.PlaceOrder(2500, 1, models.SideTypeBuy)
	sell := fixture.view.PlaceOrder(2600, 0.25, models.SideTypeSell)

	lines := fixture.chart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, models.ColorGreen, lines[0].Options().Color)
	assert.Equal(t, "BUY 2500", lines[0].Options().Title)
	assert.Equal(t, models.ColorRed, lines[1].Options().Color)
	assert.Equal(t, "SELL 2600", lines[1].Options().Title)
	assert.ElementsMatch(t, []string{buy.ID, sell.ID}, fixture.view.OverlayIDs())
	assert.Len(t, fixture.view.Orders(), 2)

	fixture.view.CancelAllOrders()

	assert.Empty(t, fixture.chart.Lines())
	assert.Empty(t, fixture.view.OverlayIDs())
	assert.Empty(t, fixture.view.Orders())
}

func TestOrderFromClickedPrice(t *testing.T) {
	fixture := newTradeViewFixture()
	fixture.mount(t)
	defer fixture.view.Unmount()

	price, ok := fixture.view.PriceAt(20)
	require.True(t, ok)
	assert.Equal(t, 2500.0, price)

	fixture.view.PlaceOrder(price, 1, models.SideTypeBuy)
	require.Len(t, fixture.chart.Lines(), 1)
	assert.Equal(t, 2500.0, fixture.chart.Lines()[0].Options().Price)

	_, ok = fixture.view.PriceAt(30)
	assert.False(t, ok)
}

func TestUnmountStopsFeedAndClearsLines(t *testing.T) {
	fixture := newTradeViewFixture()
	conn := fixture.mount(t)
	fixture.view.PlaceOrder(2500, 1, models.SideTypeBuy)

	fixture.view.Unmount()

	assert.False(t, fixture.view.Mounted())
	assert.True(t, conn.IsClosed())
	assert.Empty(t, fixture.chart.Lines())
	assert.Never(t, func() bool { return len(fixture.scheduler.Timers()) > 0 }, 100*time.Millisecond, tick)

	fixture.view.PlaceOrder(2600, 1, models.SideTypeSell)
	assert.Empty(t, fixture.chart.Lines())
	fixture.view.SetVisible(true)
	assert.Equal(t, models.Disconnected, fixture.view.ConnectionState())
}

func TestStatusFromBuffer(t *testing.T) {
	fixture := newTradeViewFixture()
	fixture.mount(t)
	defer fixture.view.Unmount()

	status, err := fixture.view.Status(0)
	require.NoError(t, err)
	assert.InDelta(t, 104, status.CurrentPrice, 1e-9)
	assert.Equal(t, 4, status.Candles)
}
