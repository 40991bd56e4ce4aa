package ui

import (
	"context"
	"fmt"
	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/models"
	"github.com/yahengsu/bullpen/services"
	"math"
	"time"
)

const (
	tradeTab = iota
	tasksTab
)

const (
	statusWindow = 60
	sidebarWidth = 34
)

type UserInterface struct {
	TaskService *services.TaskService
	TradeView   *services.TradeViewService
	Chart       *CandleChart

	tabPane        *widgets.TabPane
	taskLists      []*widgets.List
	taskIDs        [][]string
	focusedList    int
	scoreParagraph *widgets.Paragraph
	statusBox      *widgets.Paragraph
	ordersList     *widgets.List
	helpParagraph  *widgets.Paragraph
	formParagraph  *widgets.Paragraph
	form           *OrderForm
	width          int
	height         int
	dirty          bool
}

func NewUserInterface(taskService *services.TaskService, tradeView *services.TradeViewService, chart *CandleChart) *UserInterface {
	ui := &UserInterface{
		TaskService:    taskService,
		TradeView:      tradeView,
		Chart:          chart,
		tabPane:        widgets.NewTabPane("Trade", "Tasks"),
		scoreParagraph: widgets.NewParagraph(),
		statusBox:      widgets.NewParagraph(),
		ordersList:     widgets.NewList(),
		helpParagraph:  widgets.NewParagraph(),
		formParagraph:  widgets.NewParagraph(),
	}

	ui.Chart.Title = tradeView.Symbol()
	ui.Chart.TitleStyle.Fg = termui.ColorYellow
	ui.scoreParagraph.Title = "Score"
	ui.statusBox.Title = "Market Status"
	ui.statusBox.BorderStyle.Fg = termui.ColorYellow
	ui.statusBox.TitleStyle.Fg = termui.ColorYellow
	ui.ordersList.Title = "Open Orders"
	ui.formParagraph.Title = "Place Limit Order"
	ui.formParagraph.BorderStyle.Fg = termui.ColorCyan

	for _, list := range taskService.Lists() {
		taskList := widgets.NewList()
		taskList.Title = list.Title
		taskList.SelectedRowStyle = termui.NewStyle(termui.ColorBlack, termui.ColorWhite)
		ui.taskLists = append(ui.taskLists, taskList)

		ids := make([]string, 0, len(list.Tasks))
		for _, task := range list.Tasks {
			ids = append(ids, task.ID)
		}
		ui.taskIDs = append(ui.taskIDs, ids)
	}
	ui.updateTasks()
	return ui
}

// Run mounts the trade view and blocks on the event loop until the user quits or the
// context is cancelled. The trade view is unmounted on the way out.
func (ui *UserInterface) Run(ctx context.Context) error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer termui.Close()

	ui.Layout(termui.TerminalDimensions())
	loading := widgets.NewParagraph()
	loading.Text = "Loading " + ui.TradeView.Symbol() + " history..."
	loading.SetRect(0, 0, 40, 3)
	termui.Render(loading)

	ui.TradeView.Mount(ctx)
	defer ui.TradeView.Unmount()
	ui.Render()

	uiEvents := termui.PollEvents()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-uiEvents:
			if ui.HandleEvent(e) {
				helpers.Logger.Infoln("Exited by keyboard interrupt")
				return nil
			}
			ui.Render()
		case <-ticker.C:
			ui.Render()
		}
	}
}

// HandleEvent applies one termui event and reports whether the app should quit
func (ui *UserInterface) HandleEvent(e termui.Event) bool {
	switch e.ID {
	case "q", "<C-c>":
		return true
	case "<Resize>":
		if payload, ok := e.Payload.(termui.Resize); ok {
			ui.Layout(payload.Width, payload.Height)
		}
		return false
	case "<Tab>":
		ui.SwitchTab((ui.tabPane.ActiveTabIndex + 1) % len(ui.tabPane.TabNames))
		return false
	}

	if ui.tabPane.ActiveTabIndex == tasksTab {
		ui.handleTasksEvent(e)
	} else {
		ui.handleTradeEvent(e)
	}
	return false
}

// SwitchTab shows a tab; the trade feed only runs while its tab is on screen
func (ui *UserInterface) SwitchTab(index int) {
	if index == ui.tabPane.ActiveTabIndex {
		return
	}
	ui.tabPane.ActiveTabIndex = index
	ui.form = nil
	ui.dirty = true
	ui.TradeView.SetVisible(index == tradeTab)
}

func (ui *UserInterface) ActiveTab() int {
	return ui.tabPane.ActiveTabIndex
}

func (ui *UserInterface) Form() *OrderForm {
	return ui.form
}

func (ui *UserInterface) handleTasksEvent(e termui.Event) {
	ui.updateTasks()
	list := ui.taskLists[ui.focusedList]
	switch e.ID {
	case "<Up>", "k":
		list.ScrollUp()
	case "<Down>", "j":
		list.ScrollDown()
	case "<Left>", "h":
		ui.focusedList = (ui.focusedList + len(ui.taskLists) - 1) % len(ui.taskLists)
	case "<Right>", "l":
		ui.focusedList = (ui.focusedList + 1) % len(ui.taskLists)
	case "<Enter>", "<Space>":
		ids := ui.taskIDs[ui.focusedList]
		if list.SelectedRow >= 0 && list.SelectedRow < len(ids) {
			ui.TaskService.Toggle(ids[list.SelectedRow])
		}
	}
}

func (ui *UserInterface) handleTradeEvent(e termui.Event) {
	if ui.form != nil {
		switch e.ID {
		case "<Escape>":
			ui.form = nil
			ui.dirty = true
		case "<Enter>":
			ui.submitForm()
		default:
			ui.form.HandleKey(e.ID)
		}
		return
	}

	switch e.ID {
	case "<MouseLeft>":
		mouse, ok := e.Payload.(termui.Mouse)
		if !ok || !ui.Chart.Contains(mouse.X, mouse.Y) {
			return
		}
		if price, ok := ui.TradeView.PriceAt(mouse.Y); ok {
			ui.form = NewOrderForm(math.Round(price*100) / 100)
		}
	case "c":
		ui.TradeView.CancelAllOrders()
	}
}

func (ui *UserInterface) submitForm() {
	amount, err := ui.form.Amount()
	if err != nil {
		ui.form.SetError(err)
		return
	}
	ui.TradeView.PlaceOrder(ui.form.Price, amount, ui.form.Side)
	ui.form = nil
	ui.dirty = true
}

// Layout sizes every widget for a terminal of w columns and h rows
func (ui *UserInterface) Layout(w int, h int) {
	ui.width, ui.height = w, h
	ui.dirty = true

	ui.tabPane.SetRect(0, 0, w, 3)
	ui.helpParagraph.SetRect(0, h-3, w, h)

	ui.Chart.SetRect(0, 3, w-sidebarWidth, h-3)
	ui.statusBox.SetRect(w-sidebarWidth, 3, w, 12)
	ui.ordersList.SetRect(w-sidebarWidth, 12, w, h-3)
	ui.formParagraph.SetRect(w/2-22, h/2-5, w/2+22, h/2+5)

	ui.scoreParagraph.SetRect(0, 3, w, 6)
	for i, list := range ui.taskLists {
		x1 := i * w / len(ui.taskLists)
		x2 := (i + 1) * w / len(ui.taskLists)
		list.SetRect(x1, 6, x2, h-3)
	}
}

func (ui *UserInterface) Render() {
	if ui.dirty {
		termui.Clear()
		ui.dirty = false
	}

	if ui.tabPane.ActiveTabIndex == tasksTab {
		ui.updateTasks()
		items := []termui.Drawable{ui.tabPane, ui.scoreParagraph, ui.helpParagraph}
		for _, list := range ui.taskLists {
			items = append(items, list)
		}
		termui.Render(items...)
		return
	}

	ui.updateTrade()
	items := []termui.Drawable{ui.tabPane, ui.Chart, ui.statusBox, ui.ordersList, ui.helpParagraph}
	if ui.form != nil {
		ui.formParagraph.Text = ui.form.Text()
		items = append(items, ui.formParagraph)
	}
	termui.Render(items...)
}

func (ui *UserInterface) updateTasks() {
	ui.scoreParagraph.Text = fmt.Sprintf("[Total Points: %d](fg:yellow,mod:bold)", ui.TaskService.Score())
	ui.helpParagraph.Text = "<Tab> trade  <Up>/<Down> select  <Left>/<Right> list  <Enter> claim  <q> quit"

	for i, list := range ui.TaskService.Lists() {
		rows := make([]string, 0, len(list.Tasks))
		for _, task := range list.Tasks {
			rows = append(rows, ui.taskRow(task))
		}
		ui.taskLists[i].Rows = rows
		ui.taskLists[i].BorderStyle.Fg = termui.ColorWhite
		ui.taskLists[i].SelectedRowStyle = ui.taskLists[i].TextStyle
		if i == ui.focusedList {
			ui.taskLists[i].BorderStyle.Fg = termui.ColorCyan
			ui.taskLists[i].SelectedRowStyle = termui.NewStyle(termui.ColorBlack, termui.ColorWhite)
		}
	}
}

func (ui *UserInterface) taskRow(task models.Task) string {
	var row string
	switch task.Status {
	case models.TaskStatusClaimed:
		row = fmt.Sprintf("[✔ %s  %d pts](fg:green)", task.Description, task.Points)
	case models.TaskStatusLocked:
		row = fmt.Sprintf("[✖ %s  %d pts  locked](fg:red)", task.Description, task.Points)
	default:
		row = fmt.Sprintf("○ %s  %d pts", task.Description, task.Points)
	}
	if ui.TaskService.IsAnimating(task.ID) {
		row += fmt.Sprintf("  [+%d](fg:yellow,mod:bold)", task.Points)
	}
	return row
}

func (ui *UserInterface) updateTrade() {
	ui.helpParagraph.Text = "<Tab> tasks  <click> limit order  <c> cancel all  <q> quit"

	ui.statusBox.Text = fmt.Sprintf("Feed: %s\n", ui.TradeView.ConnectionState())
	status, err := ui.TradeView.Status(statusWindow)
	if err != nil {
		ui.statusBox.Text += "No market data yet"
	} else {
		ui.statusBox.Text += fmt.Sprintf("[Current Price: %.2f](fg:blue)\n", status.CurrentPrice)
		ui.statusBox.Text += fmt.Sprintf("Max Price: %.2f\n", status.MaxPrice)
		ui.statusBox.Text += fmt.Sprintf("Min Price: %.2f\n", status.MinPrice)
		ui.statusBox.Text += fmt.Sprintf("Oscillation: %.2f%%\n", status.PctVariation)
		ui.statusBox.Text += fmt.Sprintf("SMA(%d): %.2f\n", statusWindow, status.SMA)
		ui.statusBox.Text += fmt.Sprintf("Candles: %d", status.Candles)
	}

	orders := ui.TradeView.Orders()
	rows := make([]string, 0, len(orders))
	for _, order := range orders {
		color := "red"
		if order.IsBuy() {
			color = "green"
		}
		rows = append(rows, fmt.Sprintf("[%s](fg:%s) %v", order.Label(), color, order.Amount))
	}
	ui.ordersList.Rows = rows
	ui.ordersList.ScrollBottom()
}
