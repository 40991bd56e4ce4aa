package main

import (
	"fmt"
	"github.com/urfave/cli/v2"
	"github.com/yahengsu/bullpen/database"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/providers/binance"
	"github.com/yahengsu/bullpen/providers/paper"
	"github.com/yahengsu/bullpen/services"
	"github.com/yahengsu/bullpen/ui"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	app := &cli.App{
		Name:  "bullpen",
		Usage: "task tracker and live candlestick dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "conf", Value: "conf.env", Usage: "env file to load"},
			&cli.StringFlag{Name: "symbol", Usage: "market symbol, e.g. ethusdt"},
			&cli.StringFlag{Name: "interval", Usage: "kline interval, e.g. 1m"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := helpers.LoadEnvFile(c.String("conf")); err != nil {
		return err
	}
	config, err := helpers.NewConfigFromEnv()
	if err != nil {
		return err
	}
	if symbol := c.String("symbol"); symbol != "" {
		config.Symbol = strings.ToLower(symbol)
	}
	if interval := c.String("interval"); interval != "" {
		config.Interval = interval
	}
	if err := helpers.InitLogger(config); err != nil {
		return err
	}
	helpers.Logger.Infoln("🐂 Bullpen started: " + config.Symbol + " " + config.Interval)

	binanceService := binance.NewBinanceService(config.RestBaseURL, config.StreamBaseURL)
	chart := ui.NewCandleChart()
	tradeView := services.NewTradeViewService(chart, binanceService, binanceService, binance.NewWsTransport(),
		paper.NewPaperService(config.Symbol), services.TradeViewConfig{
			Symbol:   config.Symbol,
			Interval: config.Interval,
			Policy: services.ReconnectPolicy{
				Delay:       config.ReconnectDelay,
				Multiplier:  config.ReconnectMultiplier,
				MaxDelay:    config.MaxReconnectDelay,
				MaxAttempts: config.MaxReconnectAttempts,
			},
		})

	if config.EnableDatabaseRecording {
		databaseService, err := database.NewDBService(config.DatabaseHost, config.DatabasePort, config.DatabaseName,
			config.DatabaseUser, config.DatabasePassword)
		if err != nil {
			return err
		}
		tradeView.SetRecorder(databaseService)
	}

	taskService := services.NewTaskService(services.DefaultTaskLists(), config.ClaimAnimation)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return ui.NewUserInterface(taskService, tradeView, chart).Run(ctx)
}
