package helpers

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/xhit/go-str2duration/v2"
	"os"
	"strconv"
	"time"
)

const (
	DefaultSymbol         = "ethusdt"
	DefaultInterval       = "1m"
	DefaultRestBaseURL    = "https://data-api.binance.vision"
	DefaultStreamBaseURL  = "wss://data-stream.binance.vision:443"
	DefaultReconnectDelay = 5 * time.Second
	DefaultClaimAnimation = time.Second
)

type Config struct {
	Symbol               string
	Interval             string
	RestBaseURL          string
	StreamBaseURL        string
	ReconnectDelay       time.Duration
	ReconnectMultiplier  float64
	MaxReconnectDelay    time.Duration
	MaxReconnectAttempts int
	ClaimAnimation       time.Duration

	LogFile        string
	LogLevel       string
	TelegramOutput bool
	TelegramToken  string
	TelegramChatId string

	EnableDatabaseRecording bool
	DatabaseHost            string
	DatabasePort            string
	DatabaseName            string
	DatabaseUser            string
	DatabasePassword        string
}

// LoadEnvFile loads key/value pairs from a conf.env style file into the process
// environment. A missing file is not an error: every key has a default.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// NewConfigFromEnv reads the camelCase environment keys used by the dashboard
func NewConfigFromEnv() (Config, error) {
	config := Config{
		Symbol:         envOr("symbol", DefaultSymbol),
		Interval:       envOr("interval", DefaultInterval),
		RestBaseURL:    envOr("restBaseURL", DefaultRestBaseURL),
		StreamBaseURL:  envOr("streamBaseURL", DefaultStreamBaseURL),
		LogFile:        envOr("logFile", "bullpen.log"),
		LogLevel:       envOr("logLevel", "info"),
		TelegramToken:  os.Getenv("telegramToken"),
		TelegramChatId: os.Getenv("telegramChatId"),

		DatabaseHost:     os.Getenv("databaseHost"),
		DatabasePort:     envOr("databasePort", "3306"),
		DatabaseName:     os.Getenv("databaseName"),
		DatabaseUser:     os.Getenv("databaseUser"),
		DatabasePassword: os.Getenv("databasePassword"),
	}

	var err error
	if config.ReconnectDelay, err = envDuration("reconnectDelay", DefaultReconnectDelay); err != nil {
		return config, err
	}
	if config.MaxReconnectDelay, err = envDuration("maxReconnectDelay", 0); err != nil {
		return config, err
	}
	if config.ClaimAnimation, err = envDuration("claimAnimation", DefaultClaimAnimation); err != nil {
		return config, err
	}

	config.ReconnectMultiplier = 1
	if s := os.Getenv("reconnectMultiplier"); s != "" {
		if config.ReconnectMultiplier, err = strconv.ParseFloat(s, 64); err != nil {
			return config, fmt.Errorf("error parsing reconnectMultiplier: %w", err)
		}
	}
	if s := os.Getenv("maxReconnectAttempts"); s != "" {
		if config.MaxReconnectAttempts, err = strconv.Atoi(s); err != nil {
			return config, fmt.Errorf("error parsing maxReconnectAttempts: %w", err)
		}
	}

	config.TelegramOutput, _ = strconv.ParseBool(os.Getenv("telegramOutput"))
	config.EnableDatabaseRecording, _ = strconv.ParseBool(os.Getenv("enableDatabaseRecording"))

	return config, nil
}

// ParseDuration accepts the same formats as the env file, e.g. "5s" or "1d"
func ParseDuration(s string) (time.Duration, error) {
	return str2duration.ParseDuration(s)
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return d, nil
}
