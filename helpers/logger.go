package helpers

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	tb "gopkg.in/tucnak/telebot.v2"
	"io"
	"os"
	"time"
)

type FileLogger struct {
	logger         *log.Logger
	telegramOutput bool
	telegramBot    *tb.Bot
	telegramChat   *tb.Chat
}

var Logger = NewFileLogger(os.Stderr)

// NewFileLogger returns a plain formatted logger writing to out
func NewFileLogger(out io.Writer) *FileLogger {
	plainFormatter := new(PlainFormatter)
	plainFormatter.TimestampFormat = "2006-01-02 15:04:05"
	plainFormatter.LevelDesc = []string{"PANIC", "FATAL", "ERROR", "WARN ", "INFO ", "DEBUG", "TRACE"}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(plainFormatter)
	logger.SetLevel(log.InfoLevel)

	return &FileLogger{logger: logger}
}

// InitLogger points the package logger at the configured log file, since the
// terminal belongs to the dashboard once it starts.
func InitLogger(config Config) error {
	logFile := config.LogFile
	if logFile == "" {
		logFile = "bullpen.log"
	}
	f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}

	logger := NewFileLogger(f)
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.logger.SetLevel(level)

	if config.TelegramOutput {
		if err := logger.enableTelegram(config.TelegramToken, config.TelegramChatId); err != nil {
			return err
		}
	}

	Logger = logger
	return nil
}

func (l *FileLogger) enableTelegram(token string, chatID string) error {
	if token == "" {
		return fmt.Errorf("error: telegramOutput set to true but telegramToken parameter not found")
	}
	if chatID == "" {
		return fmt.Errorf("error: telegramOutput set to true but telegramChatId parameter not found")
	}

	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("error creating telegram bot: %w", err)
	}

	chat, err := b.ChatByID(chatID)
	if err != nil {
		return fmt.Errorf("error resolving telegram chat: %w", err)
	}

	l.telegramBot = b
	l.telegramChat = chat
	l.telegramOutput = true
	return nil
}

func (l *FileLogger) SetLevel(level log.Level) {
	l.logger.SetLevel(level)
}

func (l *FileLogger) Errorln(args ...interface{}) {
	l.logger.Errorln(args...)
}

func (l *FileLogger) Fatalln(args ...interface{}) {
	l.logger.Fatalln(args...)
}

func (l *FileLogger) Panicln(args ...interface{}) {
	l.logger.Panicln(args...)
}

func (l *FileLogger) Warnln(args ...interface{}) {
	l.logger.Warnln(args...)
}

func (l *FileLogger) Infoln(args ...interface{}) {
	l.logger.Infoln(args...)
	if l.telegramOutput {
		go l.sendOnTelegramChannel(fmt.Sprint(args...))
	}
}

func (l *FileLogger) Traceln(args ...interface{}) {
	l.logger.Traceln(args...)
}

func (l *FileLogger) Debugln(args ...interface{}) {
	l.logger.Debugln(args...)
}

func (l *FileLogger) sendOnTelegramChannel(message string) {
	if _, err := l.telegramBot.Send(l.telegramChat, message); err != nil {
		l.logger.Errorln("telegram: " + err.Error())
	}
}

type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

func (f PlainFormatter) Format(entry *log.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(f.TimestampFormat)
	return []byte(fmt.Sprintf("%s %s %s\n", f.LevelDesc[entry.Level], timestamp, entry.Message)), nil
}
