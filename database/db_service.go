package database

import (
	"fmt"
	database "github.com/yahengsu/bullpen/database/models"
	"github.com/yahengsu/bullpen/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"strings"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	db, err := gorm.Open(mysql.Open(DSN(dbHost, dbPort, dbName, dbUser, dbPass)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.Candle{})
	if err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return dbs, nil
}

func DSN(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) string {
	return dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

// AddOrUpdateCandle upserts a bar keyed by symbol and open time
func (dbs *DBService) AddOrUpdateCandle(candle models.Candle, symbol string) error {
	dbCandle := NewDBCandle(candle, symbol)

	// Update columns to new value on conflict
	return dbs.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "open_time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "closed", "updated_at"}),
	}).Create(&dbCandle).Error
}

// Candles returns the latest recorded bars of a symbol in ascending time order
func (dbs *DBService) Candles(symbol string, limit int) ([]models.Candle, error) {
	var dbCandles []database.Candle
	err := dbs.DB.Where("symbol = ?", strings.ToLower(symbol)).
		Order("open_time desc").
		Limit(limit).
		Find(&dbCandles).Error
	if err != nil {
		return nil, fmt.Errorf("error reading candles: %w", err)
	}

	candles := make([]models.Candle, len(dbCandles))
	for i, dbCandle := range dbCandles {
		candles[len(dbCandles)-1-i] = dbCandle.ToCandle()
	}
	return candles, nil
}

func NewDBCandle(candle models.Candle, symbol string) database.Candle {
	return database.Candle{
		Symbol:   strings.ToLower(symbol),
		OpenTime: candle.OpenTime,
		Open:     candle.Open,
		High:     candle.High,
		Low:      candle.Low,
		Close:    candle.Close,
		Volume:   candle.Volume,
		Closed:   candle.Closed,
	}
}
