// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig
	Replenishment ReplenishmentConfig
	Forecast      ForecastConfig
	Expiry        ExpiryConfig
	Audit         AuditConfig
	Batch         BatchConfig
}

type AppConfig struct {
	LogLevel string
}

type ReplenishmentConfig struct {
	LeadTimeDays    float64
	SafetyStockDays float64
	ServiceLevel    float64
	OrderingCost    float64
	HoldingCostPct  float64
	SeasonalFactor  float64
}

type ForecastConfig struct {
	MovingAveragePeriods int
	SmoothingAlpha       float64
}

type ExpiryConfig struct {
	AlertDays int
}

type AuditConfig struct {
	Retention int
}

type BatchConfig struct {
	WorkerCount int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("REPLENISH_LEAD_TIME_DAYS", 7.0)
		viper.SetDefault("REPLENISH_SAFETY_STOCK_DAYS", 3.0)
		viper.SetDefault("REPLENISH_SERVICE_LEVEL", 0.95)
		viper.SetDefault("REPLENISH_ORDERING_COST", 50.0)
		viper.SetDefault("REPLENISH_HOLDING_COST_PCT", 0.25)
		viper.SetDefault("REPLENISH_SEASONAL_FACTOR", 1.0)
		viper.SetDefault("FORECAST_MA_PERIODS", 3)
		viper.SetDefault("FORECAST_SMOOTHING_ALPHA", 0.3)
		viper.SetDefault("EXPIRY_ALERT_DAYS", 30)
		viper.SetDefault("AUDIT_RETENTION", 1000)
		viper.SetDefault("BATCH_WORKER_COUNT", 4)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			App: AppConfig{
				LogLevel: viper.GetString("LOG_LEVEL"),
			},
			Replenishment: ReplenishmentConfig{
				LeadTimeDays:    viper.GetFloat64("REPLENISH_LEAD_TIME_DAYS"),
				SafetyStockDays: viper.GetFloat64("REPLENISH_SAFETY_STOCK_DAYS"),
				ServiceLevel:    viper.GetFloat64("REPLENISH_SERVICE_LEVEL"),
				OrderingCost:    viper.GetFloat64("REPLENISH_ORDERING_COST"),
				HoldingCostPct:  viper.GetFloat64("REPLENISH_HOLDING_COST_PCT"),
				SeasonalFactor:  viper.GetFloat64("REPLENISH_SEASONAL_FACTOR"),
			},
			Forecast: ForecastConfig{
				MovingAveragePeriods: viper.GetInt("FORECAST_MA_PERIODS"),
				SmoothingAlpha:       viper.GetFloat64("FORECAST_SMOOTHING_ALPHA"),
			},
			Expiry: ExpiryConfig{
				AlertDays: viper.GetInt("EXPIRY_ALERT_DAYS"),
			},
			Audit: AuditConfig{
				Retention: viper.GetInt("AUDIT_RETENTION"),
			},
			Batch: BatchConfig{
				WorkerCount: viper.GetInt("BATCH_WORKER_COUNT"),
			},
		}
	})

	return instance
}
