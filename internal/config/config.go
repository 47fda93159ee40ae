package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	CoinGecko CoinGecko `mapstructure:"coingecko"`
	Engine    Engine    `mapstructure:"engine"`
	Executor  Executor  `mapstructure:"executor"`
	Logger    Logger    `mapstructure:"logger"`
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
}

// CoinGecko holds the configuration for the CoinGecko market data API.
type CoinGecko struct {
	BaseURL        string  `mapstructure:"base_url"`
	Currency       string  `mapstructure:"currency"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// Engine holds the configuration for the valuation and decision engine.
type Engine struct {
	UserID       string  `mapstructure:"user_id"`
	TickInterval int     `mapstructure:"tick_interval"`
	FeeRate      float64 `mapstructure:"fee_rate"`
	DryRun       bool    `mapstructure:"dry_run"`
}

// Executor holds credentials for the order-execution collaborator.
// Key material is passed explicitly to its constructor, never held in
// process-wide state.
type Executor struct {
	ApiKey    string `mapstructure:"api_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("coingecko.currency", "usd")
	viper.SetDefault("coingecko.rate_limit", 10) // requests per second
	viper.SetDefault("coingecko.rate_limit_burst", 3)
	viper.SetDefault("coingecko.timeout_seconds", 5)
	viper.SetDefault("engine.user_id", "default")
	viper.SetDefault("engine.tick_interval", 15) // seconds between pipeline passes
	viper.SetDefault("engine.fee_rate", 0.001)
	viper.SetDefault("engine.dry_run", true)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
