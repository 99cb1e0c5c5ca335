package config

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// Default market API origins.
const (
	DefaultSignetAPIURL  = "https://api.signet.kaleidoswap.com"
	DefaultRegtestAPIURL = "https://api.regtest.kaleidoswap.com"
)

// Config holds the runtime configuration for the market explorer.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Market API origins keyed by network.
	SignetAPIURL  string
	RegtestAPIURL string

	DefaultNetwork    model.Network
	MarketHTTPTimeout time.Duration
	MarketRPS         int
	MarketBurst       int

	// PageLoadTimeout bounds how long a request waits for market data.
	PageLoadTimeout time.Duration

	// Query cache tuning.
	QueryStaleTime   time.Duration
	QueryCacheTime   time.Duration
	QueryCleanupFreq time.Duration
}

// Load reads configuration from the environment and an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	network, err := model.ParseNetwork(GetEnv("DEFAULT_NETWORK", string(model.DefaultNetwork)))
	if err != nil {
		network = model.DefaultNetwork
	}

	return &Config{
		ServiceName:       GetEnv("SERVICE_NAME", "market-explorer"),
		Env:               GetEnv("ENV", "dev"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		Port:              GetEnvInt("PORT", 8080),
		HTTPReadTimeout:   GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:  GetEnvDuration("HTTP_WRITE_TIMEOUT", 35*time.Second),
		HTTPIdleTimeout:   GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		SignetAPIURL:      GetEnv("SIGNET_API_URL", DefaultSignetAPIURL),
		RegtestAPIURL:     GetEnv("REGTEST_API_URL", DefaultRegtestAPIURL),
		DefaultNetwork:    network,
		MarketHTTPTimeout: GetEnvDuration("MARKET_HTTP_TIMEOUT", 30*time.Second),
		MarketRPS:         GetEnvInt("MARKET_RPS", 10),
		MarketBurst:       GetEnvInt("MARKET_BURST", 20),
		PageLoadTimeout:   GetEnvDuration("PAGE_LOAD_TIMEOUT", 10*time.Second),
		QueryStaleTime:    GetEnvDuration("QUERY_STALE_TIME", 30*time.Second),
		QueryCacheTime:    GetEnvDuration("QUERY_CACHE_TIME", 5*time.Minute),
		QueryCleanupFreq:  GetEnvDuration("QUERY_CLEANUP_FREQ", time.Minute),
	}
}

// BaseURLs returns the static network -> origin mapping.
func (c *Config) BaseURLs() map[model.Network]string {
	return map[model.Network]string{
		model.NetworkSignet:  c.SignetAPIURL,
		model.NetworkRegtest: c.RegtestAPIURL,
	}
}
