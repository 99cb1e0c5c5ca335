package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "ENV", "LOG_LEVEL", "PORT",
		"SIGNET_API_URL", "REGTEST_API_URL", "DEFAULT_NETWORK",
		"MARKET_HTTP_TIMEOUT", "MARKET_RPS", "QUERY_STALE_TIME", "QUERY_CACHE_TIME",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "market-explorer", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultSignetAPIURL, cfg.SignetAPIURL)
	assert.Equal(t, DefaultRegtestAPIURL, cfg.RegtestAPIURL)
	assert.Equal(t, model.NetworkSignet, cfg.DefaultNetwork)
	assert.Equal(t, 30*time.Second, cfg.MarketHTTPTimeout)
	assert.Equal(t, 10, cfg.MarketRPS)
	assert.Equal(t, 30*time.Second, cfg.QueryStaleTime)
	assert.Equal(t, 5*time.Minute, cfg.QueryCacheTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("REGTEST_API_URL", "http://localhost:8000")
	t.Setenv("DEFAULT_NETWORK", "REGTEST")
	t.Setenv("MARKET_HTTP_TIMEOUT", "5s")
	t.Setenv("QUERY_STALE_TIME", "2m")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.RegtestAPIURL)
	assert.Equal(t, model.NetworkRegtest, cfg.DefaultNetwork)
	assert.Equal(t, 5*time.Second, cfg.MarketHTTPTimeout)
	assert.Equal(t, 2*time.Minute, cfg.QueryStaleTime)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURLs()[model.NetworkRegtest])
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("DEFAULT_NETWORK", "mainnet")
	t.Setenv("QUERY_STALE_TIME", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, model.NetworkSignet, cfg.DefaultNetwork)
	assert.Equal(t, 30*time.Second, cfg.QueryStaleTime)
}
