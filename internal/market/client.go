package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/httpclient"
	"github.com/kaleidoswap/market-explorer/internal/metrics"
	"github.com/kaleidoswap/market-explorer/internal/rate"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// Resource names, used as query keys and metric labels.
const (
	ResourceAssets = "assets"
	ResourcePairs  = "pairs"
)

const (
	assetsPath = "/api/v1/market/assets"
	pairsPath  = "/api/v1/market/pairs"

	// MsgAssetsFailed and MsgPairsFailed are the fixed FetchError summaries.
	MsgAssetsFailed = "Failed to fetch assets"
	MsgPairsFailed  = "Failed to fetch trading pairs"
)

// ErrUnexpected marks failures that are neither transport nor HTTP errors.
var ErrUnexpected = errors.New("unexpected market api failure")

// Client reads the maker's market endpoints. It is stateless apart from the
// network -> origin mapping; every call is attempted once.
type Client struct {
	logger   *zap.Logger
	exec     *httpclient.Executor
	baseURLs map[model.Network]string
}

// NewClient builds a Client. rateMgr may be nil.
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, baseURLs map[model.Network]string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	urls := make(map[model.Network]string, len(baseURLs))
	for n, u := range baseURLs {
		urls[n] = strings.TrimRight(u, "/")
	}
	return &Client{
		logger:   logger,
		exec:     httpclient.New(logger, rateMgr, httpClient, "market"),
		baseURLs: urls,
	}
}

// ListAssets fetches the assets listed on network.
// GET {base}/api/v1/market/assets
func (c *Client) ListAssets(ctx context.Context, network model.Network) ([]model.Asset, error) {
	var resp model.AssetsResponse
	if err := c.get(ctx, ResourceAssets, network, assetsPath, MsgAssetsFailed, &resp); err != nil {
		return nil, err
	}
	return resp.Assets, nil
}

// ListPairs fetches the trading pairs on network. Pairs violating the
// order-size invariants are logged and still returned.
// GET {base}/api/v1/market/pairs
func (c *Client) ListPairs(ctx context.Context, network model.Network) ([]model.Pair, error) {
	var resp model.PairsResponse
	if err := c.get(ctx, ResourcePairs, network, pairsPath, MsgPairsFailed, &resp); err != nil {
		return nil, err
	}
	for _, p := range resp.Pairs {
		if err := p.Validate(); err != nil {
			c.logger.Warn("market.invalid_pair",
				zap.String("network", network.String()),
				zap.String("pair_id", p.ID),
				zap.Error(err))
		}
	}
	return resp.Pairs, nil
}

func (c *Client) get(ctx context.Context, resource string, network model.Network, path, failMsg string, out any) error {
	base, ok := c.baseURLs[network]
	if !ok || base == "" {
		return fmt.Errorf("%w: no base url for network %q", ErrUnexpected, network)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrUnexpected, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	err = c.exec.DoJSON(ctx, req, network.String(), out)
	metrics.ObserveDuration(metrics.MarketRequestDuration, start, resource, network.String())

	if err == nil {
		metrics.IncMarketRequest(resource, network.String(), "ok")
		c.logger.Debug("market.fetch_ok",
			zap.String("resource", resource),
			zap.String("network", network.String()),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	normalized := Normalize(err, failMsg)

	outcome := "unexpected"
	var fetchErr *model.FetchError
	if errors.As(normalized, &fetchErr) {
		outcome = strings.ToLower(fetchErr.Code)
	}
	metrics.IncMarketRequest(resource, network.String(), outcome)

	c.logger.Warn("market.fetch_failed",
		zap.String("resource", resource),
		zap.String("network", network.String()),
		zap.String("request_id", requestID),
		zap.String("outcome", outcome),
		zap.Error(err))
	return normalized
}
