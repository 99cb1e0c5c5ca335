package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/rate"
)

// Executor handles rate-limited HTTP execution with JSON decoding.
// Failures surface as *TransportError (no response) or *StatusError
// (error status); anything else is a plain wrapped error.
type Executor struct {
	logger  *zap.Logger
	rateMgr *rate.Manager
	http    *http.Client
	tag     string
}

// New creates an Executor. Every request is attempted exactly once.
func New(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, tag string) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Executor{
		logger:  logger,
		rateMgr: rateMgr,
		http:    httpClient,
		tag:     tag,
	}
}

// DoJSON executes req and JSON-decodes a successful response into out.
// rateLimitKey scopes the rate limiter.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, rateLimitKey string, out any) error {
	if e.rateMgr != nil {
		if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
			return &TransportError{Code: ClassifyTransport(err), Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		e.logger.Warn(e.tag+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return &TransportError{Code: ClassifyTransport(err), Err: err}
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	elapsed := time.Since(start)
	if readErr != nil {
		return &TransportError{Code: ClassifyTransport(readErr), Err: readErr}
	}

	if resp.StatusCode >= 400 {
		e.logger.Warn(e.tag+".status_error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.Duration("latency", elapsed))
		return &StatusError{Tag: e.tag, Status: resp.StatusCode, Body: body}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.tag+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.String()),
				zap.Int("body_bytes", len(body)))
			return fmt.Errorf("decode failed: %w", err)
		}
	}

	e.logger.Debug(e.tag+".http_success",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return nil
}
