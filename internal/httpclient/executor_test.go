package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/rate"
)

func newExec(client *http.Client) *Executor {
	return New(zap.NewNop(), nil, client, "test")
}

// countingHandler answers failStatus for the first failCount calls, then 200 with body.
func countingHandler(failCount int, failStatus int, successBody []byte) (http.Handler, *atomic.Int32) {
	var n atomic.Int32
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if int(n.Add(1)) <= failCount {
			w.WriteHeader(failStatus)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(successBody)
	}), &n
}

func newGet(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

// ─── Success ──────────────────────────────────────────────────────────────────

func TestDoJSON_SuccessFirstAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer srv.Close()

	var out map[string]string
	require.NoError(t, newExec(srv.Client()).DoJSON(context.Background(), newGet(t, srv.URL), "k", &out))
	assert.Equal(t, "ok", out["result"])
}

func TestDoJSON_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	mgr := rate.NewManager(rate.Config{RequestsPerSecond: 1000, Burst: 1})
	exec := New(zap.NewNop(), mgr, srv.Client(), "test")

	for i := 0; i < 3; i++ {
		require.NoError(t, exec.DoJSON(context.Background(), newGet(t, srv.URL), "signet", nil))
	}
}

// ─── 5xx ──────────────────────────────────────────────────────────────────────

func TestDoJSON_5xxReturnsStatusError(t *testing.T) {
	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"db down"}`))
	}))
	defer srv.Close()

	err := newExec(srv.Client()).DoJSON(context.Background(), newGet(t, srv.URL), "k", nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, CodeBadResponse, statusErr.Code())
	assert.JSONEq(t, `{"message":"db down"}`, string(statusErr.Body))
	assert.EqualValues(t, 1, count.Load(), "5xx must not be retried")
}

// ─── 4xx ──────────────────────────────────────────────────────────────────────

func TestDoJSON_4xxReturnsStatusError(t *testing.T) {
	h, count := countingHandler(10, http.StatusNotFound, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	err := newExec(srv.Client()).DoJSON(context.Background(), newGet(t, srv.URL), "k", nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, CodeBadRequest, statusErr.Code())
	assert.EqualValues(t, 1, count.Load(), "4xx must not be retried")
}

// ─── Transport ────────────────────────────────────────────────────────────────

func TestDoJSON_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	err = newExec(&http.Client{Timeout: time.Second}).DoJSON(context.Background(), newGet(t, "http://"+addr), "k", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, CodeRefused, transportErr.Code)
}

func TestDoJSON_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond

	err := newExec(client).DoJSON(context.Background(), newGet(t, srv.URL), "k", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, CodeTimeout, transportErr.Code)
}

// ─── Decode ───────────────────────────────────────────────────────────────────

func TestDoJSON_DecodeErrorIsNotTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer srv.Close()

	var out map[string]string
	err := newExec(srv.Client()).DoJSON(context.Background(), newGet(t, srv.URL), "k", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")

	var transportErr *TransportError
	var statusErr *StatusError
	assert.False(t, errors.As(err, &transportErr))
	assert.False(t, errors.As(err, &statusErr))
}

// ─── Classification ───────────────────────────────────────────────────────────

func TestClassifyTransport(t *testing.T) {
	assert.Equal(t, CodeCanceled, ClassifyTransport(fmt.Errorf("wrap: %w", context.Canceled)))
	assert.Equal(t, CodeTimeout, ClassifyTransport(context.DeadlineExceeded))
	assert.Equal(t, CodeNotFound, ClassifyTransport(&net.DNSError{Err: "no such host", Name: "x.invalid"}))
	assert.Equal(t, CodeNetwork, ClassifyTransport(errors.New("boom")))
}
