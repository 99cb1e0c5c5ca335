package market

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// writeJSON encodes v as JSON into w.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test helper writeJSON: " + err.Error())
	}
}

// mockMarket describes canned upstream behaviour. A non-zero status makes
// the endpoint fail with that status and the given raw body; assetRaw
// replaces a successful assets body verbatim.
type mockMarket struct {
	assets      []model.Asset
	pairs       []model.Pair
	assetStatus int
	assetBody   string
	assetRaw    string
	pairStatus  int
	pairBody    string

	assetCalls atomic.Int32
	pairCalls  atomic.Int32
	lastReqID  atomic.Value
}

func newMockMarketServer(t *testing.T, m *mockMarket) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.lastReqID.Store(r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case assetsPath:
			m.assetCalls.Add(1)
			if m.assetStatus != 0 {
				w.WriteHeader(m.assetStatus)
				_, _ = w.Write([]byte(m.assetBody))
				return
			}
			if m.assetRaw != "" {
				_, _ = w.Write([]byte(m.assetRaw))
				return
			}
			writeJSON(w, model.AssetsResponse{Assets: m.assets})
		case pairsPath:
			m.pairCalls.Add(1)
			if m.pairStatus != 0 {
				w.WriteHeader(m.pairStatus)
				_, _ = w.Write([]byte(m.pairBody))
				return
			}
			writeJSON(w, model.PairsResponse{Pairs: m.pairs})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
