package pipeline

import (
	"strings"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// FilterPairs keeps the pairs whose "base/quote" symbol, base asset id or
// quote asset id contains text, compared case-insensitively. Empty text
// keeps everything. Source order is preserved and pairs is not modified.
func FilterPairs(pairs []model.Pair, text string) []model.Pair {
	q := strings.ToLower(text)
	out := make([]model.Pair, 0, len(pairs))
	for _, p := range pairs {
		if q == "" || pairMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func pairMatches(p model.Pair, q string) bool {
	return strings.Contains(strings.ToLower(p.Symbol()), q) ||
		strings.Contains(strings.ToLower(p.BaseAssetID), q) ||
		strings.Contains(strings.ToLower(p.QuoteAssetID), q)
}

// FilterAssets keeps the assets whose ticker, name or asset id contains
// text, compared case-insensitively.
func FilterAssets(assets []model.Asset, text string) []model.Asset {
	q := strings.ToLower(text)
	out := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		if q == "" || assetMatches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func assetMatches(a model.Asset, q string) bool {
	return strings.Contains(strings.ToLower(a.Ticker), q) ||
		strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.AssetID), q)
}
