package pipeline

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// Direction is the order applied by a SortConfig.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortConfig selects a field and direction. A nil *SortConfig means no
// active sort.
type SortConfig struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// ParseSort builds a config from user input. An empty key yields nil; any
// direction other than "desc" is ascending.
func ParseSort(key, dir string) *SortConfig {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	d := Asc
	if strings.EqualFold(strings.TrimSpace(dir), string(Desc)) {
		d = Desc
	}
	return &SortConfig{Key: key, Direction: d}
}

type compareFunc[T any] func(a, b T) int

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

var pairFields = map[string]compareFunc[model.Pair]{
	"id":                 func(a, b model.Pair) int { return cmp.Compare(a.ID, b.ID) },
	"base_asset":         func(a, b model.Pair) int { return cmp.Compare(a.BaseAsset, b.BaseAsset) },
	"quote_asset":        func(a, b model.Pair) int { return cmp.Compare(a.QuoteAsset, b.QuoteAsset) },
	"base_asset_id":      func(a, b model.Pair) int { return cmp.Compare(a.BaseAssetID, b.BaseAssetID) },
	"quote_asset_id":     func(a, b model.Pair) int { return cmp.Compare(a.QuoteAssetID, b.QuoteAssetID) },
	"is_active":          func(a, b model.Pair) int { return compareBool(a.IsActive, b.IsActive) },
	"min_order_size":     func(a, b model.Pair) int { return a.MinOrderSize.Cmp(b.MinOrderSize) },
	"max_order_size":     func(a, b model.Pair) int { return a.MaxOrderSize.Cmp(b.MaxOrderSize) },
	"price_precision":    func(a, b model.Pair) int { return cmp.Compare(a.PricePrecision, b.PricePrecision) },
	"quantity_precision": func(a, b model.Pair) int { return cmp.Compare(a.QuantityPrecision, b.QuantityPrecision) },
}

var assetFields = map[string]compareFunc[model.Asset]{
	"asset_id":      func(a, b model.Asset) int { return cmp.Compare(a.AssetID, b.AssetID) },
	"asset_iface":   func(a, b model.Asset) int { return cmp.Compare(a.AssetIface, b.AssetIface) },
	"ticker":        func(a, b model.Asset) int { return cmp.Compare(a.Ticker, b.Ticker) },
	"name":          func(a, b model.Asset) int { return cmp.Compare(a.Name, b.Name) },
	"precision":     func(a, b model.Asset) int { return cmp.Compare(a.Precision, b.Precision) },
	"issued_supply": func(a, b model.Asset) int { return cmp.Compare(a.IssuedSupply, b.IssuedSupply) },
	"is_active":     func(a, b model.Asset) int { return compareBool(a.IsActive, b.IsActive) },
	"settled":       func(a, b model.Asset) int { return cmp.Compare(a.Balance.Settled, b.Balance.Settled) },
	"future":        func(a, b model.Asset) int { return cmp.Compare(a.Balance.Future, b.Balance.Future) },
	"spendable":     func(a, b model.Asset) int { return cmp.Compare(a.Balance.Spendable, b.Balance.Spendable) },
	"offchain_outbound": func(a, b model.Asset) int {
		return cmp.Compare(a.Balance.OffchainOutbound, b.Balance.OffchainOutbound)
	},
	"offchain_inbound": func(a, b model.Asset) int {
		return cmp.Compare(a.Balance.OffchainInbound, b.Balance.OffchainInbound)
	},
}

// SortPairs returns a stably sorted copy of pairs. A nil config or an
// unknown key returns the copy in its original order.
func SortPairs(pairs []model.Pair, cfg *SortConfig) []model.Pair {
	return sortBy(pairs, cfg, pairFields)
}

// SortAssets returns a stably sorted copy of assets.
func SortAssets(assets []model.Asset, cfg *SortConfig) []model.Asset {
	return sortBy(assets, cfg, assetFields)
}

// PairSortKeys lists the keys SortPairs understands, alphabetically.
func PairSortKeys() []string { return keys(pairFields) }

// AssetSortKeys lists the keys SortAssets understands, alphabetically.
func AssetSortKeys() []string { return keys(assetFields) }

func sortBy[T any](items []T, cfg *SortConfig, fields map[string]compareFunc[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	if cfg == nil {
		return out
	}
	compare, ok := fields[cfg.Key]
	if !ok {
		return out
	}
	if cfg.Direction == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func keys[T any](fields map[string]compareFunc[T]) []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
