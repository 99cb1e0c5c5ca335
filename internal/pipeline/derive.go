package pipeline

import "github.com/kaleidoswap/market-explorer/pkg/model"

// DerivePairs filters then sorts a pair snapshot. It never fails: a nil
// snapshot derives an empty sequence.
func DerivePairs(pairs []model.Pair, filterText string, cfg *SortConfig) []model.Pair {
	return SortPairs(FilterPairs(pairs, filterText), cfg)
}

// DeriveAssets filters then sorts an asset snapshot.
func DeriveAssets(assets []model.Asset, filterText string, cfg *SortConfig) []model.Asset {
	return SortAssets(FilterAssets(assets, filterText), cfg)
}
