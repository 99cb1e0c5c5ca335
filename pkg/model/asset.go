package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Balance is the maker's holding of an asset split by settlement state.
type Balance struct {
	Settled          uint64 `json:"settled"`
	Future           uint64 `json:"future"`
	Spendable        uint64 `json:"spendable"`
	OffchainOutbound uint64 `json:"offchain_outbound"`
	OffchainInbound  uint64 `json:"offchain_inbound"`
}

// Asset is an RGB asset listed by the market maker. Values are snapshots from
// the market API and are never mutated locally.
type Asset struct {
	AssetID      string  `json:"asset_id"`
	AssetIface   string  `json:"asset_iface"`
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Details      *string `json:"details,omitempty"`
	Precision    uint8   `json:"precision"`
	IssuedSupply uint64  `json:"issued_supply"`
	Timestamp    int64   `json:"timestamp,omitempty"`
	AddedAt      int64   `json:"added_at,omitempty"`
	IsActive     bool    `json:"is_active"`
	Balance      Balance `json:"balance"`
}

// AssetsResponse is the body of GET /api/v1/market/assets.
type AssetsResponse struct {
	Assets []Asset `json:"assets"`
}

// FormatAmount renders a raw integer amount in display units.
func (a Asset) FormatAmount(raw uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(a.Precision)).StringFixed(int32(a.Precision))
}
