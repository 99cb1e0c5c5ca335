package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BitcoinAssetID is the sentinel used in place of an RGB asset id when one
// side of a pair is the base chain currency.
const BitcoinAssetID = "BTC"

// Pair is a tradable base/quote combination with order constraints.
type Pair struct {
	ID                string          `json:"id"`
	BaseAsset         string          `json:"base_asset"`
	BaseAssetID       string          `json:"base_asset_id"`
	QuoteAsset        string          `json:"quote_asset"`
	QuoteAssetID      string          `json:"quote_asset_id"`
	IsActive          bool            `json:"is_active"`
	MinOrderSize      decimal.Decimal `json:"min_order_size"`
	MaxOrderSize      decimal.Decimal `json:"max_order_size"`
	PricePrecision    uint8           `json:"price_precision"`
	QuantityPrecision uint8           `json:"quantity_precision"`
}

// PairsResponse is the body of GET /api/v1/market/pairs.
type PairsResponse struct {
	Pairs []Pair `json:"pairs"`
}

// Symbol returns the "BASE/QUOTE" display form.
func (p Pair) Symbol() string {
	return p.BaseAsset + "/" + p.QuoteAsset
}

// IsNativeBase reports whether the base side is the chain currency.
func (p Pair) IsNativeBase() bool { return p.BaseAssetID == BitcoinAssetID }

// IsNativeQuote reports whether the quote side is the chain currency.
func (p Pair) IsNativeQuote() bool { return p.QuoteAssetID == BitcoinAssetID }

// Validate checks the order-size invariants (positive, min <= max).
func (p Pair) Validate() error {
	if !p.MinOrderSize.IsPositive() {
		return fmt.Errorf("pair %s: min_order_size must be positive, got %s", p.ID, p.MinOrderSize)
	}
	if !p.MaxOrderSize.IsPositive() {
		return fmt.Errorf("pair %s: max_order_size must be positive, got %s", p.ID, p.MaxOrderSize)
	}
	if p.MinOrderSize.GreaterThan(p.MaxOrderSize) {
		return fmt.Errorf("pair %s: min_order_size %s exceeds max_order_size %s", p.ID, p.MinOrderSize, p.MaxOrderSize)
	}
	return nil
}
