package model

import (
	"encoding/json"
	"testing"
	"unsafe"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("Regtest ")
	require.NoError(t, err)
	assert.Equal(t, NetworkRegtest, n)

	n, err = ParseNetwork("signet")
	require.NoError(t, err)
	assert.Equal(t, NetworkSignet, n)

	_, err = ParseNetwork("mainnet")
	assert.Error(t, err)

	_, err = ParseNetwork("")
	assert.Error(t, err)
}

func TestParseNetwork_DoesNotAliasInput(t *testing.T) {
	// fasthttp hands out strings backed by reusable request buffers
	buf := []byte("regtest")
	n, err := ParseNetwork(unsafe.String(&buf[0], len(buf)))
	require.NoError(t, err)

	copy(buf, "xxxxxxx")
	assert.Equal(t, NetworkRegtest, n)
	assert.True(t, n.Valid())
}

func TestPair_DecodeFromAPI(t *testing.T) {
	body := `{"pairs":[{
		"id":"p1","base_asset":"BTC","base_asset_id":"BTC",
		"quote_asset":"USDT","quote_asset_id":"rgb:2dkSTbr-jFhznbPmo",
		"is_active":true,"min_order_size":0.0001,"max_order_size":"2.5",
		"price_precision":2,"quantity_precision":8
	}]}`

	var resp PairsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Pairs, 1)

	p := resp.Pairs[0]
	assert.Equal(t, "BTC/USDT", p.Symbol())
	assert.True(t, p.IsNativeBase())
	assert.False(t, p.IsNativeQuote())
	assert.True(t, p.MinOrderSize.Equal(decimal.RequireFromString("0.0001")))
	assert.True(t, p.MaxOrderSize.Equal(decimal.RequireFromString("2.5")))
	assert.EqualValues(t, 8, p.QuantityPrecision)
	assert.NoError(t, p.Validate())
}

func TestPair_Validate(t *testing.T) {
	p := Pair{ID: "p", MinOrderSize: decimal.NewFromInt(5), MaxOrderSize: decimal.NewFromInt(1)}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	p = Pair{ID: "p", MinOrderSize: decimal.Zero, MaxOrderSize: decimal.NewFromInt(1)}
	assert.Error(t, p.Validate())

	p = Pair{ID: "p", MinOrderSize: decimal.NewFromInt(1), MaxOrderSize: decimal.NewFromInt(1)}
	assert.NoError(t, p.Validate())
}

func TestAsset_FormatAmount(t *testing.T) {
	a := Asset{Precision: 3}
	assert.Equal(t, "1234.567", a.FormatAmount(1234567))
	assert.Equal(t, "0.001", a.FormatAmount(1))

	a = Asset{Precision: 0}
	assert.Equal(t, "42", a.FormatAmount(42))
}

func TestFetchError_Error(t *testing.T) {
	e := &FetchError{Message: "Failed to fetch assets", Details: "db down"}
	assert.Equal(t, "Failed to fetch assets: db down", e.Error())

	e = &FetchError{Message: "Failed to fetch trading pairs"}
	assert.Equal(t, "Failed to fetch trading pairs", e.Error())
}
