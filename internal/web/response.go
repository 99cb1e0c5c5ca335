package web

import (
	"time"

	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// AssetsResponse is the JSON body of GET /api/v1/assets.
type AssetsResponse struct {
	Network   model.Network `json:"network"`
	Assets    []model.Asset `json:"assets"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PairsResponse is the JSON body of GET /api/v1/pairs.
type PairsResponse struct {
	Network   model.Network `json:"network"`
	Pairs     []model.Pair  `json:"pairs"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ErrorResponse is returned for failures that are not a FetchError.
type ErrorResponse struct {
	Message string `json:"message"`
}

const (
	msgUnexpected = "An unexpected error occurred"
	msgLoading    = "Market data is still loading"
)
