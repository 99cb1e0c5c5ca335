package web

import (
	"strings"

	"github.com/kaleidoswap/market-explorer/internal/explorer"
	"github.com/kaleidoswap/market-explorer/internal/pipeline"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// ViewRequest holds the query parameters shared by the page and the JSON
// views. On the JSON routes Query/Sort/Dir apply to the requested resource.
type ViewRequest struct {
	Network    string `query:"network"`
	Query      string `query:"q"`
	AssetQuery string `query:"aq"`
	Sort       string `query:"sort"`
	Dir        string `query:"dir"`
	AssetSort  string `query:"asort"`
	AssetDir   string `query:"adir"`
}

// ResolveNetwork returns the requested network, or def when none was given.
func (r ViewRequest) ResolveNetwork(def model.Network) (model.Network, error) {
	if strings.TrimSpace(r.Network) == "" {
		return def, nil
	}
	return model.ParseNetwork(r.Network)
}

func (r ViewRequest) applyPage(ex *explorer.Explorer) {
	ex.SetPairFilter(r.Query)
	ex.SetPairSort(pipeline.ParseSort(r.Sort, r.Dir))
	ex.SetAssetFilter(r.AssetQuery)
	ex.SetAssetSort(pipeline.ParseSort(r.AssetSort, r.AssetDir))
}

func (r ViewRequest) applyPairs(ex *explorer.Explorer) {
	ex.SetPairFilter(r.Query)
	ex.SetPairSort(pipeline.ParseSort(r.Sort, r.Dir))
}

func (r ViewRequest) applyAssets(ex *explorer.Explorer) {
	ex.SetAssetFilter(r.Query)
	ex.SetAssetSort(pipeline.ParseSort(r.Sort, r.Dir))
}

// safeReturn keeps redirects on this site.
func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, `\`) {
		return "/"
	}
	return path
}
