package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/kaleidoswap/market-explorer/internal/explorer"
	"github.com/kaleidoswap/market-explorer/internal/pipeline"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// alert is a section-level failure banner.
type alert struct {
	Message string
	Details string
}

type pageData struct {
	Theme    explorer.Theme
	Network  model.Network
	Networks []model.Network
	Req      ViewRequest
	ReturnTo string

	PairSortKeys  []string
	AssetSortKeys []string

	Pairs         []model.Pair
	PairsLoading  bool
	PairsAlert    *alert
	Assets        []model.Asset
	AssetsLoading bool
	AssetsAlert   *alert
}

// Refresh reports whether the page should reload itself to pick up data
// that was still loading when it was rendered.
func (d pageData) Refresh() bool { return d.PairsLoading || d.AssetsLoading }

func newPageData(ex *explorer.Explorer, req ViewRequest, returnTo string) pageData {
	st := ex.State()
	pairs := ex.PairsView()
	assets := ex.AssetsView()

	req.Network = string(st.Network)
	return pageData{
		Theme:         st.Theme,
		Network:       st.Network,
		Networks:      model.Networks,
		Req:           req,
		ReturnTo:      safeReturn(returnTo),
		PairSortKeys:  pipeline.PairSortKeys(),
		AssetSortKeys: pipeline.AssetSortKeys(),
		Pairs:         pairs.Items,
		PairsLoading:  pairs.Loading,
		PairsAlert:    alertFor(pairs.Err),
		Assets:        assets.Items,
		AssetsLoading: assets.Loading,
		AssetsAlert:   alertFor(assets.Err),
	}
}

func alertFor(err error) *alert {
	if err == nil {
		return nil
	}
	if fe := asFetchError(err); fe != nil {
		return &alert{Message: fe.Message, Details: fe.Details}
	}
	return &alert{Message: msgUnexpected}
}

func asFetchError(err error) *model.FetchError {
	var fe *model.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
