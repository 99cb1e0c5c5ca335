package explorer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/pipeline"
	"github.com/kaleidoswap/market-explorer/internal/query"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// State is the UI state that drives fetching and derivation.
type State struct {
	Network     model.Network
	PairFilter  string
	AssetFilter string
	PairSort    *pipeline.SortConfig
	AssetSort   *pipeline.SortConfig
	Theme       Theme
}

// View is a derived, display-ready section. Loading and Err describe the
// underlying fetch; Items is always non-nil.
type View[T any] struct {
	Network   model.Network
	Loading   bool
	Err       error
	Items     []T
	UpdatedAt time.Time
}

// FetchError returns the normalized fetch failure, if that is what Err holds.
func (v View[T]) FetchError() *model.FetchError {
	var fe *model.FetchError
	if errors.As(v.Err, &fe) {
		return fe
	}
	return nil
}

// Explorer owns the UI state and derives the asset and pair views from the
// latest snapshots for the selected network.
type Explorer struct {
	logger *zap.Logger
	assets *query.Query[[]model.Asset]
	pairs  *query.Query[[]model.Pair]

	mu    sync.RWMutex
	state State
}

// New creates an Explorer with initial state. Nothing is fetched until Load,
// Refresh or a network change.
func New(logger *zap.Logger, assets *query.Query[[]model.Asset], pairs *query.Query[[]model.Pair], initial State) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !initial.Network.Valid() {
		initial.Network = model.DefaultNetwork
	}
	if initial.Theme == "" {
		initial.Theme = ThemeLight
	}
	return &Explorer{
		logger: logger,
		assets: assets,
		pairs:  pairs,
		state:  initial,
	}
}

// State returns a copy of the current UI state.
func (e *Explorer) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// SetNetwork selects network and refetches both resources for it. Results
// still arriving for the previous network are kept under that network and
// never shown for this one.
func (e *Explorer) SetNetwork(network model.Network) error {
	if !network.Valid() {
		return errors.New("explorer: invalid network " + string(network))
	}

	e.mu.Lock()
	prev := e.state.Network
	e.state.Network = network
	e.mu.Unlock()

	if prev != network {
		e.logger.Info("explorer.network_changed",
			zap.String("from", prev.String()),
			zap.String("to", network.String()))
		e.refetch(network)
	}
	return nil
}

// Load waits until both resources for the selected network have a result
// (cached or freshly fetched) or ctx ends. The two fetches run concurrently
// and fail independently; their outcomes are read back through the views.
func (e *Explorer) Load(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.LoadAssets(ctx)
	}()
	go func() {
		defer wg.Done()
		e.LoadPairs(ctx)
	}()
	wg.Wait()
}

// LoadAssets is Load for the asset section only.
func (e *Explorer) LoadAssets(ctx context.Context) {
	e.assets.Get(ctx, e.State().Network)
}

// LoadPairs is Load for the pair section only.
func (e *Explorer) LoadPairs(ctx context.Context) {
	e.pairs.Get(ctx, e.State().Network)
}

// Refresh drops the cached results for the selected network and refetches
// both resources in the background.
func (e *Explorer) Refresh() {
	network := e.State().Network
	e.assets.Invalidate(network)
	e.pairs.Invalidate(network)
	e.refetch(network)
}

// SetPairFilter sets the pair search text.
func (e *Explorer) SetPairFilter(text string) {
	e.mu.Lock()
	e.state.PairFilter = text
	e.mu.Unlock()
}

// SetAssetFilter sets the asset search text.
func (e *Explorer) SetAssetFilter(text string) {
	e.mu.Lock()
	e.state.AssetFilter = text
	e.mu.Unlock()
}

// SetPairSort sets the pair ordering; nil clears it.
func (e *Explorer) SetPairSort(cfg *pipeline.SortConfig) {
	e.mu.Lock()
	e.state.PairSort = cfg
	e.mu.Unlock()
}

// SetAssetSort sets the asset ordering; nil clears it.
func (e *Explorer) SetAssetSort(cfg *pipeline.SortConfig) {
	e.mu.Lock()
	e.state.AssetSort = cfg
	e.mu.Unlock()
}

// ToggleTheme flips the theme and returns the new one.
func (e *Explorer) ToggleTheme() Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Theme = e.state.Theme.Toggle()
	return e.state.Theme
}

// AssetsView derives the asset section from the selected network's snapshot.
func (e *Explorer) AssetsView() View[model.Asset] {
	st := e.State()
	res := e.assets.Peek(st.Network)
	return View[model.Asset]{
		Network:   st.Network,
		Loading:   res.Loading(),
		Err:       res.Err,
		Items:     pipeline.DeriveAssets(res.Data, st.AssetFilter, st.AssetSort),
		UpdatedAt: res.UpdatedAt,
	}
}

// PairsView derives the pair section from the selected network's snapshot.
func (e *Explorer) PairsView() View[model.Pair] {
	st := e.State()
	res := e.pairs.Peek(st.Network)
	return View[model.Pair]{
		Network:   st.Network,
		Loading:   res.Loading(),
		Err:       res.Err,
		Items:     pipeline.DerivePairs(res.Data, st.PairFilter, st.PairSort),
		UpdatedAt: res.UpdatedAt,
	}
}

func (e *Explorer) refetch(network model.Network) {
	e.assets.Refetch(network)
	e.pairs.Refetch(network)
}
