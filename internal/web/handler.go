package web

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/explorer"
	"github.com/kaleidoswap/market-explorer/internal/query"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

const (
	themeCookie   = "theme"
	networkCookie = "network"
	themeHint     = "Sec-CH-Prefers-Color-Scheme"
	cookieMaxAge  = 365 * 24 * time.Hour
)

// Handler serves the explorer page and its JSON views. Each request builds
// its own Explorer over the shared query caches.
type Handler struct {
	logger         *zap.Logger
	assets         *query.Query[[]model.Asset]
	pairs          *query.Query[[]model.Pair]
	defaultNetwork model.Network
	loadTimeout    time.Duration
}

// NewHandler creates a new Handler. loadTimeout bounds how long a request
// waits for market data before rendering the loading state.
func NewHandler(
	logger *zap.Logger,
	assets *query.Query[[]model.Asset],
	pairs *query.Query[[]model.Pair],
	defaultNetwork model.Network,
	loadTimeout time.Duration,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !defaultNetwork.Valid() {
		defaultNetwork = model.DefaultNetwork
	}
	return &Handler{
		logger:         logger,
		assets:         assets,
		pairs:          pairs,
		defaultNetwork: defaultNetwork,
		loadTimeout:    loadTimeout,
	}
}

func (h *Handler) explorer(st explorer.State) *explorer.Explorer {
	return explorer.New(h.logger, h.assets, h.pairs, st)
}

func (h *Handler) loadContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.loadTimeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.loadTimeout)
}

// Page renders the explorer. The network cookie remembers the last
// selection; a different ?network= switches to it and refetches. An unknown
// network or malformed query falls back to defaults.
func (h *Handler) Page(c *fiber.Ctx) error {
	var req ViewRequest
	if err := c.QueryParser(&req); err != nil {
		h.logger.Debug("web.page.bad_query", zap.Error(err))
		req = ViewRequest{}
	}

	ex := h.explorer(explorer.State{Network: h.selectedNetwork(c), Theme: themeFor(c)})
	if strings.TrimSpace(req.Network) != "" {
		network, err := model.ParseNetwork(req.Network)
		if err != nil {
			h.logger.Debug("web.page.invalid_network", zap.String("network", req.Network))
			network = h.defaultNetwork
		}
		if err := ex.SetNetwork(network); err != nil {
			return err
		}
	}
	req.applyPage(ex)

	ctx, cancel := h.loadContext(c)
	defer cancel()
	ex.Load(ctx)

	body, err := renderPage(newPageData(ex, req, c.OriginalURL()))
	if err != nil {
		h.logger.Error("web.page.render_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString(msgUnexpected)
	}

	setCookie(c, networkCookie, ex.State().Network.String())
	c.Set("Accept-CH", themeHint)
	c.Set(fiber.HeaderVary, themeHint)
	c.Type("html")
	return c.Send(body)
}

// Assets returns the derived asset view as JSON.
func (h *Handler) Assets(c *fiber.Ctx) error {
	var req ViewRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}
	network, err := req.ResolveNetwork(h.defaultNetwork)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	ex := h.explorer(explorer.State{Network: network})
	req.applyAssets(ex)
	ctx, cancel := h.loadContext(c)
	defer cancel()
	ex.LoadAssets(ctx)

	v := ex.AssetsView()
	if done, err := h.writeFailure(c, "assets", v.Err, v.Loading); done {
		return err
	}
	return c.JSON(AssetsResponse{Network: v.Network, Assets: v.Items, UpdatedAt: v.UpdatedAt})
}

// Pairs returns the derived pair view as JSON.
func (h *Handler) Pairs(c *fiber.Ctx) error {
	var req ViewRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}
	network, err := req.ResolveNetwork(h.defaultNetwork)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	ex := h.explorer(explorer.State{Network: network})
	req.applyPairs(ex)
	ctx, cancel := h.loadContext(c)
	defer cancel()
	ex.LoadPairs(ctx)

	v := ex.PairsView()
	if done, err := h.writeFailure(c, "pairs", v.Err, v.Loading); done {
		return err
	}
	return c.JSON(PairsResponse{Network: v.Network, Pairs: v.Items, UpdatedAt: v.UpdatedAt})
}

// ToggleTheme flips the theme cookie and redirects back to the page.
func (h *Handler) ToggleTheme(c *fiber.Ctx) error {
	next := h.explorer(explorer.State{Theme: themeFor(c)}).ToggleTheme()
	setCookie(c, themeCookie, string(next))
	return c.Redirect(safeReturn(c.FormValue("return")), fiber.StatusSeeOther)
}

// Refresh drops the cached data for the posted (or remembered) network,
// starts a refetch and redirects back to the page.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	network, err := model.ParseNetwork(c.FormValue("network"))
	if err != nil {
		network = h.selectedNetwork(c)
	}

	h.logger.Info("web.refresh", zap.String("network", network.String()))
	h.explorer(explorer.State{Network: network}).Refresh()
	return c.Redirect(safeReturn(c.FormValue("return")), fiber.StatusSeeOther)
}

func (h *Handler) writeFailure(c *fiber.Ctx, resource string, viewErr error, loading bool) (bool, error) {
	switch {
	case viewErr != nil:
		if fe := asFetchError(viewErr); fe != nil {
			return true, c.Status(fiber.StatusBadGateway).JSON(fe)
		}
		h.logger.Error("web.view_failed", zap.String("resource", resource), zap.Error(viewErr))
		return true, c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: msgUnexpected})
	case loading:
		return true, c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{Message: msgLoading})
	}
	return false, nil
}

// selectedNetwork is the network remembered in the cookie, else the default.
func (h *Handler) selectedNetwork(c *fiber.Ctx) model.Network {
	if n, err := model.ParseNetwork(c.Cookies(networkCookie)); err == nil {
		return n
	}
	return h.defaultNetwork
}

func setCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: fiber.CookieSameSiteLaxMode,
		HTTPOnly: true,
	})
}

// themeFor prefers the theme cookie, then the OS colour-scheme hint.
func themeFor(c *fiber.Ctx) explorer.Theme {
	if t, ok := explorer.ParseTheme(c.Cookies(themeCookie)); ok {
		return t
	}
	return explorer.PreferredTheme(c.Get(themeHint))
}
