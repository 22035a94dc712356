package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/internal/logging"
	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
	"github.com/Skotchmaster/shoe_shop/internal/store"
)

const (
	defaultUpperLimit = 10
	defaultLowerLimit = -10
)

// ShopStore is the part of *store.Store the HTTP layer needs.
type ShopStore interface {
	Snapshot() models.AppState
	DispatchSync(ctx context.Context, a shop.Action) (models.AppState, error)
}

type ShopHTTP struct {
	Store ShopStore
}

func (h *ShopHTTP) dispatch(c echo.Context, l *slog.Logger, a shop.Action) (models.AppState, error) {
	state, err := h.Store.DispatchSync(c.Request().Context(), a)
	if err == nil {
		return state, nil
	}
	if errors.Is(err, store.ErrStopped) {
		l.Error("dispatch_failed", "status", 503, "reason", "store stopped", "kind", a.Kind(), "error", err)
		return state, echo.NewHTTPError(http.StatusServiceUnavailable, "shop is not running")
	}
	l.Warn("dispatch_failed", "status", 503, "reason", "request canceled", "kind", a.Kind(), "error", err)
	return state, echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
}

func (h *ShopHTTP) GetState(c echo.Context) error {
	st := h.Store.Snapshot()
	return c.JSON(http.StatusOK, StateResponse{
		Products:  st.Products,
		CartItems: st.CartItems,
		Loading:   st.Loading,
		CartTotal: shop.CartTotal(st.CartItems),
		CartCount: shop.CartCount(st.CartItems),
	})
}

func (h *ShopHTTP) GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Snapshot().Products)
}

func (h *ShopHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := newProduct(req, time.Now())
	if err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.dispatch(c, l, shop.SaveNewProduct{Product: p}); err != nil {
		return err
	}

	l.Info("product_create_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func newProduct(req CreateProductRequest, now time.Time) (models.Product, error) {
	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		return models.Product{}, errors.New("title is required")
	case req.Price < 0:
		return models.Product{}, errors.New("price must not be negative")
	case req.UnitsInStock < 0:
		return models.Product{}, errors.New("unitsInStock must not be negative")
	}

	upper, lower := defaultUpperLimit, defaultLowerLimit
	if req.UpperLimit != nil {
		upper = *req.UpperLimit
	}
	if req.LowerLimit != nil {
		lower = *req.LowerLimit
	}
	if upper < 0 || lower > 0 {
		return models.Product{}, errors.New("vote limits must enclose zero")
	}

	ts := now.UTC().Format(time.RFC3339)
	return models.Product{
		ID:           uuid.NewString(),
		Title:        title,
		Img:          req.Img,
		Price:        req.Price,
		UnitsInStock: req.UnitsInStock,
		Votes: models.Votes{
			UpVotes:   models.UpVotes{UpperLimit: upper},
			DownVotes: models.DownVotes{LowerLimit: lower},
		},
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

func (h *ShopHTTP) productAction(name string, build func(id string) shop.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("handler", "product."+name)

		id := c.Param("id")
		state, err := h.dispatch(c, l, build(id))
		if err != nil {
			return err
		}

		l.Info("product_"+name+"_success", "product_id", id)
		return c.JSON(http.StatusOK, state.Products)
	}
}

func (h *ShopHTTP) UpVote(c echo.Context) error {
	return h.productAction("upvote", func(id string) shop.Action { return shop.UpVote{ID: id} })(c)
}

func (h *ShopHTTP) DownVote(c echo.Context) error {
	return h.productAction("downvote", func(id string) shop.Action { return shop.DownVote{ID: id} })(c)
}

func (h *ShopHTTP) ToggleFavorite(c echo.Context) error {
	return h.productAction("favorite", func(id string) shop.Action { return shop.SetFavorite{ID: id} })(c)
}

func cartResponse(items []models.CartItem) CartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		Items: items,
		Total: shop.CartTotal(items),
		Count: shop.CartCount(items),
	}
}

func (h *ShopHTTP) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartResponse(h.Store.Snapshot().CartItems))
}

func (h *ShopHTTP) ClearCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.clear")

	state, err := h.dispatch(c, l, shop.ClearCart{})
	if err != nil {
		return err
	}

	l.Info("cart_clear_success")
	return c.JSON(http.StatusOK, cartResponse(state.CartItems))
}

func (h *ShopHTTP) AddCartItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.add_item")

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.ID) == "" {
		l.Warn("cart_add_failed", "status", 400, "reason", "id is required")
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	state, err := h.dispatch(c, l, shop.AddCartItem{ID: req.ID})
	if err != nil {
		return err
	}

	l.Info("cart_add_success", "product_id", req.ID)
	return c.JSON(http.StatusOK, cartResponse(state.CartItems))
}

func (h *ShopHTTP) EditCartItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.edit_item")

	id := c.Param("id")
	var req EditCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_edit_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		l.Warn("cart_edit_failed", "status", 400, "reason", "quantity is required")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}

	state, err := h.dispatch(c, l, shop.EditCartItem{ID: id, Quantity: *req.Quantity})
	if err != nil {
		return err
	}

	l.Info("cart_edit_success", "product_id", id, "quantity", *req.Quantity)
	return c.JSON(http.StatusOK, cartResponse(state.CartItems))
}

func (h *ShopHTTP) RemoveCartItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.remove_item")

	id := c.Param("id")
	state, err := h.dispatch(c, l, shop.RemoveCartItem{ID: id})
	if err != nil {
		return err
	}

	l.Info("cart_remove_success", "product_id", id)
	return c.JSON(http.StatusOK, cartResponse(state.CartItems))
}
