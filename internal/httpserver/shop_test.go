package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/db"
	"github.com/Skotchmaster/shoe_shop/internal/logging"
	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
	"github.com/Skotchmaster/shoe_shop/internal/storage"
	"github.com/Skotchmaster/shoe_shop/internal/store"
)

type testEnv struct {
	E     *echo.Echo
	Store *store.Store
}

func testProduct(id string, stock int) models.Product {
	return models.Product{
		ID:           id,
		Title:        "Shoe " + id,
		Price:        19.99,
		UnitsInStock: stock,
		Votes: models.Votes{
			UpVotes:   models.UpVotes{UpperLimit: 2},
			DownVotes: models.DownVotes{LowerLimit: -2},
		},
		CreatedAt: "2021-01-01T00:00:00Z",
		UpdatedAt: "2021-01-01T00:00:00Z",
	}
}

func newShopEnv(t *testing.T, products ...models.Product) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	st, err := storage.NewGormStore(gdb)
	require.NoError(t, err)
	require.NoError(t, storage.Save(ctx, st, store.ProductsKey, products))

	s, err := store.New(ctx, store.Deps{Storage: st, Logger: logging.Discard()})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = s.Run(runCtx) }()
	t.Cleanup(func() {
		cancel()
		<-s.Done()
	})
	require.Eventually(t, func() bool { return s.Loading().HasLoaded }, time.Second, 5*time.Millisecond)

	e := echo.New()
	RegisterShop(e, &Deps{
		ShopHandler: &ShopHTTP{Store: s},
		Ready:       func() bool { return s.Loading().HasLoaded },
	})
	return &testEnv{E: e, Store: s}
}

func (env *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestShop_Health(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 1))

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", "").Code)
}

func TestShop_GetState(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 3), testProduct("p2", 1))

	rec := env.do(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[StateResponse](t, rec)
	assert.Len(t, got.Products, 2)
	assert.Empty(t, got.CartItems)
	assert.Equal(t, models.Loading{HasLoaded: true}, got.Loading)
	assert.Zero(t, got.CartCount)
}

func TestShop_CartFlow(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 2))

	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/api/cart/items", `{"id":"p1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	cart := decode[CartResponse](t, env.do(t, http.MethodGet, "/api/cart", ""))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity, "quantity is capped by stock")
	assert.Equal(t, 2, cart.Count)
	assert.InDelta(t, 39.98, cart.Total, 1e-9)

	rec := env.do(t, http.MethodPatch, "/api/cart/items/p1", `{"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[CartResponse](t, rec).Items[0].Quantity)

	rec = env.do(t, http.MethodPatch, "/api/cart/items/p1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[CartResponse](t, rec).Items[0].Quantity, "above stock is ignored")

	rec = env.do(t, http.MethodDelete, "/api/cart/items/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[CartResponse](t, rec).Items)

	env.do(t, http.MethodPost, "/api/cart/items", `{"id":"p1"}`)
	rec = env.do(t, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[CartResponse](t, rec)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Empty(t, env.Store.CartItems())
}

func TestShop_CartValidation(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 2))

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "add without id", method: http.MethodPost, target: "/api/cart/items", body: `{}`},
		{name: "add malformed", method: http.MethodPost, target: "/api/cart/items", body: `{"id":`},
		{name: "edit without quantity", method: http.MethodPatch, target: "/api/cart/items/p1", body: `{}`},
		{name: "edit wrong type", method: http.MethodPatch, target: "/api/cart/items/p1", body: `{"quantity":"two"}`},
	}
	for _, tt := range tests {
		rec := env.do(t, tt.method, tt.target, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
	}
}

func TestShop_ProductVotesAndFavorite(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 1))

	var products []models.Product
	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/api/products/p1/upvote", "")
		require.Equal(t, http.StatusOK, rec.Code)
		products = decode[[]models.Product](t, rec)
	}
	assert.Equal(t, 2, products[0].Votes.UpVotes.CurrentValue)

	rec := env.do(t, http.MethodPost, "/api/products/p1/downvote", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, decode[[]models.Product](t, rec)[0].Votes.DownVotes.CurrentValue)

	rec = env.do(t, http.MethodPost, "/api/products/p1/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[[]models.Product](t, rec)[0].IsFavorite)

	rec = env.do(t, http.MethodPost, "/api/products/unknown/upvote", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShop_CreateProduct(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 1))

	rec := env.do(t, http.MethodPost, "/api/products", `{"title":" Court Classic ","price":59.5,"unitsInStock":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[models.Product](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Court Classic", created.Title)
	assert.Equal(t, 10, created.Votes.UpVotes.UpperLimit)
	assert.Equal(t, -10, created.Votes.DownVotes.LowerLimit)
	_, err := time.Parse(time.RFC3339, created.CreatedAt)
	assert.NoError(t, err)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	products := decode[[]models.Product](t, env.do(t, http.MethodGet, "/api/products", ""))
	require.Len(t, products, 2)
	assert.Equal(t, created, products[0], "new products go first")

	for _, body := range []string{
		`{"title":"","price":1}`,
		`{"title":"x","price":-1}`,
		`{"title":"x","unitsInStock":-1}`,
		`{"title":"x","upperLimit":-1}`,
		`not json`,
	} {
		rec := env.do(t, http.MethodPost, "/api/products", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

type stoppedStore struct{}

func (stoppedStore) Snapshot() models.AppState { return models.AppState{} }

func (stoppedStore) DispatchSync(context.Context, shop.Action) (models.AppState, error) {
	return models.AppState{}, store.ErrStopped
}

func TestShop_StoppedStore(t *testing.T) {
	t.Parallel()

	e := echo.New()
	RegisterShop(e, &Deps{
		ShopHandler: &ShopHTTP{Store: stoppedStore{}},
		Ready:       func() bool { return false },
	})

	req := httptest.NewRequest(http.MethodPost, "/api/products/p1/upvote", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestShop_HandlerViaContext(t *testing.T) {
	t.Parallel()
	env := newShopEnv(t, testProduct("p1", 1))
	h := &ShopHTTP{Store: env.Store}

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/p1", nil)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	require.NoError(t, h.RemoveCartItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
