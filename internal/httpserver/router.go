package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ShopHandler    *ShopHTTP
	CatalogHandler *CatalogHTTP
	// Ready reports whether the service can take traffic. Nil means always.
	Ready func() bool
}

func registerHealth(e *echo.Echo, ready func() bool) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if ready != nil && !ready() {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
}

func RegisterShop(e *echo.Echo, d *Deps) {
	registerHealth(e, d.Ready)

	api := e.Group("/api")
	api.GET("/state", d.ShopHandler.GetState)

	products := api.Group("/products")
	products.GET("", d.ShopHandler.GetProducts)
	products.POST("", d.ShopHandler.CreateProduct)
	products.POST("/:id/upvote", d.ShopHandler.UpVote)
	products.POST("/:id/downvote", d.ShopHandler.DownVote)
	products.POST("/:id/favorite", d.ShopHandler.ToggleFavorite)

	cart := api.Group("/cart")
	cart.GET("", d.ShopHandler.GetCart)
	cart.DELETE("", d.ShopHandler.ClearCart)
	cart.POST("/items", d.ShopHandler.AddCartItem)
	cart.PATCH("/items/:id", d.ShopHandler.EditCartItem)
	cart.DELETE("/items/:id", d.ShopHandler.RemoveCartItem)
}

func RegisterCatalog(e *echo.Echo, d *Deps) {
	registerHealth(e, d.Ready)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
}
