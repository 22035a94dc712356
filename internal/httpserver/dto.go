package httpserver

import "github.com/Skotchmaster/shoe_shop/internal/models"

type CreateProductRequest struct {
	Title        string  `json:"title"`
	Img          string  `json:"img"`
	Price        float64 `json:"price"`
	UnitsInStock int     `json:"unitsInStock"`
	UpperLimit   *int    `json:"upperLimit"`
	LowerLimit   *int    `json:"lowerLimit"`
}

type AddCartItemRequest struct {
	ID string `json:"id"`
}

type EditCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

type StateResponse struct {
	Products  []models.Product  `json:"products"`
	CartItems []models.CartItem `json:"cartItems"`
	Loading   models.Loading    `json:"loading"`
	CartTotal float64           `json:"cartTotal"`
	CartCount int               `json:"cartCount"`
}
