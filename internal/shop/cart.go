package shop

import (
	"math"
	"slices"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

// NewCartItem copies the display fields of p into a cart item holding one
// unit. The item does not follow later changes to p.
func NewCartItem(p models.Product) models.CartItem {
	return models.CartItem{
		ID:           p.ID,
		Title:        p.Title,
		Img:          p.Img,
		Price:        p.Price,
		UnitsInStock: p.UnitsInStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Quantity:     1,
	}
}

func findCartItem(items []models.CartItem, id string) int {
	return slices.IndexFunc(items, func(it models.CartItem) bool { return it.ID == id })
}

func addCartItem(products []models.Product, items []models.CartItem, id string) []models.CartItem {
	if i := findCartItem(items, id); i >= 0 {
		if items[i].Quantity >= items[i].UnitsInStock {
			return items
		}
		out := slices.Clone(items)
		out[i].Quantity++
		return out
	}

	j := findProduct(products, id)
	if j < 0 || products[j].UnitsInStock < 1 {
		return items
	}

	out := make([]models.CartItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, NewCartItem(products[j]))
}

func editCartItem(items []models.CartItem, id string, quantity int) []models.CartItem {
	i := findCartItem(items, id)
	if i < 0 || quantity < 1 || quantity > items[i].UnitsInStock {
		return items
	}
	if items[i].Quantity == quantity {
		return items
	}
	out := slices.Clone(items)
	out[i].Quantity = quantity
	return out
}

func removeCartItem(items []models.CartItem, id string) []models.CartItem {
	i := findCartItem(items, id)
	if i < 0 {
		return items
	}
	out := make([]models.CartItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// CartTotal sums price times quantity over items, rounded to cents.
func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return math.Round(total*100) / 100
}

func CartCount(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
