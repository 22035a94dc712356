package shop

import (
	"slices"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

func findProduct(products []models.Product, id string) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
}

// updateProduct applies fn to a copy of the product with the given id. The
// input slice is returned when the id is unknown or fn reports no change.
func updateProduct(products []models.Product, id string, fn func(*models.Product) bool) []models.Product {
	i := findProduct(products, id)
	if i < 0 {
		return products
	}
	p := products[i]
	if !fn(&p) {
		return products
	}
	out := slices.Clone(products)
	out[i] = p
	return out
}

func upVote(products []models.Product, id string) []models.Product {
	return updateProduct(products, id, func(p *models.Product) bool {
		up := &p.Votes.UpVotes
		if up.CurrentValue >= up.UpperLimit {
			return false
		}
		up.CurrentValue++
		return true
	})
}

// downVote moves the down counter one step toward its lower limit and stops
// there.
func downVote(products []models.Product, id string) []models.Product {
	return updateProduct(products, id, func(p *models.Product) bool {
		down := &p.Votes.DownVotes
		if down.CurrentValue <= down.LowerLimit {
			return false
		}
		down.CurrentValue--
		return true
	})
}

func setFavorite(products []models.Product, id string) []models.Product {
	return updateProduct(products, id, func(p *models.Product) bool {
		p.IsFavorite = !p.IsFavorite
		return true
	})
}

func saveNewProduct(products []models.Product, p models.Product) []models.Product {
	out := make([]models.Product, 0, len(products)+1)
	out = append(out, p)
	return append(out, products...)
}
