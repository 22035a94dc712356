package store

import (
	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
)

func (s *Store) HandleUpVote(id string)   { s.Dispatch(shop.UpVote{ID: id}) }
func (s *Store) HandleDownVote(id string) { s.Dispatch(shop.DownVote{ID: id}) }

func (s *Store) HandleSetFavorite(id string) { s.Dispatch(shop.SetFavorite{ID: id}) }

func (s *Store) HandleSaveNewProduct(p models.Product) {
	s.Dispatch(shop.SaveNewProduct{Product: p})
}

func (s *Store) HandleClearCart() { s.Dispatch(shop.ClearCart{}) }

func (s *Store) HandleAddCartItem(id string) { s.Dispatch(shop.AddCartItem{ID: id}) }

func (s *Store) HandleEditCartItem(id string, quantity int) {
	s.Dispatch(shop.EditCartItem{ID: id, Quantity: quantity})
}

func (s *Store) HandleRemoveCartItem(id string) { s.Dispatch(shop.RemoveCartItem{ID: id}) }
