// Package shop holds the business rules of the shop as a pure reducer over
// models.AppState. Nothing here performs I/O.
package shop

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

var ErrUnhandledAction = errors.New("unhandled action")

// Reduce returns the state that results from applying a to state. The input
// is never modified; branches an action does not touch are shared with the
// returned state.
func Reduce(state models.AppState, a Action) (models.AppState, error) {
	switch a := a.(type) {
	case UpVote:
		state.Products = upVote(state.Products, a.ID)
	case DownVote:
		state.Products = downVote(state.Products, a.ID)
	case SetFavorite:
		state.Products = setFavorite(state.Products, a.ID)
	case SaveNewProduct:
		state.Products = saveNewProduct(state.Products, a.Product)
	case ClearCart:
		state.CartItems = []models.CartItem{}
	case AddCartItem:
		state.CartItems = addCartItem(state.Products, state.CartItems, a.ID)
	case EditCartItem:
		state.CartItems = editCartItem(state.CartItems, a.ID, a.Quantity)
	case RemoveCartItem:
		state.CartItems = removeCartItem(state.CartItems, a.ID)
	case LoadingSuccess:
		state.Loading.HasLoaded = true
		if a.Data != nil {
			state.Products = a.Data
		}
	case LoadingError:
		msg := "unknown error"
		if a.Err != nil {
			msg = a.Err.Error()
		}
		state.Loading = models.Loading{
			HasLoaded:    true,
			HasError:     true,
			LoadingError: msg,
		}
	default:
		return state, fmt.Errorf("%w: %T", ErrUnhandledAction, a)
	}
	return state, nil
}
