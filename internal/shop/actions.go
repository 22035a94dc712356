package shop

import "github.com/Skotchmaster/shoe_shop/internal/models"

type Kind string

const (
	KindUpVote         Kind = "product_upvoted"
	KindDownVote       Kind = "product_downvoted"
	KindSetFavorite    Kind = "product_favorite_toggled"
	KindSaveNewProduct Kind = "product_created"
	KindClearCart      Kind = "cart_cleared"
	KindAddCartItem    Kind = "cartitem_added"
	KindEditCartItem   Kind = "cartitem_edited"
	KindRemoveCartItem Kind = "cartitem_removed"
	KindLoadingSuccess Kind = "loading_succeeded"
	KindLoadingError   Kind = "loading_failed"
)

// Action is a request to transition the shop state. Only the types in this
// file implement it.
type Action interface {
	Kind() Kind
	action()
}

type UpVote struct{ ID string }

type DownVote struct{ ID string }

type SetFavorite struct{ ID string }

type SaveNewProduct struct{ Product models.Product }

type ClearCart struct{}

type AddCartItem struct{ ID string }

type EditCartItem struct {
	ID       string
	Quantity int
}

type RemoveCartItem struct{ ID string }

// LoadingSuccess marks the initial load as finished. A nil Data keeps the
// current products; a non-nil slice, even an empty one, replaces them.
type LoadingSuccess struct{ Data []models.Product }

type LoadingError struct{ Err error }

func (UpVote) Kind() Kind         { return KindUpVote }
func (DownVote) Kind() Kind       { return KindDownVote }
func (SetFavorite) Kind() Kind    { return KindSetFavorite }
func (SaveNewProduct) Kind() Kind { return KindSaveNewProduct }
func (ClearCart) Kind() Kind      { return KindClearCart }
func (AddCartItem) Kind() Kind    { return KindAddCartItem }
func (EditCartItem) Kind() Kind   { return KindEditCartItem }
func (RemoveCartItem) Kind() Kind { return KindRemoveCartItem }
func (LoadingSuccess) Kind() Kind { return KindLoadingSuccess }
func (LoadingError) Kind() Kind   { return KindLoadingError }

func (UpVote) action()         {}
func (DownVote) action()       {}
func (SetFavorite) action()    {}
func (SaveNewProduct) action() {}
func (ClearCart) action()      {}
func (AddCartItem) action()    {}
func (EditCartItem) action()   {}
func (RemoveCartItem) action() {}
func (LoadingSuccess) action() {}
func (LoadingError) action()   {}

// ProductID returns the product an action targets, or "" for actions that
// are not about a single product.
func ProductID(a Action) string {
	switch a := a.(type) {
	case UpVote:
		return a.ID
	case DownVote:
		return a.ID
	case SetFavorite:
		return a.ID
	case SaveNewProduct:
		return a.Product.ID
	case AddCartItem:
		return a.ID
	case EditCartItem:
		return a.ID
	case RemoveCartItem:
		return a.ID
	default:
		return ""
	}
}

// IsCartAction reports whether a only touches cart items.
func IsCartAction(a Action) bool {
	switch a.(type) {
	case ClearCart, AddCartItem, EditCartItem, RemoveCartItem:
		return true
	default:
		return false
	}
}
