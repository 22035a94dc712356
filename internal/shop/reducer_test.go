package shop

import (
	"errors"
	"testing"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, stock int) models.Product {
	return models.Product{
		ID:           id,
		Title:        "shoe " + id,
		Img:          "/img/" + id + ".png",
		Price:        10,
		UnitsInStock: stock,
		Votes: models.Votes{
			UpVotes:   models.UpVotes{CurrentValue: 0, UpperLimit: 3},
			DownVotes: models.DownVotes{CurrentValue: 0, LowerLimit: -3},
		},
		CreatedAt: "2021-01-01T00:00:00Z",
		UpdatedAt: "2021-01-02T00:00:00Z",
	}
}

func mustReduce(t *testing.T, state models.AppState, actions ...Action) models.AppState {
	t.Helper()
	for _, a := range actions {
		var err error
		state, err = Reduce(state, a)
		require.NoError(t, err)
	}
	return state
}

type unknownAction struct{}

func (unknownAction) Kind() Kind { return "unknown" }
func (unknownAction) action()    {}

func TestReduce_UnknownActionFails(t *testing.T) {
	t.Parallel()

	_, err := Reduce(models.AppState{}, unknownAction{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnhandledAction)

	_, err = Reduce(models.AppState{}, nil)
	assert.ErrorIs(t, err, ErrUnhandledAction)
}

func TestReduce_UpVoteStopsAtUpperLimit(t *testing.T) {
	t.Parallel()

	p := product("p2", 1)
	p.Votes.UpVotes = models.UpVotes{CurrentValue: 2, UpperLimit: 2}
	state := models.AppState{Products: []models.Product{p}}

	next := mustReduce(t, state, UpVote{ID: "p2"})
	assert.Equal(t, 2, next.Products[0].Votes.UpVotes.CurrentValue)
}

func TestReduce_UpVoteNeverExceedsLimit(t *testing.T) {
	t.Parallel()

	state := models.AppState{Products: []models.Product{product("a", 1), product("b", 1)}}
	for i := 0; i < 10; i++ {
		state = mustReduce(t, state, UpVote{ID: "a"})
		for _, p := range state.Products {
			assert.LessOrEqual(t, p.Votes.UpVotes.CurrentValue, p.Votes.UpVotes.UpperLimit)
		}
	}
	assert.Equal(t, 3, state.Products[0].Votes.UpVotes.CurrentValue)
	assert.Equal(t, 0, state.Products[1].Votes.UpVotes.CurrentValue)
}

func TestReduce_DownVoteStopsAtLowerLimit(t *testing.T) {
	t.Parallel()

	state := models.AppState{Products: []models.Product{product("a", 1)}}
	for i := 0; i < 10; i++ {
		state = mustReduce(t, state, DownVote{ID: "a"})
		down := state.Products[0].Votes.DownVotes
		assert.GreaterOrEqual(t, down.CurrentValue, down.LowerLimit)
	}
	assert.Equal(t, -3, state.Products[0].Votes.DownVotes.CurrentValue)
}

// A "currentValue < lowerLimit" guard would never let a counter that starts
// above its floor move, and would push one already below it further down.
// Both cases are pinned here.
func TestReduce_DownVoteDoesNotUseLessThanGuard(t *testing.T) {
	t.Parallel()

	above := product("above", 1)
	above.Votes.DownVotes = models.DownVotes{CurrentValue: 5, LowerLimit: 0}
	below := product("below", 1)
	below.Votes.DownVotes = models.DownVotes{CurrentValue: -2, LowerLimit: 0}

	state := models.AppState{Products: []models.Product{above, below}}
	next := mustReduce(t, state, DownVote{ID: "above"}, DownVote{ID: "below"})

	assert.Equal(t, 4, next.Products[0].Votes.DownVotes.CurrentValue)
	assert.Equal(t, -2, next.Products[1].Votes.DownVotes.CurrentValue)
}

func TestReduce_ProductActionsOnUnknownIDAreNoOps(t *testing.T) {
	t.Parallel()

	state := models.AppState{Products: []models.Product{product("a", 1)}}

	tests := []struct {
		name   string
		action Action
	}{
		{name: "upvote", action: UpVote{ID: "missing"}},
		{name: "downvote", action: DownVote{ID: "missing"}},
		{name: "favorite", action: SetFavorite{ID: "missing"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := mustReduce(t, state, tt.action)
			assert.Equal(t, state.Products, next.Products)
			assert.Same(t, &state.Products[0], &next.Products[0])
		})
	}
}

func TestReduce_SetFavoriteToggles(t *testing.T) {
	t.Parallel()

	state := models.AppState{Products: []models.Product{product("a", 1)}}

	once := mustReduce(t, state, SetFavorite{ID: "a"})
	assert.True(t, once.Products[0].IsFavorite)
	assert.False(t, state.Products[0].IsFavorite, "input state must not change")

	twice := mustReduce(t, once, SetFavorite{ID: "a"})
	assert.False(t, twice.Products[0].IsFavorite)
}

func TestReduce_SaveNewProductPrepends(t *testing.T) {
	t.Parallel()

	a, b, newP := product("a", 1), product("b", 1), product("new", 1)
	state := models.AppState{Products: []models.Product{a, b}}

	next := mustReduce(t, state, SaveNewProduct{Product: newP})
	assert.Equal(t, []models.Product{newP, a, b}, next.Products)
	assert.Equal(t, []models.Product{a, b}, state.Products)

	dup := mustReduce(t, next, SaveNewProduct{Product: a})
	assert.Len(t, dup.Products, 4)
}

func TestReduce_LoadingSuccess(t *testing.T) {
	t.Parallel()

	cached := []models.Product{product("cached", 1)}
	fetched := []models.Product{product("remote", 2)}

	tests := []struct {
		name string
		data []models.Product
		want []models.Product
	}{
		{name: "without data keeps products", data: nil, want: cached},
		{name: "with data replaces products", data: fetched, want: fetched},
		{name: "empty data replaces products", data: []models.Product{}, want: []models.Product{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := mustReduce(t, models.AppState{Products: cached}, LoadingSuccess{Data: tt.data})
			assert.True(t, next.Loading.HasLoaded)
			assert.False(t, next.Loading.HasError)
			assert.Equal(t, tt.want, next.Products)
		})
	}
}

func TestReduce_LoadingError(t *testing.T) {
	t.Parallel()

	state := models.AppState{Products: []models.Product{product("a", 1)}}
	next := mustReduce(t, state, LoadingError{Err: errors.New("network down")})

	assert.Equal(t, models.Loading{HasLoaded: true, HasError: true, LoadingError: "network down"}, next.Loading)
	assert.Equal(t, state.Products, next.Products)
}

func TestKindAndProductID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindEditCartItem, EditCartItem{ID: "x", Quantity: 2}.Kind())
	assert.Equal(t, "x", ProductID(EditCartItem{ID: "x"}))
	assert.Equal(t, "n", ProductID(SaveNewProduct{Product: models.Product{ID: "n"}}))
	assert.Empty(t, ProductID(ClearCart{}))
	assert.True(t, IsCartAction(ClearCart{}))
	assert.False(t, IsCartAction(UpVote{ID: "x"}))
}
