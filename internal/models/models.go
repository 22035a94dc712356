package models

type UpVotes struct {
	CurrentValue int `json:"currentValue" toml:"current_value"`
	UpperLimit   int `json:"upperLimit"   toml:"upper_limit"`
}

type DownVotes struct {
	CurrentValue int `json:"currentValue" toml:"current_value"`
	LowerLimit   int `json:"lowerLimit"   toml:"lower_limit"`
}

type Votes struct {
	UpVotes   UpVotes   `json:"upVotes"   toml:"up_votes"`
	DownVotes DownVotes `json:"downVotes" toml:"down_votes"`
}

// Product is a catalog entry. CreatedAt and UpdatedAt are opaque and never
// rewritten by the shop.
type Product struct {
	ID           string  `json:"id"           toml:"id"`
	Title        string  `json:"title"        toml:"title"`
	Img          string  `json:"img"          toml:"img"`
	Price        float64 `json:"price"        toml:"price"`
	UnitsInStock int     `json:"unitsInStock" toml:"units_in_stock"`
	Votes        Votes   `json:"votes"        toml:"votes"`
	IsFavorite   bool    `json:"isFavorite"   toml:"is_favorite"`
	CreatedAt    string  `json:"createdAt"    toml:"created_at"`
	UpdatedAt    string  `json:"updatedAt"    toml:"updated_at"`
}

// CartItem is a copy of a product taken when it was first added to the cart.
type CartItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Img          string  `json:"img"`
	Price        float64 `json:"price"`
	UnitsInStock int     `json:"unitsInStock"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
	Quantity     int     `json:"quantity"`
}

type Loading struct {
	HasLoaded    bool   `json:"hasLoaded"`
	HasError     bool   `json:"hasError"`
	LoadingError string `json:"loadingError"`
}

type AppState struct {
	Products  []Product  `json:"products"`
	CartItems []CartItem `json:"cartItems"`
	Loading   Loading    `json:"loading"`
}
