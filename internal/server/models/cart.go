package models

// CartItem is one line of a user's cart: a product reference and a
// quantity. Carts live in the session store, not in Postgres.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}
