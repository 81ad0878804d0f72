package cart

// CartOutput wraps the cart state for all read and mutate responses.
type CartOutput struct {
	Body Cart
}
