package orders

// OrderCreateInput places an order. The line snapshot is taken from the
// caller's server-side cart, so the body carries only the checkout form.
type OrderCreateInput struct {
	Body struct {
		Address    Address `json:"address"    doc:"Delivery address"`
		AgreeTerms bool    `json:"agreeTerms" doc:"Whether the caller accepted the terms of sale"`
	}
}

// OrderGetInput identifies an order by path.
type OrderGetInput struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
}

// CheckoutInput starts gateway payment for an order.
type CheckoutInput struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
	Body    struct {
		CallbackURL string `json:"callbackUrl,omitempty" doc:"URL the gateway redirects to after payment" format:"uri"`
	}
}

// PaymentConfirmInput records a successful gateway callback.
type PaymentConfirmInput struct {
	OrderID string `path:"orderId" doc:"Order identifier"`
	Body    struct {
		PaymentRef string `json:"paymentRef" doc:"Gateway payment reference" minLength:"1"`
	}
}
