package orders

// OrderCreateOutput for POST /orders
type OrderCreateOutput struct {
	Location string `header:"Location" doc:"URL of the created order"`
	Body     Order
}

// OrdersListOutput for GET /orders
type OrdersListOutput struct {
	Body struct {
		Orders []Order `json:"orders" doc:"Caller's orders, newest first"`
	}
}
