package orders

import (
	"github.com/kridana/kridana-api/internal/platform/timeutil"
	ordersvc "github.com/kridana/kridana-api/internal/service/order"
)

// Line is one snapshot line on a placed order.
type Line struct {
	ItemID      string  `json:"itemId"             doc:"Product identifier"   example:"p1"`
	Name        string  `json:"name"               doc:"Product name"         example:"Running Shoe"`
	UnitPrice   float64 `json:"unitPrice"          doc:"Unit price"           example:"500"`
	ImageRef    string  `json:"imageRef,omitempty" doc:"Product image URL"`
	SizeVariant string  `json:"sizeVariant"        doc:"Size variant"         example:"M"`
	Quantity    int     `json:"quantity"           doc:"Quantity"             example:"2"`
}

// Address is the delivery address on an order.
type Address struct {
	FullName string `json:"fullName"        doc:"Recipient's full name" example:"Uma Devi"`
	Line1    string `json:"line1"           doc:"Address line 1"        example:"12 MG Road"`
	Line2    string `json:"line2,omitempty" doc:"Address line 2"`
	City     string `json:"city"            doc:"City"                  example:"Bengaluru"`
	State    string `json:"state,omitempty" doc:"State"                 example:"Karnataka"`
	PinCode  string `json:"pinCode"         doc:"Postal code"           example:"560001"`
	Phone    string `json:"phone"           doc:"Contact phone"         example:"+919876543210"`
}

// Order represents a placed order in responses. The lines are a snapshot
// taken at checkout; later cart edits never change them.
type Order struct {
	ID         string        `json:"id"                   doc:"Unique identifier"`
	Lines      []Line        `json:"lines"                doc:"Cart snapshot at checkout"`
	Total      float64       `json:"total"                doc:"Order total"        example:"1000"`
	Address    Address       `json:"address"              doc:"Delivery address"`
	Status     string        `json:"status"               doc:"Order status"       enum:"pending,paid,cancelled" example:"pending"`
	PaymentRef string        `json:"paymentRef,omitempty" doc:"Gateway payment reference"`
	CreatedAt  timeutil.Time `json:"createdAt"            doc:"Creation timestamp" example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt  timeutil.Time `json:"updatedAt"            doc:"Last update timestamp"`
}

// CheckoutPayload is the redirect payload for the gateway's hosted page.
type CheckoutPayload struct {
	OrderID          string  `json:"orderId"          doc:"Order being paid"`
	Amount           float64 `json:"amount"           doc:"Amount to charge" example:"1000"`
	EncryptedRequest string  `json:"encryptedRequest" doc:"Opaque gateway request blob"`
	AccessCode       string  `json:"accessCode"       doc:"Gateway access code"`
	RedirectURL      string  `json:"redirectUrl"      doc:"Hosted payment page URL"`
}

func toOrder(o ordersvc.Order) Order {
	lines := make([]Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = Line{
			ItemID:      l.ItemID,
			Name:        l.Name,
			UnitPrice:   l.UnitPrice,
			ImageRef:    l.ImageRef,
			SizeVariant: l.SizeVariant,
			Quantity:    l.Quantity,
		}
	}
	return Order{
		ID:    o.ID,
		Lines: lines,
		Total: o.Total,
		Address: Address{
			FullName: o.Address.FullName,
			Line1:    o.Address.Line1,
			Line2:    o.Address.Line2,
			City:     o.Address.City,
			State:    o.Address.State,
			PinCode:  o.Address.PinCode,
			Phone:    o.Address.Phone,
		},
		Status:     o.Status,
		PaymentRef: o.PaymentRef,
		CreatedAt:  timeutil.Time{Time: o.CreatedAt},
		UpdatedAt:  timeutil.Time{Time: o.UpdatedAt},
	}
}
