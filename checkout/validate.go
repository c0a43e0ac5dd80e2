// Package checkout turns a cart into a persisted order.
package checkout

import (
	"fmt"
	"strings"

	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/models"
)

type Request struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Zone          string `json:"zone"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"-"`
}

// Validate runs every local check and reports all failures at once.
func Validate(req Request, items []cart.LineItem) error {
	fields := map[string]string{}
	if len(items) == 0 {
		fields["cart"] = "cart is empty"
	}
	for _, it := range items {
		if it.Quantity < 1 || it.Quantity > cart.MaxLineQuantity {
			fields["cart"] = fmt.Sprintf("quantity must be between 1 and %d", cart.MaxLineQuantity)
			break
		}
	}

	required := []struct{ name, value string }{
		{"full_name", req.FullName},
		{"phone", req.Phone},
		{"address", req.Address},
		{"city", req.City},
		{"zone", req.Zone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "required"
		}
	}

	method, ok := models.ParsePaymentMethod(req.PaymentMethod)
	switch {
	case !ok:
		fields["payment_method"] = "must be cash_on_delivery or bkash"
	case method == models.PaymentBkash && strings.TrimSpace(req.TransactionID) == "":
		fields["transaction_id"] = "required for bkash payments"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
