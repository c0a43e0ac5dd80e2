package checkout

import (
	"errors"
	"strings"
	"testing"

	"github.com/masum-diu/nishaan/cart"
	"github.com/shopspring/decimal"
)

func TestValidate(t *testing.T) {
	items := []cart.LineItem{{ProductID: 1, VariantID: 1, Price: decimal.NewFromInt(10), Quantity: 1}}

	tests := []struct {
		name   string
		mutate func(*Request)
		items  []cart.LineItem
		fields []string
	}{
		{"valid", func(*Request) {}, items, nil},
		{"empty cart", func(*Request) {}, nil, []string{"cart"}},
		{"missing phone", func(r *Request) { r.Phone = "  " }, items, []string{"phone"}},
		{"unknown method", func(r *Request) { r.PaymentMethod = "card" }, items, []string{"payment_method"}},
		{"bkash no tx", func(r *Request) { r.PaymentMethod = "bkash" }, items, []string{"transaction_id"}},
		{"zero quantity", func(*Request) {}, []cart.LineItem{{ProductID: 1, VariantID: 1, Quantity: 0}}, []string{"cart"}},
		{"quantity above cap", func(*Request) {}, []cart.LineItem{{ProductID: 1, VariantID: 1, Quantity: cart.MaxLineQuantity + 1}}, []string{"cart"}},
		{"several", func(r *Request) { r.FullName = ""; r.Address = "" }, nil, []string{"cart", "full_name", "address"}},
	}
	for _, tt := range tests {
		req := validRequest()
		tt.mutate(&req)
		err := Validate(req, tt.items)
		if tt.fields == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if len(verr.Fields) != len(tt.fields) {
			t.Errorf("%s: expected fields %v, got %v", tt.name, tt.fields, verr.Fields)
		}
		for _, f := range tt.fields {
			if _, ok := verr.Fields[f]; !ok {
				t.Errorf("%s: missing field %q", tt.name, f)
			}
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "required", "cart": "cart is empty"}}
	if !strings.HasPrefix(err.Error(), "invalid order: cart:") {
		t.Errorf("expected sorted fields, got %q", err.Error())
	}
}
