package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zone selects the shipping fee.
type Zone string

// ShippingTable has one named local zone and a flat fee for everywhere else.
type ShippingTable struct {
	LocalZone Zone
	LocalFee  decimal.Decimal
	OtherFee  decimal.Decimal
}

func DefaultShippingTable() ShippingTable {
	return ShippingTable{
		LocalZone: "dhaka",
		LocalFee:  decimal.NewFromInt(60),
		OtherFee:  decimal.NewFromInt(110),
	}
}

// Fee is the shipping charge for a non-empty cart sent to zone.
func (t ShippingTable) Fee(zone Zone) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(string(zone)), string(t.LocalZone)) {
		return t.LocalFee
	}
	return t.OtherFee
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// Compute derives subtotal, shipping and total from the snapshotted line
// prices. An empty cart is never charged shipping.
func Compute(items []LineItem, zone Zone, table ShippingTable) Totals {
	t := Totals{Subtotal: decimal.Zero, ShippingFee: decimal.Zero}
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.LineTotal())
		t.ItemCount += it.Quantity
	}
	if len(items) > 0 {
		t.ShippingFee = table.Fee(zone)
	}
	t.Total = t.Subtotal.Add(t.ShippingFee)
	return t
}
