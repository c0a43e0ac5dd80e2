package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by an admin
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by an admin

	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBkash          PaymentMethod = "bkash" // requires a transaction id
)

// Order is written once at checkout. Items and the money fields are frozen at
// that point and never recomputed from live catalog data.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Ref           string          `gorm:"uniqueIndex;not null" json:"ref"`
	UserID        *string         `gorm:"index" json:"user_id,omitempty"`
	FullName      string          `gorm:"not null" json:"user_name"`
	Phone         string          `gorm:"not null" json:"phone_number"`
	Address       string          `gorm:"not null" json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Zone          string          `json:"zone"`
	PaymentMethod PaymentMethod   `gorm:"type:VARCHAR(20);not null" json:"payment_method"`
	TransactionID string          `json:"bkash_transaction_id,omitempty"`
	Items         []OrderItem     `gorm:"serializer:json;type:jsonb" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	ShippingFee   decimal.Decimal `gorm:"type:numeric(12,2)" json:"shipping_fee"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem is a snapshot of one cart line at submission time.
type OrderItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"name"`
	VariantID   uint            `json:"variant_id"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Quantity    int             `json:"quantity"`
}

var ErrInvalidTransition = errors.New("invalid order status transition")

// ParseOrderStatus maps user input to a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// CanTransitionTo reports whether an admin may move an order from s to next.
// Cancelled is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusCancelled
	default:
		return false
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCashOnDelivery:
		return PaymentCashOnDelivery, true
	case PaymentBkash:
		return PaymentBkash, true
	default:
		return "", false
	}
}
