package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/models"
	"go.uber.org/zap"
)

const EventOrderCreated = "order.created"

type VariantLookup interface {
	VariantsByIDs(ctx context.Context, ids []uint) ([]models.Variant, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

type Notifier interface {
	Publish(event string, payload any)
}

type Service struct {
	variants VariantLookup
	orders   OrderWriter
	notifier Notifier
	shipping cart.ShippingTable
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the flow. notifier may be nil.
func NewService(variants VariantLookup, orders OrderWriter, notifier Notifier, shipping cart.ShippingTable, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		variants: variants,
		orders:   orders,
		notifier: notifier,
		shipping: shipping,
		logger:   logger,
		now:      time.Now,
	}
}

// Reconcile checks every line against live variant data: the variant must
// still exist under the same product and hold at least the line's quantity.
func Reconcile(items []cart.LineItem, live []models.Variant) error {
	byID := make(map[uint]models.Variant, len(live))
	for _, v := range live {
		byID[v.ID] = v
	}
	var short []Shortage
	for _, item := range items {
		v, ok := byID[item.VariantID]
		switch {
		case !ok || v.ProductID != item.ProductID:
			short = append(short, Shortage{Key: item.Key(), Requested: item.Quantity})
		case !v.Available() || item.Quantity > v.Stock:
			short = append(short, Shortage{Key: item.Key(), Requested: item.Quantity, Available: max(v.Stock, 0)})
		}
	}
	if len(short) > 0 {
		return &UnavailableError{Lines: short}
	}
	return nil
}

// Submit validates, reconciles, writes one order and clears the cart. The
// cart is left untouched on every failure path.
func (s *Service) Submit(ctx context.Context, store *cart.Store, req Request) (*models.Order, error) {
	items := store.Items()
	if err := Validate(req, items); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.VariantID)
	}
	live, err := s.variants.VariantsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load variants: %w", err)
	}
	if err := Reconcile(items, live); err != nil {
		return nil, err
	}

	order := s.buildOrder(req, items)
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.logger.Error("order insert failed", zap.String("ref", order.Ref), zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := store.Clear(ctx); err != nil {
		s.logger.Warn("cart clear not persisted after order", zap.String("ref", order.Ref), zap.Error(err))
	}
	if s.notifier != nil {
		s.notifier.Publish(EventOrderCreated, order)
	}
	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("ref", order.Ref),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) buildOrder(req Request, items []cart.LineItem) *models.Order {
	method, _ := models.ParsePaymentMethod(req.PaymentMethod)
	zone := strings.TrimSpace(req.Zone)
	totals := cart.Compute(items, cart.Zone(zone), s.shipping)

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, item.ToOrderItem())
	}

	now := s.now()
	order := &models.Order{
		Ref:           now.Format("20060102150405") + "-" + uuid.NewString(),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Zone:          zone,
		PaymentMethod: method,
		Items:         orderItems,
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.ShippingFee,
		Total:         totals.Total,
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
	}
	if method == models.PaymentBkash {
		order.TransactionID = strings.TrimSpace(req.TransactionID)
	}
	if req.UserID != "" {
		uid := req.UserID
		order.UserID = &uid
	}
	return order
}
