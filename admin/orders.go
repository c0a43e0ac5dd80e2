package admin

import (
	"context"
	"fmt"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

const EventOrderUpdated = "order.updated"

// Notifier receives order events for the live admin feed.
type Notifier interface {
	Publish(event string, payload any)
}

type Orders struct {
	repo     repository.OrderRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewOrders(repo repository.OrderRepository, notifier Notifier, logger *zap.Logger) *Orders {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orders{repo: repo, notifier: notifier, logger: logger}
}

func (o *Orders) List(ctx context.Context) ([]models.Order, error) {
	return o.repo.List(ctx)
}

func (o *Orders) Get(ctx context.Context, id uint) (*models.Order, error) {
	return o.repo.GetByID(ctx, id)
}

// UpdateStatus moves an order along pending -> confirmed -> cancelled.
func (o *Orders) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	order, err := o.repo.TransitionStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	o.logger.Info("order status updated", zap.Uint("order_id", id), zap.String("status", string(order.Status)))
	if o.notifier != nil {
		o.notifier.Publish(EventOrderUpdated, order)
	}
	return order, nil
}

func (o *Orders) Delete(ctx context.Context, id uint) error {
	if err := o.repo.Delete(ctx, id); err != nil {
		return err
	}
	o.logger.Info("order deleted", zap.Uint("order_id", id))
	return nil
}

type Customers struct {
	profiles repository.ProfileRepository
}

func NewCustomers(profiles repository.ProfileRepository) *Customers {
	return &Customers{profiles: profiles}
}

// List returns customer profiles, newest first.
func (c *Customers) List(ctx context.Context) ([]models.Profile, error) {
	return c.profiles.ListByRole(ctx, models.RoleCustomer)
}
