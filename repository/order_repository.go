package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/masum-diu/nishaan/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

// CreateOrder is a single insert; items travel inside the row.
func (r *orderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", translate(err))
	}
	return nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders of user %s: %w", userID, err)
	}
	return orders, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// TransitionStatus locks the row, checks the workflow and writes the new
// status in one transaction.
func (r *orderRepo) TransitionStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
			return translate(err)
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, next)
		}
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return fmt.Errorf("failed to update order %d: %w", id, err)
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound is shorthand used by controllers.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
