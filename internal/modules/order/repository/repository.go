package repository

import (
	"context"
	"time"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithinTransaction(ctx context.Context, fn func(repo OrderRepository) error) error

	ListItems(ctx context.Context) ([]entity.Item, error)
	FindItems(ctx context.Context, ids []uint) ([]entity.Item, error)

	CreateOrder(ctx context.Context, order *entity.Order) error
	CreateLines(ctx context.Context, lines []entity.OrderLine) error
	CreatePlacement(ctx context.Context, placement *entity.Placement) error

	FindByID(ctx context.Context, id uint) (*entity.Order, error)
	FindOwned(ctx context.Context, id uint, customerID uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, customerID *uuid.UUID) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string, deliveryDate *time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithinTransaction(ctx context.Context, fn func(repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepository{db: tx})
	})
}

func (r *orderRepository) ListItems(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) FindItems(ctx context.Context, ids []uint) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Omit("Lines", "Payment", "Complaints").Create(order).Error
}

func (r *orderRepository) CreateLines(ctx context.Context, lines []entity.OrderLine) error {
	return r.db.WithContext(ctx).Omit("Item").Create(&lines).Error
}

func (r *orderRepository) CreatePlacement(ctx context.Context, placement *entity.Placement) error {
	return r.db.WithContext(ctx).Create(placement).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindOwned(ctx context.Context, id uint, customerID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first with their lines; a nil customerID lists every order.
func (r *orderRepository) List(ctx context.Context, customerID *uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	query := r.db.WithContext(ctx).Preload("Lines.Item")

	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	if err := query.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status string, deliveryDate *time.Time) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if deliveryDate != nil {
		updates["delivery_date"] = *deliveryDate
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}
