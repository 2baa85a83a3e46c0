package repository

import (
	"context"
	"errors"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	WithinTransaction(ctx context.Context, fn func(repo PaymentRepository) error) error

	FindOwnedOrder(ctx context.Context, orderID uint, customerID uuid.UUID) (*entity.Order, error)
	CustomerName(ctx context.Context, customerID uuid.UUID) (string, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	CreateApplication(ctx context.Context, application *entity.PaymentApplication) error
	List(ctx context.Context, customerID *uuid.UUID) ([]entity.PaymentApplication, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithinTransaction(ctx context.Context, fn func(repo PaymentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&paymentRepository{db: tx})
	})
}

func (r *paymentRepository) FindOwnedOrder(ctx context.Context, orderID uint, customerID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CustomerName returns an empty name when the member has no customer profile.
func (r *paymentRepository) CustomerName(ctx context.Context, customerID uuid.UUID) (string, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Select("name").First(&customer, "id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return customer.Name, err
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) CreateApplication(ctx context.Context, application *entity.PaymentApplication) error {
	return r.db.WithContext(ctx).Omit("Payment").Create(application).Error
}

func (r *paymentRepository) List(ctx context.Context, customerID *uuid.UUID) ([]entity.PaymentApplication, error) {
	var applications []entity.PaymentApplication
	query := r.db.WithContext(ctx).Preload("Payment")
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if err := query.Order("order_id DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
