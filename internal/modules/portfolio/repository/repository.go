package repository

import (
	"context"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PortfolioRepository interface {
	ListOrders(ctx context.Context, customerID *uuid.UUID) ([]entity.Order, error)
}

type portfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// ListOrders loads orders with their lines, payment and complaints; a nil
// customerID loads every customer's orders.
func (r *portfolioRepository) ListOrders(ctx context.Context, customerID *uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	query := r.db.WithContext(ctx).
		Preload("Lines.Item").
		Preload("Payment.Payment").
		Preload("Complaints", func(db *gorm.DB) *gorm.DB {
			return db.Order("complaints.id")
		}).
		Preload("Complaints.Filing").
		Preload("Complaints.Resolution")

	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	if err := query.Order("customer_id").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
