package repository

import (
	"context"
	"fmt"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository reads and writes the role-specific profile rows of the laundry store.
type ProfileRepository interface {
	WithinTransaction(ctx context.Context, fn func(repo ProfileRepository) error) error

	CreateCustomer(ctx context.Context, customer *entity.Customer) error
	CreateStaff(ctx context.Context, staff *entity.Staff) error
	FindCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)

	UpdateAddress(ctx context.Context, id uuid.UUID, address string) (int64, error)
	UpdatePhone(ctx context.Context, kind entity.ProfileKind, id uuid.UUID, phone string) (int64, error)
	UpdateImage(ctx context.Context, kind entity.ProfileKind, id uuid.UUID, imageURL string) (int64, error)
	Delete(ctx context.Context, kind entity.ProfileKind, id uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithinTransaction(ctx context.Context, fn func(repo ProfileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&profileRepository{db: tx})
	})
}

func (r *profileRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *profileRepository) CreateStaff(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *profileRepository) FindCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *profileRepository) FindStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	if err := r.db.WithContext(ctx).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *profileRepository) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := r.db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *profileRepository) UpdateAddress(ctx context.Context, id uuid.UUID, address string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("address", address)
	return result.RowsAffected, result.Error
}

func (r *profileRepository) UpdatePhone(ctx context.Context, kind entity.ProfileKind, id uuid.UUID, phone string) (int64, error) {
	model, err := modelFor(kind)
	if err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("phone", phone)
	return result.RowsAffected, result.Error
}

func (r *profileRepository) UpdateImage(ctx context.Context, kind entity.ProfileKind, id uuid.UUID, imageURL string) (int64, error) {
	model, err := modelFor(kind)
	if err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("image", imageURL)
	return result.RowsAffected, result.Error
}

// Delete removes the profile row if present; a missing row is not an error.
func (r *profileRepository) Delete(ctx context.Context, kind entity.ProfileKind, id uuid.UUID) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(model).Error
}

func modelFor(kind entity.ProfileKind) (interface{}, error) {
	switch kind {
	case entity.KindCustomer:
		return &entity.Customer{}, nil
	case entity.KindStaff:
		return &entity.Staff{}, nil
	}
	return nil, fmt.Errorf("unknown profile kind %d", kind)
}
