package bootstrap

import (
	"log/slog"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/pkg/dateutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MigrateIdentity creates the shared member directory tables.
func MigrateIdentity(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Member{},
		&entity.Credential{},
		&entity.GroupMembership{},
		&entity.MemberImage{},
		&entity.AuditLog{},
	)
}

// MigrateLaundry creates the laundry operations tables.
func MigrateLaundry(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Customer{},
		&entity.Staff{},
		&entity.Item{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.Placement{},
		&entity.Complaint{},
		&entity.Filing{},
		&entity.Resolution{},
		&entity.Assignment{},
		&entity.Payment{},
		&entity.PaymentApplication{},
		&entity.StaffNotification{},
	)
}

var defaultItems = []entity.Item{
	{ItemType: "Shirt", Price: 20},
	{ItemType: "Trousers", Price: 30},
	{ItemType: "Saree", Price: 80},
	{ItemType: "Bedsheet", Price: 50},
	{ItemType: "Blanket", Price: 120},
	{ItemType: "Jacket", Price: 100},
}

func SeedItems(db *gorm.DB) error {
	for _, item := range defaultItems {
		var count int64
		if err := db.Model(&entity.Item{}).
			Where("item_type = ?", item.ItemType).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminMember creates a development admin with a staff profile so that
// complaints can be assigned on a fresh database.
func SeedAdminMember(identityDB, laundryDB *gorm.DB, now time.Time) error {
	const (
		email    = "admin@freshwash.local"
		password = "admin123"
	)

	var count int64
	if err := identityDB.Model(&entity.Member{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		slog.Info("admin member already exists, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	member := entity.Member{
		Username:    "admin",
		Email:       email,
		DateOfBirth: dob,
	}

	err = identityDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		if err := tx.Create(&entity.Credential{
			MemberID:     member.ID,
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&entity.GroupMembership{
			MemberID: member.ID,
			GroupID:  entity.LaundryGroupID,
		}).Error
	})
	if err != nil {
		return err
	}

	today := dateutil.Today(now)
	if err := laundryDB.Create(&entity.Staff{
		ID:       member.ID,
		Name:     member.Username,
		Email:    member.Email,
		Age:      dateutil.CalculateAge(dob, today),
		HireDate: today,
	}).Error; err != nil {
		return err
	}

	slog.Info("admin member seeded", "email", email)
	return nil
}
