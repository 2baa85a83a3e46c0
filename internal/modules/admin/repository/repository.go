package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store names one of the two relational stores a report can read.
type Store int

const (
	StoreLaundry Store = iota
	StoreIdentity
)

type ReportRepository interface {
	Run(ctx context.Context, store Store, query string, args map[string]interface{}) ([]map[string]interface{}, error)
}

type reportRepository struct {
	identity *gorm.DB
	laundry  *gorm.DB
}

func NewReportRepository(identity, laundry *gorm.DB) ReportRepository {
	return &reportRepository{identity: identity, laundry: laundry}
}

func (r *reportRepository) Run(ctx context.Context, store Store, query string, args map[string]interface{}) ([]map[string]interface{}, error) {
	db := r.laundry
	if store == StoreIdentity {
		db = r.identity
	}

	rows := []map[string]interface{}{}
	tx := db.WithContext(ctx)
	if len(args) > 0 {
		tx = tx.Raw(query, args)
	} else {
		tx = tx.Raw(query)
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("run report: %w", err)
	}
	for _, row := range rows {
		normalizeRow(row)
	}
	return rows, nil
}

// normalizeRow unwraps driver values so every store yields plain column
// values. Some drivers scan untyped columns as *interface{} or raw bytes.
func normalizeRow(row map[string]interface{}) {
	for column, value := range row {
		if ptr, ok := value.(*interface{}); ok {
			if ptr == nil {
				value = nil
			} else {
				value = *ptr
			}
		}
		if raw, ok := value.([]byte); ok {
			value = string(raw)
		}
		row[column] = value
	}
}
