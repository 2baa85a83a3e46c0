// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"anoa.com/freshwash/internal/bootstrap"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewSQLite returns an isolated in-memory database that lives until the test ends.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:freshwash_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewIdentityStore returns a migrated identity store.
func NewIdentityStore(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewSQLite(t)
	require.NoError(t, bootstrap.MigrateIdentity(db))
	return db
}

// NewLaundryStore returns a migrated laundry store.
func NewLaundryStore(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewSQLite(t)
	require.NoError(t, bootstrap.MigrateLaundry(db))
	return db
}
