package repository

import (
	"context"
	"testing"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsPlainValues(t *testing.T) {
	laundry := testutil.NewLaundryStore(t)
	repo := NewReportRepository(testutil.NewIdentityStore(t), laundry)

	require.NoError(t, laundry.Omit("Lines", "Payment", "Complaints").Create(&entity.Order{
		CustomerID:  uuid.New(),
		Status:      entity.OrderStatusPending,
		TotalAmount: 60,
		PickupDate:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}).Error)

	rows, err := repo.Run(context.Background(), StoreLaundry,
		"SELECT status, COUNT(*) AS orders FROM orders GROUP BY status", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	for column, value := range rows[0] {
		_, wrapped := value.(*interface{})
		assert.False(t, wrapped, "column %s", column)
	}
	assert.Equal(t, entity.OrderStatusPending, rows[0]["status"])
	assert.EqualValues(t, 1, rows[0]["orders"])
}

func TestNormalizeRow(t *testing.T) {
	var count interface{} = int64(3)
	var missing *interface{}
	row := map[string]interface{}{
		"count":   &count,
		"missing": missing,
		"name":    []byte("zoe"),
		"plain":   1.5,
	}

	normalizeRow(row)

	assert.Equal(t, int64(3), row["count"])
	assert.Nil(t, row["missing"])
	assert.Equal(t, "zoe", row["name"])
	assert.Equal(t, 1.5, row["plain"])
}
