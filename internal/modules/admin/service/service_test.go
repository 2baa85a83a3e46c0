package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/admin/dto"
	"anoa.com/freshwash/internal/modules/admin/repository"
	"anoa.com/freshwash/internal/testutil"
	"anoa.com/freshwash/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	memberID    uuid.UUID
	description string
}

type eventLog struct {
	events []recordedEvent
}

func (l *eventLog) RecordEvent(_ context.Context, memberID uuid.UUID, description string) {
	l.events = append(l.events, recordedEvent{memberID, description})
}

func setup(t *testing.T) (identity, laundry *gorm.DB, svc ReportService, events *eventLog) {
	t.Helper()
	identity = testutil.NewIdentityStore(t)
	laundry = testutil.NewLaundryStore(t)
	events = &eventLog{}
	svc = NewReportService(repository.NewReportRepository(identity, laundry), events, 5*time.Second)
	return identity, laundry, svc, events
}

func createOrder(t *testing.T, db *gorm.DB, customer uuid.UUID, status string, total float64) {
	t.Helper()
	require.NoError(t, db.Omit("Lines", "Payment", "Complaints").Create(&entity.Order{
		CustomerID:  customer,
		Status:      status,
		TotalAmount: total,
		PickupDate:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func TestRunRejectsUnknownReport(t *testing.T) {
	_, _, svc, events := setup(t)

	_, err := svc.Run(context.Background(), uuid.New(), dto.QueryRequest{Query: "DROP TABLE orders"})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	assert.Empty(t, events.events)
}

func TestRunValidatesParams(t *testing.T) {
	_, _, svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    dto.QueryRequest
		errMsg string
	}{
		{"missing", dto.QueryRequest{Query: "customer_orders"}, `missing parameter "customer_id"`},
		{"malformed", dto.QueryRequest{Query: "customer_orders", Params: map[string]string{"customer_id": "42"}}, "must be a uuid"},
		{"unexpected", dto.QueryRequest{Query: "orders_by_status", Params: map[string]string{"status": "x"}}, `unknown parameter "status"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(ctx, uuid.New(), tt.req)
			assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
			assert.Contains(t, apperror.PublicMessage(err), tt.errMsg)
		})
	}
}

func TestRunOrdersByStatus(t *testing.T) {
	_, laundry, svc, events := setup(t)
	customer := uuid.New()
	createOrder(t, laundry, customer, entity.OrderStatusPending, 60)
	createOrder(t, laundry, customer, entity.OrderStatusPending, 40)
	createOrder(t, laundry, customer, entity.OrderStatusDelivered, 120)

	admin := uuid.New()
	res, err := svc.Run(context.Background(), admin, dto.QueryRequest{Query: "orders_by_status"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, entity.OrderStatusDelivered, res.Results[0]["order_status"])
	assert.EqualValues(t, 1, res.Results[0]["orders"])
	assert.Equal(t, entity.OrderStatusPending, res.Results[1]["order_status"])
	assert.EqualValues(t, 2, res.Results[1]["orders"])

	require.Len(t, events.events, 1)
	assert.Equal(t, admin, events.events[0].memberID)
	assert.Equal(t, "report orders_by_status", events.events[0].description)
}

func TestRunCustomerOrders(t *testing.T) {
	_, laundry, svc, events := setup(t)
	ana := uuid.New()
	createOrder(t, laundry, ana, entity.OrderStatusPending, 60)
	createOrder(t, laundry, uuid.New(), entity.OrderStatusPending, 70)

	res, err := svc.Run(context.Background(), uuid.New(), dto.QueryRequest{
		Query:  "customer_orders",
		Params: map[string]string{"customer_id": ana.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "report customer_orders customer_id="+ana.String(), events.events[0].description)
}

func TestRunGroupMembersDefaultsToLaundryGroup(t *testing.T) {
	identity, _, svc, _ := setup(t)

	for i, name := range []string{"zoe", "amir"} {
		m := entity.Member{Username: name, Email: name + "@example.com", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, identity.Create(&m).Error)
		require.NoError(t, identity.Omit("Member").Create(&entity.Credential{MemberID: m.ID, PasswordHash: "x", Role: entity.RoleUser}).Error)
		group := entity.LaundryGroupID
		if i == 0 {
			group = 3
		}
		require.NoError(t, identity.Create(&entity.GroupMembership{MemberID: m.ID, GroupID: group}).Error)
	}

	res, err := svc.Run(context.Background(), uuid.New(), dto.QueryRequest{Query: "group_members"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "amir", res.Results[0]["username"])

	res, err = svc.Run(context.Background(), uuid.New(), dto.QueryRequest{
		Query:  "group_members",
		Params: map[string]string{"group_id": "3"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "zoe", res.Results[0]["username"])
}

func TestTemplatesListed(t *testing.T) {
	_, _, svc, _ := setup(t)

	names := make([]string, 0)
	for _, tpl := range svc.Templates() {
		names = append(names, tpl.Name)
	}
	assert.ElementsMatch(t, []string{
		"orders_by_status", "open_complaints", "revenue_by_payment_mode",
		"staff_workload", "customer_orders", "group_members",
	}, names)
}
