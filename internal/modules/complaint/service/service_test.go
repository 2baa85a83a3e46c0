package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/complaint/dto"
	"anoa.com/freshwash/internal/modules/complaint/repository"
	"anoa.com/freshwash/internal/testutil"
	"anoa.com/freshwash/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, n *entity.StaffNotification) error {
	return m.Called(ctx, n).Error(0)
}

func newService(db *gorm.DB, notifier Notifier) ComplaintService {
	return NewComplaintService(
		repository.NewComplaintRepository(db),
		notifier,
		func() time.Time { return testNow },
		func(n int) int { return n - 1 },
	)
}

func seedOrder(t *testing.T, db *gorm.DB, customer uuid.UUID) uint {
	t.Helper()
	order := entity.Order{
		CustomerID:  customer,
		Status:      entity.OrderStatusPending,
		TotalAmount: 60,
		PickupDate:  testNow,
	}
	require.NoError(t, db.Omit("Lines", "Payment", "Complaints").Create(&order).Error)
	return order.ID
}

func seedStaff(t *testing.T, db *gorm.DB, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		s := entity.Staff{ID: uuid.New(), Name: name, HireDate: testNow}
		require.NoError(t, db.Create(&s).Error)
		ids = append(ids, s.ID)
	}
	return ids
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestFileComplaintAssignsStaff(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	customer := uuid.New()
	orderID := seedOrder(t, db, customer)
	seedStaff(t, db, "Ravi", "Meena")

	var staffIDs []uuid.UUID
	require.NoError(t, db.Model(&entity.Staff{}).Order("id").Pluck("id", &staffIDs).Error)
	want := staffIDs[len(staffIDs)-1]

	notifier := new(mockNotifier)
	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(n *entity.StaffNotification) bool {
		return n.StaffID == want && n.OrderID == orderID
	})).Return(nil).Once()

	res, err := newService(db, notifier).FileComplaint(context.Background(), customer, dto.FileComplaintRequest{
		OrderID:          orderID,
		ComplaintType:    "Damage",
		ComplaintDetails: "<b>Torn</b> collar",
	})
	require.NoError(t, err)
	assert.Equal(t, want, res.AssignedStaff)
	notifier.AssertExpectations(t)

	var complaint entity.Complaint
	require.NoError(t, db.Preload("Filing").Preload("Resolution").First(&complaint, res.ComplaintID).Error)
	assert.Equal(t, entity.ComplaintStatusOpen, complaint.Status)
	assert.Equal(t, "Torn collar", complaint.Details)
	require.NotNil(t, complaint.Filing)
	assert.Equal(t, customer, complaint.Filing.CustomerID)
	assert.Equal(t, "2024-06-15", complaint.Filing.Date.Format("2006-01-02"))
	require.NotNil(t, complaint.Resolution)
	assert.Equal(t, want, complaint.Resolution.StaffID)
	assert.Nil(t, complaint.Resolution.ResolveDate)

	var assignment entity.Assignment
	require.NoError(t, db.First(&assignment, "order_id = ?", orderID).Error)
	assert.Equal(t, want, assignment.StaffID)
	assert.EqualValues(t, 1, countRows(t, db, &entity.StaffNotification{}))
}

func TestFileComplaintWithoutStaffLeavesNoRows(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	customer := uuid.New()
	orderID := seedOrder(t, db, customer)

	notifier := new(mockNotifier)
	_, err := newService(db, notifier).FileComplaint(context.Background(), customer, dto.FileComplaintRequest{
		OrderID:          orderID,
		ComplaintType:    "Delay",
		ComplaintDetails: "Not delivered",
	})
	require.ErrorIs(t, err, apperror.ErrNoStaffAvailable)
	assert.Equal(t, http.StatusInternalServerError, apperror.MapErrorToStatus(err))
	assert.Equal(t, "no staff available to handle complaint", apperror.PublicMessage(err))
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

	for _, model := range []interface{}{
		&entity.Complaint{}, &entity.Filing{}, &entity.Assignment{}, &entity.Resolution{}, &entity.StaffNotification{},
	} {
		assert.Zero(t, countRows(t, db, model))
	}
}

func TestFileComplaintRejectsForeignOrder(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	orderID := seedOrder(t, db, uuid.New())
	seedStaff(t, db, "Ravi")

	_, err := newService(db, nil).FileComplaint(context.Background(), uuid.New(), dto.FileComplaintRequest{
		OrderID:          orderID,
		ComplaintType:    "Damage",
		ComplaintDetails: "Stain",
	})
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Zero(t, countRows(t, db, &entity.Complaint{}))
}

func TestFileComplaintRejectsBlankAfterSanitizing(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	customer := uuid.New()
	orderID := seedOrder(t, db, customer)

	_, err := newService(db, nil).FileComplaint(context.Background(), customer, dto.FileComplaintRequest{
		OrderID:          orderID,
		ComplaintType:    "<script></script>",
		ComplaintDetails: "Stain",
	})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestFileComplaintSurvivesPublishFailure(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	customer := uuid.New()
	orderID := seedOrder(t, db, customer)
	seedStaff(t, db, "Ravi")

	notifier := new(mockNotifier)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	res, err := newService(db, notifier).FileComplaint(context.Background(), customer, dto.FileComplaintRequest{
		OrderID:          orderID,
		ComplaintType:    "Damage",
		ComplaintDetails: "Stain",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ComplaintID)
	assert.EqualValues(t, 1, countRows(t, db, &entity.StaffNotification{}))
}

func TestListAndResolveComplaints(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	ctx := context.Background()
	ana, bob := uuid.New(), uuid.New()
	seedStaff(t, db, "Ravi")
	svc := newService(db, nil)

	var filed []uint
	for _, customer := range []uuid.UUID{ana, bob} {
		res, err := svc.FileComplaint(ctx, customer, dto.FileComplaintRequest{
			OrderID:          seedOrder(t, db, customer),
			ComplaintType:    "Damage",
			ComplaintDetails: "Stain",
		})
		require.NoError(t, err)
		filed = append(filed, res.ComplaintID)
	}

	own, err := svc.ListComplaints(ctx, ana, false)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, filed[0], own[0].ComplaintID)
	assert.Nil(t, own[0].ResolveDate)

	require.NoError(t, svc.UpdateStatus(ctx, filed[0], dto.UpdateStatusRequest{Status: entity.ComplaintStatusResolved}))
	all, err := svc.ListComplaints(ctx, bob, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	resolved := all[1]
	assert.Equal(t, entity.ComplaintStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolveDate)
	assert.Equal(t, "2024-06-15", *resolved.ResolveDate)

	require.NoError(t, svc.UpdateStatus(ctx, filed[0], dto.UpdateStatusRequest{Status: entity.ComplaintStatusInProgress}))
	own, err = svc.ListComplaints(ctx, ana, false)
	require.NoError(t, err)
	assert.Nil(t, own[0].ResolveDate)
}

func TestUpdateAndDeleteErrors(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	ctx := context.Background()
	svc := newService(db, nil)

	err := svc.UpdateStatus(ctx, 1, dto.UpdateStatusRequest{Status: "Closed"})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	err = svc.UpdateStatus(ctx, 99, dto.UpdateStatusRequest{Status: entity.ComplaintStatusOpen})
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	err = svc.DeleteComplaint(ctx, 99)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestDeleteComplaint(t *testing.T) {
	db := testutil.NewLaundryStore(t)
	ctx := context.Background()
	customer := uuid.New()
	seedStaff(t, db, "Ravi")
	svc := newService(db, nil)

	res, err := svc.FileComplaint(ctx, customer, dto.FileComplaintRequest{
		OrderID:          seedOrder(t, db, customer),
		ComplaintType:    "Damage",
		ComplaintDetails: "Stain",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComplaint(ctx, res.ComplaintID))
	assert.Zero(t, countRows(t, db, &entity.Complaint{}))
	assert.Zero(t, countRows(t, db, &entity.Filing{}))
	assert.Zero(t, countRows(t, db, &entity.Resolution{}))
}
