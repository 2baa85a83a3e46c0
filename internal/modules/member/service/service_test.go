package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/member/dto"
	"anoa.com/freshwash/internal/modules/member/repository"
	profileRepo "anoa.com/freshwash/internal/modules/profile/repository"
	"anoa.com/freshwash/internal/testutil"
	"anoa.com/freshwash/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	identity *gorm.DB
	laundry  *gorm.DB
	svc      MemberService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	identity := testutil.NewIdentityStore(t)
	laundry := testutil.NewLaundryStore(t)
	svc := NewMemberService(
		repository.NewMemberRepository(identity),
		profileRepo.NewProfileRepository(laundry),
		func() time.Time { return testNow },
	)
	return fixture{identity: identity, laundry: laundry, svc: svc}
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.svc.Register(ctx, Registration{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "secret123",
		Role:        entity.RoleUser,
		DateOfBirth: time.Date(2000, 6, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var cred entity.Credential
	require.NoError(t, f.identity.First(&cred, "member_id = ?", member.ID).Error)
	assert.Equal(t, entity.RoleUser, cred.Role)
	assert.NotEqual(t, "secret123", cred.PasswordHash)
	assert.Nil(t, cred.SessionToken)

	assert.EqualValues(t, 1, count(t, f.identity, &entity.GroupMembership{}, "member_id = ? AND group_id = ?", member.ID, entity.LaundryGroupID))

	var customer entity.Customer
	require.NoError(t, f.laundry.First(&customer, "id = ?", member.ID).Error)
	assert.Equal(t, 23, customer.Age)
	assert.Equal(t, "ana", customer.Name)
	assert.EqualValues(t, 0, count(t, f.laundry, &entity.Staff{}, "id = ?", member.ID))
}

func TestRegisterAdminCreatesStaff(t *testing.T) {
	f := newFixture(t)

	member, err := f.svc.Register(context.Background(), Registration{
		Username:    "boss",
		Email:       "boss@example.com",
		Password:    "secret123",
		Role:        entity.RoleAdmin,
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Session:     &Session{Token: "tok", Expiry: 42},
	})
	require.NoError(t, err)

	var staff entity.Staff
	require.NoError(t, f.laundry.First(&staff, "id = ?", member.ID).Error)
	assert.Equal(t, 34, staff.Age)
	assert.Equal(t, "2024-06-15", staff.HireDate.Format("2006-01-02"))

	var cred entity.Credential
	require.NoError(t, f.identity.First(&cred, "member_id = ?", member.ID).Error)
	require.NotNil(t, cred.SessionToken)
	assert.Equal(t, "tok", *cred.SessionToken)
	assert.EqualValues(t, 42, *cred.SessionExpiry)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := Registration{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "secret123",
		Role:        entity.RoleUser,
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := f.svc.Register(ctx, reg)
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, reg)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.Member{}, "1 = 1"))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.Credential{}, "1 = 1"))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.GroupMembership{}, "1 = 1"))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), Registration{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "secret123",
		Role:        "superuser",
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.EqualValues(t, 0, count(t, f.identity, &entity.Member{}, "1 = 1"))
}

func TestRegisterSurvivesProfileFailure(t *testing.T) {
	identity := testutil.NewIdentityStore(t)
	unmigrated := testutil.NewSQLite(t)
	svc := NewMemberService(
		repository.NewMemberRepository(identity),
		profileRepo.NewProfileRepository(unmigrated),
		func() time.Time { return testNow },
	)

	member, err := svc.Register(context.Background(), Registration{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "secret123",
		Role:        entity.RoleUser,
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(t, identity, &entity.Member{}, "id = ?", member.ID))
}

func TestAddMemberValidatesDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddMember(context.Background(), dto.AddMemberRequest{
		Username: "ana",
		Email:    "ana@example.com",
		DOB:      "2000-13-01",
		Password: "secret123",
		Role:     entity.RoleUser,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	created, err := f.svc.AddMember(context.Background(), dto.AddMemberRequest{
		Username: "ana",
		Email:    "ana@example.com",
		DOB:      "2000-01-01",
		Password: "secret123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, created.Role)

	members, err := f.svc.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "ana@example.com", members[0].Email)
	assert.Equal(t, entity.RoleAdmin, members[0].Role)
	assert.Equal(t, "2000-01-01", members[0].DateOfBirth)
}

func registerUser(t *testing.T, f fixture, email string) uuid.UUID {
	t.Helper()
	member, err := f.svc.Register(context.Background(), Registration{
		Username:    "someone",
		Email:       email,
		Password:    "secret123",
		Role:        entity.RoleUser,
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return member.ID
}

func TestDeleteMemberFullCascade(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "ana@example.com")

	res, err := f.svc.DeleteMember(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.RemovalFull, res.Removal)

	assert.EqualValues(t, 0, count(t, f.identity, &entity.Member{}, "id = ?", id))
	assert.EqualValues(t, 0, count(t, f.identity, &entity.Credential{}, "member_id = ?", id))
	assert.EqualValues(t, 0, count(t, f.identity, &entity.GroupMembership{}, "member_id = ?", id))
	assert.EqualValues(t, 0, count(t, f.laundry, &entity.Customer{}, "id = ?", id))
}

func TestDeleteMemberSharedWithOtherGroup(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "ana@example.com")
	require.NoError(t, f.identity.Create(&entity.GroupMembership{MemberID: id, GroupID: 7}).Error)

	res, err := f.svc.DeleteMember(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.RemovalPartial, res.Removal)

	assert.EqualValues(t, 1, count(t, f.identity, &entity.Member{}, "id = ?", id))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.Credential{}, "member_id = ?", id))
	assert.EqualValues(t, 0, count(t, f.identity, &entity.GroupMembership{}, "member_id = ? AND group_id = ?", id, entity.LaundryGroupID))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.GroupMembership{}, "member_id = ? AND group_id = ?", id, 7))
	assert.EqualValues(t, 1, count(t, f.laundry, &entity.Customer{}, "id = ?", id))
}

func TestDeleteMemberNotInGroup(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DeleteMember(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	outsider := uuid.New()
	require.NoError(t, f.identity.Create(&entity.GroupMembership{MemberID: outsider, GroupID: 7}).Error)
	_, err = f.svc.DeleteMember(context.Background(), outsider)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.GroupMembership{}, "member_id = ?", outsider))
}

func TestDeleteMemberRollsBackBothStores(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "ana@example.com")

	err := f.laundry.Callback().Delete().Before("gorm:delete").Register("test:fail_staff_delete", func(db *gorm.DB) {
		if db.Statement.Table == "staff" {
			_ = db.AddError(errors.New("staff store unavailable"))
		}
	})
	require.NoError(t, err)

	_, err = f.svc.DeleteMember(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDeletionFailed)
	assert.Equal(t, http.StatusInternalServerError, apperror.MapErrorToStatus(err))

	assert.EqualValues(t, 1, count(t, f.identity, &entity.Member{}, "id = ?", id))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.Credential{}, "member_id = ?", id))
	assert.EqualValues(t, 1, count(t, f.identity, &entity.GroupMembership{}, "member_id = ?", id))
	assert.EqualValues(t, 1, count(t, f.laundry, &entity.Customer{}, "id = ?", id))
}
