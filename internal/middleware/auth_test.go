package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/auth/token"
	memberRepo "anoa.com/freshwash/internal/modules/member/repository"
	"anoa.com/freshwash/internal/testutil"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	db    *gorm.DB
	repo  memberRepo.MemberRepository
	codec *token.Codec
	now   time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	db := testutil.NewIdentityStore(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	return &authFixture{
		db:    db,
		repo:  memberRepo.NewMemberRepository(db),
		codec: token.NewCodec("test-secret").WithClock(func() time.Time { return now }),
		now:   now,
	}
}

// login seeds a member and stores a freshly issued session for it.
func (f *authFixture) login(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()
	ctx := context.Background()
	member := &entity.Member{
		Username:    "member",
		Email:       uuid.NewString() + "@example.com",
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.repo.CreateMember(ctx, member))
	require.NoError(t, f.repo.CreateCredential(ctx, &entity.Credential{
		MemberID:     member.ID,
		PasswordHash: "x",
		Role:         role,
	}))

	signed, expiry, err := f.codec.Issue(member.ID, member.Email, role, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.repo.UpdateSession(ctx, member.ID, signed, expiry))
	return member.ID, signed
}

func (f *authFixture) router() *gin.Engine {
	mw := NewAuthMiddleware(f.repo, f.codec).WithClock(func() time.Time { return f.now })

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		identity, err := response.GetIdentity(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"member_id": identity.MemberID.String(),
			"role":      identity.Role,
			"expiry":    c.GetInt64(response.KeyTokenExpiry),
		})
	})
	r.GET("/admin", mw.RequireAuth(), mw.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuthMissingToken(t *testing.T) {
	f := newAuthFixture(t)

	w := do(f.router(), "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authorization required", errorMessage(t, w))
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	f := newAuthFixture(t)
	id, signed := f.login(t, entity.RoleUser)

	w := do(f.router(), "/me", signed)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body["member_id"])
	assert.Equal(t, entity.RoleUser, body["role"])
	assert.EqualValues(t, f.now.Add(time.Hour).Unix(), body["expiry"])
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	f := newAuthFixture(t)
	_, signed := f.login(t, entity.RoleUser)

	w := do(f.router(), "/me?token="+signed, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsReplacedSession(t *testing.T) {
	f := newAuthFixture(t)
	id, first := f.login(t, entity.RoleUser)

	second, expiry, err := f.codec.Issue(id, "member@example.com", entity.RoleUser, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.repo.UpdateSession(context.Background(), id, second, expiry))

	w := do(f.router(), "/me", first)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid session token", errorMessage(t, w))

	assert.Equal(t, http.StatusOK, do(f.router(), "/me", second).Code)
}

func TestRequireAuthStoredExpiryWins(t *testing.T) {
	f := newAuthFixture(t)
	id, signed := f.login(t, entity.RoleUser)

	require.NoError(t, f.db.Model(&entity.Credential{}).
		Where("member_id = ?", id).
		Update("session_expiry", f.now.Unix()).Error)

	w := do(f.router(), "/me", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session expired", errorMessage(t, w))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	_, signed := f.login(t, entity.RoleUser)

	f.now = f.now.Add(2 * time.Hour)
	f.codec = f.codec.WithClock(func() time.Time { return f.now })

	w := do(f.router(), "/me", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session expired", errorMessage(t, w))
}

func TestRequireAuthForgedToken(t *testing.T) {
	f := newAuthFixture(t)
	id, _ := f.login(t, entity.RoleUser)

	forged, _, err := token.NewCodec("wrong-secret").Issue(id, "member@example.com", entity.RoleAdmin, time.Hour)
	require.NoError(t, err)

	w := do(f.router(), "/me", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid session token", errorMessage(t, w))
}

func TestRequireAuthUnknownMember(t *testing.T) {
	f := newAuthFixture(t)

	orphan, _, err := f.codec.Issue(uuid.New(), "ghost@example.com", entity.RoleUser, time.Hour)
	require.NoError(t, err)

	w := do(f.router(), "/me", orphan)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	f := newAuthFixture(t)
	_, userToken := f.login(t, entity.RoleUser)
	_, adminToken := f.login(t, entity.RoleAdmin)

	w := do(f.router(), "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admin access required", errorMessage(t, w))

	assert.Equal(t, http.StatusNoContent, do(f.router(), "/admin", adminToken).Code)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	f := newAuthFixture(t)
	mw := NewAuthMiddleware(f.repo, f.codec)

	r := gin.New()
	r.GET("/admin", mw.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}

func TestRequireAuthStoreUnavailable(t *testing.T) {
	f := newAuthFixture(t)
	_, signed := f.login(t, entity.RoleUser)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := do(f.router(), "/me", signed)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.ErrInternal.Error(), errorMessage(t, w))
}
