package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

// fakeAuthService resolves users from a fixed map; registration and login
// are not exercised by middleware tests.
type fakeAuthService struct {
	users map[string]*domain.User
}

func (f *fakeAuthService) Register(context.Context, string, string, string, string, domain.Role) (string, *domain.User, error) {
	panic("not used")
}

func (f *fakeAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (f *fakeAuthService) ResolveUser(_ context.Context, userIDHex string) (*domain.User, error) {
	user, ok := f.users[userIDHex]
	if !ok {
		return nil, service.ErrUserGone
	}
	return user, nil
}

func (f *fakeAuthService) GetJWTSecret() string { return testSecret }

func signToken(t *testing.T, user *domain.User, expires time.Duration) string {
	t.Helper()
	claims := &service.TokenClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expires)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("", AuthMiddleware(auth))
	protected.GET("/whoami", func(c *gin.Context) {
		user, _ := getUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID.Hex(), "role": user.Role})
	})
	protected.GET("/admin-only", RoleMiddleware(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	member := &domain.User{ID: primitive.NewObjectID(), Name: "Mia", Role: domain.RoleMember}
	auth := &fakeAuthService{users: map[string]*domain.User{member.ID.Hex(): member}}
	router := newTestRouter(auth)

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "fail", body["status"])
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "Bearer "+signToken(t, member, -time.Minute))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleMember}
		rec := doRequest(router, "/whoami", "Bearer "+signToken(t, ghost, time.Hour))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "Bearer "+signToken(t, member, time.Hour))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, member.ID.Hex(), body["id"])
	})
}

func TestRoleMiddleware(t *testing.T) {
	member := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleMember}
	admin := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}
	auth := &fakeAuthService{users: map[string]*domain.User{
		member.ID.Hex(): member,
		admin.ID.Hex():  admin,
	}}
	router := newTestRouter(auth)

	t.Run("member blocked from admin route", func(t *testing.T) {
		rec := doRequest(router, "/admin-only", "Bearer "+signToken(t, member, time.Hour))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		rec := doRequest(router, "/admin-only", "Bearer "+signToken(t, admin, time.Hour))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
