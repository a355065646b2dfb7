package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelog/models"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 42, Username: "anna", Role: models.RoleEmployee}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "anna", claims.Username)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 42, Username: "anna"}
	token, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: 42, Username: "anna"}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	SetJWTSecret("other-secret")
	defer SetJWTSecret("test-secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenFromRequest(t *testing.T) {
	withCookie := httptest.NewRequest(http.MethodGet, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	assert.Equal(t, "cookie-token", TokenFromRequest(withCookie))

	withHeader := httptest.NewRequest(http.MethodGet, "/", nil)
	withHeader.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", TokenFromRequest(withHeader))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromRequest(bare))
}

func requestWithUser(user *models.User) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if user == nil {
		return r
	}
	ctx := context.WithValue(r.Context(), UserContextKey, user)
	return r.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := RequireRole(models.RoleBackoffice)(next)

	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"backoffice passes", &models.User{ID: 1, Role: models.RoleBackoffice}, http.StatusOK},
		{"employee is rejected", &models.User{ID: 2, Role: models.RoleEmployee}, http.StatusForbidden},
		{"anonymous is rejected", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, requestWithUser(tt.user))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequirePasswordSet(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := RequirePasswordSet(next)

	pending := &models.User{ID: 1, MustSetPassword: true}

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestWithUser(pending))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The password endpoint itself stays reachable.
	r := requestWithUser(pending)
	r.URL.Path = "/password"
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)

	done := &models.User{ID: 2, MustSetPassword: false}
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, requestWithUser(done))
	assert.Equal(t, http.StatusOK, rec.Code)
}
