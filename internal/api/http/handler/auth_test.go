package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelab/authcore/internal/api/http/middleware"
	"github.com/nivelab/authcore/internal/model"
	"github.com/nivelab/authcore/internal/service"
	"github.com/nivelab/authcore/internal/testutil"
)

type stubAuthService struct {
	registerFn        func(ctx context.Context, params service.RegisterParams) (model.TokenBundle, error)
	loginFn           func(ctx context.Context, email, password string) (model.TokenBundle, error)
	refreshFn         func(ctx context.Context, refreshToken string) (model.TokenBundle, error)
	changePasswordFn  func(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error
	logoutFn          func(ctx context.Context, token string, userID uuid.UUID) error
	forceLogoutFn     func(ctx context.Context, userID uuid.UUID, reason string) error
	revocationStatsFn func(ctx context.Context) (model.RevocationStats, error)
}

func (s *stubAuthService) Register(ctx context.Context, params service.RegisterParams) (model.TokenBundle, error) {
	return s.registerFn(ctx, params)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (model.TokenBundle, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenBundle, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error {
	return s.changePasswordFn(ctx, userID, current, newPassword, confirm)
}

func (s *stubAuthService) Logout(ctx context.Context, token string, userID uuid.UUID) error {
	return s.logoutFn(ctx, token, userID)
}

func (s *stubAuthService) ForceLogout(ctx context.Context, userID uuid.UUID, reason string) error {
	return s.forceLogoutFn(ctx, userID, reason)
}

func (s *stubAuthService) RevocationStats(ctx context.Context) (model.RevocationStats, error) {
	return s.revocationStatsFn(ctx)
}

func testBundle() model.TokenBundle {
	return model.TokenBundle{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    86400,
	}
}

func performJSON(t *testing.T, h gin.HandlerFunc, body any, prepare func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if prepare != nil {
		prepare(c)
	}

	h(c)
	return w
}

func TestAuth_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, params service.RegisterParams) (model.TokenBundle, error) {
			assert.Equal(t, "alice", params.Username)
			assert.Equal(t, "alice@x.com", params.Email)
			return testBundle(), nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.Register, gin.H{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw123456",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var bundle model.TokenBundle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bundle))
	assert.Equal(t, "Bearer", bundle.TokenType)
	assert.EqualValues(t, 86400, bundle.ExpiresIn)
	assert.Equal(t, "access-token", bundle.AccessToken)
	assert.Equal(t, "refresh-token", bundle.RefreshToken)
}

func TestAuth_Register_InvalidBody(t *testing.T) {
	h := NewAuth(&stubAuthService{}, testutil.MakeNoopLogger())

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"username": "alice", "password": "pw123456"}},
		{"bad email", gin.H{"username": "alice", "email": "nope", "password": "pw123456"}},
		{"short password", gin.H{"username": "alice", "email": "alice@x.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, h.Register, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ service.RegisterParams) (model.TokenBundle, error) {
			return model.TokenBundle{}, model.ErrEmailTaken
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.Register, gin.H{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw123456",
	}, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (model.TokenBundle, error) {
			return model.TokenBundle{}, model.ErrInvalidCredentials
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.Login, gin.H{"email": "alice@x.com", "password": "wrong-password"}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrInvalidCredentials.Error())
}

func TestAuth_Refresh_Invalid(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(_ context.Context, _ string) (model.TokenBundle, error) {
			return model.TokenBundle{}, model.ErrRefreshTokenInvalid
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.Refresh, gin.H{"refreshToken": "stale"}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ChangePassword_ErrorMapping(t *testing.T) {
	user := model.User{ID: uuid.New(), IsActive: true}

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"confirm mismatch", model.ErrPasswordConfirmMismatch, http.StatusBadRequest},
		{"same as current", model.ErrPasswordSameAsCurrent, http.StatusBadRequest},
		{"wrong current", model.ErrWrongPassword, http.StatusBadRequest},
		{"success", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				changePasswordFn: func(_ context.Context, userID uuid.UUID, _, _, _ string) error {
					assert.Equal(t, user.ID, userID)
					return tt.serviceErr
				},
			}
			h := NewAuth(svc, testutil.MakeNoopLogger())

			w := performJSON(t, h.ChangePassword, gin.H{
				"currentPassword": "old-password",
				"newPassword":     "new-password",
				"confirmPassword": "new-password",
			}, func(c *gin.Context) {
				c.Set(middleware.UserKey, user)
			})

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	user := model.User{ID: uuid.New(), IsActive: true}
	var gotToken string

	svc := &stubAuthService{
		logoutFn: func(_ context.Context, token string, userID uuid.UUID) error {
			gotToken = token
			assert.Equal(t, user.ID, userID)
			return nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.Logout, gin.H{}, func(c *gin.Context) {
		c.Set(middleware.UserKey, user)
		c.Set(middleware.TokenKey, "the-access-token")
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "the-access-token", gotToken)
}

func TestAuth_ForceLogout(t *testing.T) {
	target := uuid.New()
	svc := &stubAuthService{
		forceLogoutFn: func(_ context.Context, userID uuid.UUID, reason string) error {
			assert.Equal(t, target, userID)
			assert.Equal(t, "suspicious activity", reason)
			return nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	w := performJSON(t, h.ForceLogout, gin.H{
		"userId": target.String(),
		"reason": "suspicious activity",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_Profile(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "alice", Email: "alice@x.com", IsActive: true}
	h := NewAuth(&stubAuthService{}, testutil.MakeNoopLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.UserKey, user)

	h.Profile(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
}
