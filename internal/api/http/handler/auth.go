package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/api/http/middleware"
	"github.com/nivelab/authcore/internal/logger"
	"github.com/nivelab/authcore/internal/model"
	"github.com/nivelab/authcore/internal/service"
)

// AuthService defines the operations the HTTP layer exposes.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.TokenBundle, error)
	Login(ctx context.Context, email, password string) (model.TokenBundle, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenBundle, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error
	Logout(ctx context.Context, token string, userID uuid.UUID) error
	ForceLogout(ctx context.Context, userID uuid.UUID, reason string) error
	RevocationStats(ctx context.Context) (model.RevocationStats, error)
}

// Auth handles the authentication endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type forceLogoutRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Reason string    `json:"reason"`
}

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.service.Register(c.Request.Context(), service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bundle)
}

func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

func (h *Auth) Logout(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), c.GetString(middleware.TokenKey), user.ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Auth) ChangePassword(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *Auth) ForceLogout(c *gin.Context) {
	var req forceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ForceLogout(c.Request.Context(), req.UserID, req.Reason); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sessions revoked"})
}

func (h *Auth) Profile(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Auth) RevocationStats(c *gin.Context) {
	stats, err := h.service.RevocationStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": stats.Total})
}

func (h *Auth) writeError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "error", err.Error())
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrRefreshTokenInvalid),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenInactive),
		errors.Is(err, model.ErrUserDisabled),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrBadSignature),
		errors.Is(err, model.ErrBadIssuerOrAudience):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, model.ErrPasswordConfirmMismatch),
		errors.Is(err, model.ErrPasswordSameAsCurrent),
		errors.Is(err, model.ErrWrongPassword):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
