package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/logger"
	"github.com/nivelab/authcore/internal/model"
)

// Revocation reasons recorded on the deny-list.
const (
	ReasonLogout          = "user logged out"
	ReasonNewLogin        = "new login from another device"
	ReasonAdminForced     = "admin forced logout"
	ReasonPasswordChanged = "password changed"
)

// Config holds the session policy knobs.
type Config struct {
	// SingleDeviceLogin makes a successful login revoke every previously
	// issued session of the same user.
	SingleDeviceLogin bool
	// RevokeSessionsOnPasswordChange makes ChangePassword behave like a
	// forced logout for the user's other sessions.
	RevokeSessionsOnPasswordChange bool
}

// Auth orchestrates the token codec, the three token stores and the
// external user store and password hasher. It is the only entry point
// callers interact with.
type Auth struct {
	users   model.UserStore
	hasher  model.PasswordHasher
	codec   model.TokenCodec
	refresh model.RefreshTokenStore
	revoked model.RevocationList
	active  model.ActiveTokenIndex
	cfg     Config
	logger  *logger.Logger
}

func NewAuth(
	users model.UserStore,
	hasher model.PasswordHasher,
	codec model.TokenCodec,
	refresh model.RefreshTokenStore,
	revoked model.RevocationList,
	active model.ActiveTokenIndex,
	cfg Config,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:   users,
		hasher:  hasher,
		codec:   codec,
		refresh: refresh,
		revoked: revoked,
		active:  active,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterParams carries the fields needed to create an account.
type RegisterParams struct {
	Username string
	Email    string
	Nickname string
	Password string
}

// Register creates a user and behaves like a first login: there is no
// prior session to revoke.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.TokenBundle, error) {
	a.logger.Debug("Auth service: registering user",
		"email", params.Email,
		"username", params.Username)

	passwordHash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		Nickname:     params.Nickname,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrUsernameTaken) {
			return model.TokenBundle{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.TokenBundle{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"username", user.Username)

	return a.issueSession(ctx, user)
}

// Login validates credentials and issues a fresh token pair. All credential
// failures collapse into ErrInvalidCredentials; the distinction is logged
// only, to avoid user enumeration.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenBundle, error) {
	a.logger.Debug("Auth service: login attempt", "email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email", "email", email)
		return model.TokenBundle{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.IsActive {
		a.logger.Info("Auth service: login for disabled user", "user_id", user.ID)
		return model.TokenBundle{}, model.ErrInvalidCredentials
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			a.logger.Info("Auth service: login with wrong password", "user_id", user.ID)
			return model.TokenBundle{}, model.ErrInvalidCredentials
		}
		return model.TokenBundle{}, fmt.Errorf("failed to compare password: %w", err)
	}

	if a.cfg.SingleDeviceLogin {
		// Revoke before issue. The other order could blacklist the
		// token this login is about to hand out.
		if err := a.revokeUserSessions(ctx, user.ID, ReasonNewLogin); err != nil {
			return model.TokenBundle{}, fmt.Errorf("failed to revoke previous sessions: %w", err)
		}
	}

	return a.issueSession(ctx, user)
}

// Refresh rotates a refresh token: the presented token is consumed whether
// or not new tokens end up being issued.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenBundle, error) {
	userID, err := a.refresh.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrRefreshTokenInvalid) {
			return model.TokenBundle{}, err
		}
		return model.TokenBundle{}, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: refresh for missing user", "user_id", userID)
		return model.TokenBundle{}, model.ErrRefreshTokenInvalid
	}
	if err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !user.IsActive {
		a.logger.Info("Auth service: refresh for disabled user", "user_id", userID)
		return model.TokenBundle{}, model.ErrRefreshTokenInvalid
	}

	return a.issueSession(ctx, user)
}

// ChangePassword verifies the current password and persists a new hash.
// Whether existing sessions survive is a policy decision, controlled by
// Config.RevokeSessionsOnPasswordChange.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return model.ErrPasswordConfirmMismatch
	}
	if newPassword == current {
		return model.ErrPasswordSameAsCurrent
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, current); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			return model.ErrWrongPassword
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.users.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", user.ID)

	if a.cfg.RevokeSessionsOnPasswordChange {
		if err := a.revokeUserSessions(ctx, user.ID, ReasonPasswordChanged); err != nil {
			return fmt.Errorf("failed to revoke sessions after password change: %w", err)
		}
	}
	return nil
}

// Logout blacklists the presented access token and cuts the refresh chain,
// so the session cannot silently re-authenticate.
func (a *Auth) Logout(ctx context.Context, token string, userID uuid.UUID) error {
	// Best-effort: logout must succeed even if blacklisting metadata
	// extraction fails.
	if err := a.revoked.Add(ctx, token, userID, ReasonLogout); err != nil {
		a.logger.Error("Auth service: failed to add token to revocation list",
			"user_id", userID,
			"error", err.Error())
	}

	if err := a.active.Untrack(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to untrack token: %w", err)
	}

	if err := a.refresh.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged out", "user_id", userID)
	return nil
}

// ForceLogout revokes every session of the user. An empty reason defaults
// to an admin action.
func (a *Auth) ForceLogout(ctx context.Context, userID uuid.UUID, reason string) error {
	if reason == "" {
		reason = ReasonAdminForced
	}

	if err := a.revokeUserSessions(ctx, userID, reason); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	a.logger.Info("Auth service: user forced offline",
		"user_id", userID,
		"reason", reason)
	return nil
}

// IsTokenActive answers whether the token still belongs to the user's live
// session set. The request pipeline checks this on top of signature and
// revocation checks.
func (a *Auth) IsTokenActive(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	return a.active.IsActive(ctx, userID, token)
}

// Authenticate is the verification path run per request: codec checks,
// then the deny-list, then the allow-index, then the user itself. Fails
// closed on every step.
func (a *Auth) Authenticate(ctx context.Context, token string) (model.User, error) {
	claims, err := a.codec.Verify(token)
	if err != nil {
		return model.User{}, err
	}

	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check revocation list: %w", err)
	}
	if revoked {
		return model.User{}, model.ErrTokenRevoked
	}

	active, err := a.active.IsActive(ctx, claims.UserID, token)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check active token index: %w", err)
	}
	if !active {
		return model.User{}, model.ErrTokenInactive
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserDisabled
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !user.IsActive {
		return model.User{}, model.ErrUserDisabled
	}

	return user, nil
}

// RevocationStats exposes deny-list counters for monitoring and debugging.
func (a *Auth) RevocationStats(ctx context.Context) (model.RevocationStats, error) {
	return a.revoked.Stats(ctx)
}

func (a *Auth) issueSession(ctx context.Context, user model.User) (model.TokenBundle, error) {
	access, claims, err := a.codec.Issue(user)
	if err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.refresh.Issue(ctx, user.ID)
	if err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := a.active.Track(ctx, user.ID, access); err != nil {
		return model.TokenBundle{}, fmt.Errorf("failed to track access token: %w", err)
	}

	a.logger.Debug("Auth service: session issued",
		"user_id", user.ID,
		"jti", claims.JTI)

	return model.TokenBundle{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(a.codec.AccessTTL().Seconds()),
	}, nil
}

// revokeUserSessions drains the user's active token set, blacklists each
// drained token exactly once and cuts the refresh chain.
func (a *Auth) revokeUserSessions(ctx context.Context, userID uuid.UUID, reason string) error {
	tokens, err := a.active.Clear(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to drain active tokens: %w", err)
	}

	for _, token := range tokens {
		if err := a.revoked.Add(ctx, token, userID, reason); err != nil {
			a.logger.Error("Auth service: failed to add token to revocation list",
				"user_id", userID,
				"error", err.Error())
		}
	}

	if err := a.refresh.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
