package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"portfoliopal/api/internal/config"
	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/repository"
	"portfoliopal/api/internal/security"
	"portfoliopal/api/internal/timeutil"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

type ResetStore interface {
	Create(ctx context.Context, rec models.PasswordReset) (string, error)
	FindByToken(ctx context.Context, token string) (models.PasswordReset, error)
	Delete(ctx context.Context, id string) error
}

type ActivityStore interface {
	Append(ctx context.Context, entry models.Activity) (string, error)
}

// AuthService orchestrates signup, login and the password reset lifecycle.
// It holds no per-request state; identity is established fresh from the
// session token on every call.
type AuthService struct {
	users    UserStore
	resets   ResetStore
	activity ActivityStore
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(
	users UserStore,
	resets ResetStore,
	activity ActivityStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		resets:   resets,
		activity: activity,
		cfg:      cfg,
		log:      log,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	IP       string
}

// TokenBundle is what a successful signup or login hands back to the client.
type TokenBundle struct {
	AccessToken string
	TokenType   string
	CSRFToken   string
	User        models.User
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (TokenBundle, error) {
	email := NormalizeEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return TokenBundle{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return TokenBundle{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return TokenBundle{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         input.Name,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return TokenBundle{}, ErrEmailTaken
		}
		return TokenBundle{}, err
	}
	user.ID = id

	bundle, err := s.issueSession(user)
	if err != nil {
		return TokenBundle{}, err
	}

	s.recordActivity(ctx, user.ID, "signup", input.IP)
	return bundle, nil
}

type LoginInput struct {
	Email    string
	Password string
	IP       string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (TokenBundle, error) {
	email := NormalizeEmail(input.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Indistinguishable from a wrong password; never reveal
			// whether the email exists.
			return TokenBundle{}, ErrInvalidCredentials
		}
		return TokenBundle{}, err
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		return TokenBundle{}, ErrInvalidCredentials
	}

	bundle, err := s.issueSession(user)
	if err != nil {
		return TokenBundle{}, err
	}

	s.recordActivity(ctx, user.ID, "login", input.IP)
	return bundle, nil
}

// ForgotPassword creates a reset record when the email belongs to a known
// user. The returned token is empty for unknown emails; callers reply with
// the same generic message either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return "", err
	}

	rec := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: timeutil.Now().Add(security.ResetTokenTTL),
	}
	if _, err := s.resets.Create(ctx, rec); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword redeems a reset token and replaces the user's password
// hash. The record is consumed on success; a captured token cannot be
// replayed.
func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	rec, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if !timeutil.Now().Before(rec.ExpiresAt) {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, rec.UserID, passwordHash); err != nil {
		return err
	}

	if err := s.resets.Delete(ctx, rec.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", rec.UserID).Msg("consume reset record failed")
	}

	return nil
}

// LogActivity appends an audit entry on behalf of actor. Non-admin actors
// may only log entries about themselves.
func (s *AuthService) LogActivity(ctx context.Context, actor models.User, entry models.Activity, admin bool) error {
	if actor.ID != entry.UserID && !admin {
		return ErrForbidden
	}
	_, err := s.activity.Append(ctx, entry)
	return err
}

// recordActivity is best-effort: a failed audit write never fails the
// operation that triggered it.
func (s *AuthService) recordActivity(ctx context.Context, userID string, eventType string, ip string) {
	entry := models.Activity{
		UserID: userID,
		Type:   eventType,
		IP:     ip,
	}
	if _, err := s.activity.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("type", eventType).
			Msg("record activity failed")
	}
}

func (s *AuthService) issueSession(user models.User) (TokenBundle, error) {
	csrf, err := security.GenerateCSRFToken()
	if err != nil {
		return TokenBundle{}, err
	}

	accessToken, err := security.GenerateSessionToken(
		s.cfg.Auth.SecretKey,
		user.ID,
		user.Email,
		csrf,
		s.cfg.Auth.AccessTokenTTL(),
	)
	if err != nil {
		return TokenBundle{}, err
	}

	return TokenBundle{
		AccessToken: accessToken,
		TokenType:   "bearer",
		CSRFToken:   csrf,
		User:        user,
	}, nil
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
