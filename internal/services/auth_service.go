package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// SessionStore keeps the ids of tokens that have not been signed out.
type SessionStore interface {
	Save(ctx context.Context, s model.Session) error
	Find(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is what a successful sign-in hands back to the caller.
type Session struct {
	Token     string
	Identity  model.Identity
	ExpiresAt time.Time
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	hashCost int
	now      func() time.Time
}

type AuthOption func(*AuthService)

func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.hashCost = cost
	}
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	secret string,
	ttl time.Duration,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}
	if len(input.Password) > maxPasswordLength {
		return nil, apperrors.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	return s.openSession(ctx, user)
}

// SignIn answers the same error for an unknown email and a wrong password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewStoreError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// SignOut revokes the session behind token. Failures are logged, never
// returned: the caller drops its cookie either way.
func (s *AuthService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}

	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		zap.L().Warn("sign out with unreadable token", zap.Error(err))
		return
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		zap.L().Error("failed to revoke session", zap.String("session_id", claims.ID), zap.Error(err))
	}
}

// CurrentUser resolves the identity behind token. Anything short of a valid,
// unexpired, unrevoked token for an existing user is ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, apperrors.ErrUnauthenticated
	}

	claims, err := s.parse(token, jwt.WithExpirationRequired())
	if err != nil {
		return model.Identity{}, apperrors.ErrUnauthenticated
	}

	live, err := s.sessions.Find(ctx, claims.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			zap.L().Error("failed to look up session", zap.String("session_id", claims.ID), zap.Error(err))
		}
		return model.Identity{}, apperrors.ErrUnauthenticated
	}
	if live.UserID != claims.Subject {
		return model.Identity{}, apperrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			zap.L().Error("failed to look up user", zap.String("user_id", claims.Subject), zap.Error(err))
		}
		return model.Identity{}, apperrors.ErrUnauthenticated
	}

	return user.Identity(), nil
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	sessionID := uuid.NewString()

	if err := s.sessions.Save(ctx, model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}); err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		Token:     token,
		Identity:  user.Identity(),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) parse(token string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, errors.New("token without session")
	}
	return claims, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "", apperrors.ErrInvalidEmail
	}
	return email, nil
}
