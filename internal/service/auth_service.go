package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/items-api/internal/auth"
	"github.com/spec-kit/items-api/internal/config"
	"github.com/spec-kit/items-api/internal/domain"
	"github.com/spec-kit/items-api/internal/events"
	"github.com/spec-kit/items-api/internal/ids"
	"github.com/spec-kit/items-api/internal/observability"
	"github.com/spec-kit/items-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and unusable
	// stored hashes alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned by admin lookups.
	ErrUserNotFound = errors.New("user not found")
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.Hasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	// dummyHash is verified against when the email is unknown so both login
	// failure paths cost one Argon2 derivation.
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}

	hasher := auth.NewHasher(auth.HashParams{
		Memory:      cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	})

	filler := make([]byte, 16)
	if _, err := rand.Read(filler); err != nil {
		return nil, err
	}
	dummyHash, err := hasher.Hash(hex.EncodeToString(filler))
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		users:      deps.UserRepo,
		hasher:     hasher,
		tokenMgr:   tokenMgr,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		dummyHash:  dummyHash,
	}, nil
}

// Register creates a new account with the default role and issues a token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.RecordAuth("register", observability.OutcomeError)
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.RecordAuth("register", observability.OutcomeConflict)
			return nil, ErrEmailTaken
		}
		s.metrics.RecordAuth("register", observability.OutcomeError)
		return nil, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.metrics.RecordAuth("register", observability.OutcomeError)
		return nil, err
	}

	s.metrics.RecordAuth("register", observability.OutcomeSuccess)
	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email, Role: user.Role})
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Login authenticates an existing account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordAuth("login", observability.OutcomeError)
			return nil, err
		}
		_, _ = s.hasher.Verify(password, s.dummyHash)
		return nil, s.loginFailed(ctx, email)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash unusable", zap.String("user_id", user.ID), zap.Error(err))
		return nil, s.loginFailed(ctx, email)
	}
	if !ok {
		return nil, s.loginFailed(ctx, email)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.metrics.RecordAuth("login", observability.OutcomeError)
		return nil, err
	}

	s.metrics.RecordAuth("login", observability.OutcomeSuccess)
	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{Role: user.Role, ExpiresAt: exp})
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Me loads the current record of the authenticated caller.
func (s *AuthService) Me(ctx context.Context, principal auth.Principal) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, principal.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// GetUser looks up any account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) loginFailed(ctx context.Context, email string) error {
	s.metrics.RecordAuth("login", observability.OutcomeRejected)
	s.publish(ctx, events.EventLoginFailed, "", events.LoginFailedPayload{Email: email})
	return ErrInvalidCredentials
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        ids.New(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
