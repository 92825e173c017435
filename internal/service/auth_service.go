package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/repository"
	"github.com/iliyamo/task-manager/internal/utils"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// UserStore is the slice of the document store the auth service needs.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByID(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

// Session is the outcome of a successful login.  The transport layer turns
// Token into the session cookie.
type Session struct {
	User  model.PublicUser
	Token utils.SessionToken
}

// AuthService handles registration, login and session resolution.
type AuthService struct {
	users  UserStore
	tokens *utils.TokenCodec
	cost   int
	log    *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the service.  log may be nil.
func NewAuthService(users UserStore, tokens *utils.TokenCodec, bcryptCost int, log *zap.Logger) *AuthService {
	if users == nil || tokens == nil {
		panic("nil dependency passed to NewAuthService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, cost: bcryptCost, log: log.Named("auth")}
}

// Register creates a new account.  It does not log the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.PublicUser{}, invalid("all fields are required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return model.PublicUser{}, invalid("password must be at least 6 characters")
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return model.PublicUser{}, ErrConflict
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.PublicUser{}, operationFailed("lookup user", err)
	}

	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return model.PublicUser{}, invalid("password must be at most 72 bytes")
		}
		s.log.Error("hash password failed", zap.Error(err))
		return model.PublicUser{}, operationFailed("hash password", err)
	}

	u, err := s.users.CreateUser(ctx, model.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.PublicUser{}, ErrConflict
		}
		s.log.Error("create user failed", zap.Error(err))
		return model.PublicUser{}, operationFailed("create user", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u.Public(), nil
}

// Login checks credentials and issues a session token.  Unknown emails and
// wrong passwords produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, invalid("email and password are required")
	}

	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return Session{}, operationFailed("lookup user", err)
		}
		// Burn a comparable amount of time so response latency does not
		// reveal whether the email exists.
		utils.VerifyPassword(s.dummy(), password)
		s.log.Info("login rejected", zap.String("reason", "unknown email"))
		return Session{}, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		s.log.Info("login rejected", zap.String("reason", "bad password"), zap.String("user_id", u.ID))
		return Session{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		s.log.Error("issue token failed", zap.Error(err))
		return Session{}, operationFailed("issue token", err)
	}
	s.log.Info("login succeeded", zap.String("user_id", u.ID))
	return Session{User: u.Public(), Token: tok}, nil
}

// ResolveSession maps a raw cookie value to a user id.  A missing, invalid
// or expired token, or one naming a user that no longer exists, reports
// false; none of these are errors.
func (s *AuthService) ResolveSession(ctx context.Context, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	userID, err := s.tokens.Verify(raw)
	if err != nil {
		return "", false
	}
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		s.log.Debug("session names unknown user", zap.String("user_id", userID))
		return "", false
	}
	return userID, true
}

// CurrentUser returns the public profile of an authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.PublicUser, error) {
	if userID == "" {
		return model.PublicUser{}, ErrNotAuthenticated
	}
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, ErrNotAuthenticated
		}
		return model.PublicUser{}, operationFailed("lookup user", err)
	}
	return u.Public(), nil
}

// Logout always succeeds; there is no server-side session state to drop.
// The caller clears the cookie.
func (s *AuthService) Logout(ctx context.Context, raw string) {
	if userID, ok := s.ResolveSession(ctx, raw); ok {
		s.log.Info("logout", zap.String("user_id", userID))
	}
}

// SessionTTL is the session lifetime, used for the cookie Max-Age.
func (s *AuthService) SessionTTL() time.Duration { return s.tokens.TTL() }

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := utils.HashPassword("timing-equalizer", s.cost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
