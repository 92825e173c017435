package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/model"
)

// FindUserByEmail returns the user with exactly this email (case-sensitive).
func (s *Store) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// CreateUser assigns ID and CreatedAt, appends the user and persists.  The
// email uniqueness check runs under the write lock, so two concurrent
// registrations for one address cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(ctx); err != nil {
		return model.User{}, err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return model.User{}, ErrEmailExists
		}
	}

	u.ID = s.newID()
	u.CreatedAt = s.timestamp()

	prev := s.users
	s.users = append(s.users[:len(s.users):len(s.users)], u)
	if err := s.persist(); err != nil {
		s.users = prev
		return model.User{}, err
	}
	s.log.Info("user created", zap.String("user_id", u.ID), zap.Int("total_users", len(s.users)))
	return u, nil
}
