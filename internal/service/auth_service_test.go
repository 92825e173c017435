package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/repository"
	"github.com/iliyamo/task-manager/internal/utils"
)

const testSecret = "test-secret"

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	s, err := repository.Open(repository.Config{
		Path:   filepath.Join(t.TempDir(), "db.json"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return s
}

func newAuth(t *testing.T, store *repository.Store) *AuthService {
	t.Helper()
	return NewAuthService(store, utils.NewTokenCodec(testSecret, 0), bcrypt.MinCost, zap.NewNop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuth(t, store)

	u, err := auth.Register(ctx, " Alice ", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	stored, err := store.FindUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "secret1"))
}

func TestRegister_Validation(t *testing.T) {
	auth := newAuth(t, newTestStore(t))
	ctx := context.Background()

	cases := []struct {
		name, email, password, msg string
	}{
		{"", "a@x.com", "secret1", "all fields are required"},
		{"A", "", "secret1", "all fields are required"},
		{"A", "a@x.com", "", "all fields are required"},
		{"   ", "a@x.com", "secret1", "all fields are required"},
		{"A", "a@x.com", "12345", "password must be at least 6 characters"},
		{"A", "a@x.com", strings.Repeat("p", 73), "password must be at most 72 bytes"},
	}
	for _, tc := range cases {
		_, err := auth.Register(ctx, tc.name, tc.email, tc.password)
		require.ErrorIs(t, err, ErrValidation)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, tc.msg, ve.Msg)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuth(t, store)

	_, err := auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "Other", "alice@x.com", "another1")
	assert.ErrorIs(t, err, ErrConflict)

	users, _ := store.Stats()
	assert.Equal(t, 1, users)

	// emails are matched case-sensitively
	_, err = auth.Register(ctx, "Upper", "ALICE@x.com", "secret1")
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t, newTestStore(t))

	reg, err := auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	sess, err := auth.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg, sess.User)
	assert.NotEmpty(t, sess.Token.Token)
	assert.WithinDuration(t, time.Now().Add(utils.DefaultSessionTTL), sess.Token.Exp, time.Minute)

	id, ok := auth.ResolveSession(ctx, sess.Token.Token)
	assert.True(t, ok)
	assert.Equal(t, reg.ID, id)
}

func TestLogin_FailuresLookIdentical(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t, newTestStore(t))
	_, err := auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, unknown := auth.Login(ctx, "nobody@x.com", "secret1")
	_, wrong := auth.Login(ctx, "alice@x.com", "wrong-password")

	require.ErrorIs(t, unknown, ErrInvalidCredentials)
	require.ErrorIs(t, wrong, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrAuth)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestLogin_SuffixPastBcryptLimitIsRejected(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t, newTestStore(t))
	pw := strings.Repeat("a", 72)
	_, err := auth.Register(ctx, "A", "a@x.com", pw)
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@x.com", pw+"-totally-different-suffix")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "a@x.com", pw)
	assert.NoError(t, err)
}

func TestLogin_EmptyFields(t *testing.T) {
	auth := newAuth(t, newTestStore(t))
	_, err := auth.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "email and password are required")
}

func TestResolveSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := newAuth(t, store)
	u, err := auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, ok := auth.ResolveSession(ctx, "")
	assert.False(t, ok, "missing cookie")

	_, ok = auth.ResolveSession(ctx, "garbage")
	assert.False(t, ok, "malformed token")

	foreign, err := utils.NewTokenCodec("other-secret", 0).Issue(u.ID)
	require.NoError(t, err)
	_, ok = auth.ResolveSession(ctx, foreign.Token)
	assert.False(t, ok, "wrong signing key")

	stale, err := utils.NewTokenCodec(testSecret, 0).Issue("no-such-user")
	require.NoError(t, err)
	_, ok = auth.ResolveSession(ctx, stale.Token)
	assert.False(t, ok, "user no longer exists")

	past := utils.NewTokenCodec(testSecret, time.Hour).WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})
	expired, err := past.Issue(u.ID)
	require.NoError(t, err)
	_, ok = auth.ResolveSession(ctx, expired.Token)
	assert.False(t, ok, "expired token")
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t, newTestStore(t))
	u, err := auth.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	got, err := auth.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = auth.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = auth.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

type failingUsers struct{ err error }

func (f failingUsers) FindUserByEmail(context.Context, string) (model.User, error) {
	return model.User{}, repository.ErrUserNotFound
}
func (f failingUsers) FindUserByID(context.Context, string) (model.User, error) {
	return model.User{}, repository.ErrUserNotFound
}
func (f failingUsers) CreateUser(context.Context, model.User) (model.User, error) {
	return model.User{}, f.err
}

func TestRegister_PersistFailureIsOperationFailure(t *testing.T) {
	auth := NewAuthService(failingUsers{err: repository.ErrPersist}, utils.NewTokenCodec(testSecret, 0), bcrypt.MinCost, nil)

	_, err := auth.Register(context.Background(), "Alice", "alice@x.com", "secret1")
	require.ErrorIs(t, err, ErrOperation)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestSessionTTL(t *testing.T) {
	auth := NewAuthService(newTestStore(t), utils.NewTokenCodec(testSecret, 2*time.Hour), bcrypt.MinCost, nil)
	assert.Equal(t, 2*time.Hour, auth.SessionTTL())
}
