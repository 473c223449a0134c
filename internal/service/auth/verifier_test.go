package auth

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

// MockUserStore is a mock implementation of store.UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

// MockPasswordVerifier is a mock implementation of PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStoredUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$notarealhashnotarealhashnotarealhash",
		FirstName:      "Alice",
		LastName:       "Kimani",
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	userStore := new(MockUserStore)
	passwords := new(MockPasswordVerifier)
	logger := newTestLogger()

	v, err := NewVerifier(userStore, passwords, logger)
	require.NoError(t, err)
	assert.NotNil(t, v)

	_, err = NewVerifier(nil, passwords, logger)
	assert.Error(t, err)

	_, err = NewVerifier(userStore, nil, logger)
	assert.Error(t, err)

	_, err = NewVerifier(userStore, passwords, nil)
	assert.Error(t, err)
}

func TestVerifyCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		userStore := new(MockUserStore)
		passwords := new(MockPasswordVerifier)
		stored := newStoredUser()

		userStore.On("GetByEmail", ctx, stored.Email).Return(stored, nil)
		passwords.On("Compare", stored.HashedPassword, "correct horse battery").Return(nil)

		v, err := NewVerifier(userStore, passwords, newTestLogger())
		require.NoError(t, err)

		user, err := v.VerifyCredentials(ctx, stored.Email, "correct horse battery")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		userStore.AssertExpectations(t)
		passwords.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		userStore := new(MockUserStore)
		passwords := new(MockPasswordVerifier)

		userStore.On("GetByEmail", ctx, "nobody@example.com").
			Return(nil, store.ErrUserNotFound)

		v, err := NewVerifier(userStore, passwords, newTestLogger())
		require.NoError(t, err)

		user, err := v.VerifyCredentials(ctx, "nobody@example.com", "whatever password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
		passwords.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		userStore := new(MockUserStore)
		passwords := new(MockPasswordVerifier)
		stored := newStoredUser()

		userStore.On("GetByEmail", ctx, stored.Email).Return(stored, nil)
		passwords.On("Compare", stored.HashedPassword, "wrong password here").
			Return(errors.New("hashedPassword is not the hash of the given password"))

		v, err := NewVerifier(userStore, passwords, newTestLogger())
		require.NoError(t, err)

		user, err := v.VerifyCredentials(ctx, stored.Email, "wrong password here")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("store failure passes through", func(t *testing.T) {
		t.Parallel()
		userStore := new(MockUserStore)
		passwords := new(MockPasswordVerifier)
		storeErr := errors.New("connection reset")

		userStore.On("GetByEmail", ctx, "alice@example.com").Return(nil, storeErr)

		v, err := NewVerifier(userStore, passwords, newTestLogger())
		require.NoError(t, err)

		user, err := v.VerifyCredentials(ctx, "alice@example.com", "correct horse battery")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}

func TestBcryptVerifierCompare(t *testing.T) {
	t.Parallel()

	// MinCost keeps the hashing fast enough for a unit test
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()

	assert.NoError(t, v.Compare(string(hash), "correct horse battery"))
	assert.Error(t, v.Compare(string(hash), "wrong password here"))
	assert.Error(t, v.Compare("not even a bcrypt hash", "correct horse battery"))
}
