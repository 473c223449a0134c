package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	email := "alice@example.com"
	password := "correct horse battery"

	user, err := NewUser(email, password, "Alice", "Kimani")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != email {
		t.Errorf("Expected email %s, got %s", email, user.Email)
	}

	if user.Password != password {
		t.Errorf("Expected password to be set before hashing")
	}

	if user.HashedPassword != "" {
		t.Error("NewUser must not hash the password itself")
	}

	// Test invalid email
	_, err = NewUser("not-an-email", password, "Alice", "Kimani")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test short password
	_, err = NewUser(email, "short", "Alice", "Kimani")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validUser := User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test empty ID
	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Test empty email
	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	// A stored user carries only the hash, no plaintext password
	storedUser := User{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$somehash",
	}
	if err := storedUser.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	// Neither password nor hash is invalid
	invalidUser = validUser
	invalidUser.Password = ""
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}
