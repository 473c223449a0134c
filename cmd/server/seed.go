package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

// seedUser ensures the configured bootstrap user exists so a fresh
// deployment has credentials for the write endpoints. It is a no-op when no
// seed email is configured, and idempotent when the user already exists.
// The existence check and insert run in one transaction so two racing
// server instances cannot both insert.
func (app *application) seedUser(ctx context.Context) error {
	email := app.config.Auth.SeedEmail
	password := app.config.Auth.SeedPassword

	if email == "" {
		return nil
	}
	if password == "" {
		return errors.New("auth seed email configured without a seed password")
	}

	return store.RunInTransaction(ctx, app.db, func(ctx context.Context, tx *sql.Tx) error {
		users := app.userStore.WithTx(tx)

		_, err := users.GetByEmail(ctx, email)
		if err == nil {
			app.logger.Debug("seed user already exists")
			return nil
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check for seed user: %w", err)
		}

		user, err := domain.NewUser(email, password, "", "")
		if err != nil {
			return fmt.Errorf("invalid seed user credentials: %w", err)
		}

		if err := users.Create(ctx, user); err != nil {
			// Another instance may have won the race on the unique email
			if errors.Is(err, store.ErrEmailExists) {
				return nil
			}
			return fmt.Errorf("failed to create seed user: %w", err)
		}

		app.logger.Info("seed user created",
			"user_id", user.ID.String())
		return nil
	})
}
