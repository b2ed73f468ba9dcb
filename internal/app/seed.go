package app

import (
	"context"
	"errors"

	"souqly_backend/internal/auth"
	"souqly_backend/internal/config"
	"souqly_backend/internal/logger"
	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
)

// seedAdmin creates the configured admin account if it does not exist yet.
// A blank admin email disables seeding.
func seedAdmin(ctx context.Context, users repositories.UserRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        cfg.Email,
		PasswordHash: hash,
		FirstName:    "Admin",
	}
	if err := users.Create(ctx, admin); err != nil {
		// A concurrent boot may have seeded it first.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil
		}
		return err
	}
	logger.Info("✅ Admin user seeded", "email", cfg.Email)
	return nil
}
