package app

import (
	"context"
	"log"

	"rewear/db"
	"rewear/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin seeds an admin account from env on an empty install.
// Does nothing once any admin exists.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap admin check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        cfg.BootstrapEmail,
		FirstName:    "Admin",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created first admin %s", cfg.BootstrapEmail)
}
