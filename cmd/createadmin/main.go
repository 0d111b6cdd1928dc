// Command createadmin seeds the first admin account. It is idempotent:
// when an admin already exists it reports the fact and exits cleanly.
package main

import (
	"context"
	"log"
	"os"

	"jobverse/config"
	"jobverse/internal/database"
	"jobverse/internal/models"
	"jobverse/internal/storage/postgres"
	"jobverse/internal/transport/dto"
)

const (
	defaultAdminName     = "Admin"
	defaultAdminEmail    = "admin@jobverse.local"
	defaultAdminPassword = "admin123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	name := envOr("ADMIN_NAME", defaultAdminName)
	email := envOr("ADMIN_EMAIL", defaultAdminEmail)
	password := envOr("ADMIN_PASSWORD", defaultAdminPassword)

	ctx := context.Background()
	repo := postgres.NewUserRepo(pool)

	existing, err := repo.ListRecent(ctx, models.RoleAdmin, 1)
	if err != nil {
		log.Fatalf("Failed to check for existing admins: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("An admin account already exists (%s), nothing to do.", existing[0].Email)
		return
	}

	admin, err := repo.Create(ctx, &dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account created: %s (%s)", admin.Email, admin.ID)
	log.Println("Remember to change the password after the first login.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
