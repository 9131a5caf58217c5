package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/marketplace-storefront/config"
	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	repo "github.com/oksasatya/marketplace-storefront/internal/domain/repository"
	pginfra "github.com/oksasatya/marketplace-storefront/internal/infrastructure/postgres"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
)

// seeds one demo account per role; admins can only be created here
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, AppName: cfg.AppName + "-seed"})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	users := pginfra.NewUserRepository(pool)

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleSeller, entity.RoleReseller, entity.RoleAdmin} {
		email := fmt.Sprintf("demo.%s@example.com", role)
		u := &entity.User{
			ID:           uuid.NewString(),
			Name:         "Demo " + role.String(),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		}
		if err := users.Create(ctx, u); err != nil {
			if errors.Is(err, repo.ErrDuplicateEmail) {
				fmt.Printf("exists: %s\n", email)
				continue
			}
			log.Fatalf("failed to seed %s: %v", email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s role=%s password=%s\n", u.ID, email, role, password)
	}
}
