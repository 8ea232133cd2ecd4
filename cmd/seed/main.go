package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"techcorp/internal/auth"
	"techcorp/internal/config"
	"techcorp/internal/db"
	"techcorp/internal/model"
	"techcorp/internal/repository"
)

// seedUser is a default account guaranteed to exist after seeding.
type seedUser struct {
	Username string
	Email    string
	Password string
	Role     auth.Role
}

var defaultUsers = []seedUser{
	{Username: "admin", Email: "admin@techcorp.com", Password: "admin123", Role: auth.RoleAdmin},
	{Username: "testuser", Email: "test@techcorp.com", Password: "hello", Role: auth.RoleRegistered},
}

var defaultCategories = []string{
	"Software Development",
	"Cloud Services",
	"Consulting",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	hasher := auth.NewHasher(cfg.HashScheme)

	created, updated, err := seedUsers(ctx, userRepo, hasher)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	for _, name := range defaultCategories {
		if _, err := categoryRepo.FirstOrCreateByName(ctx, name); err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users updated: %d", updated)
	log.Printf("  - Categories ensured: %d", len(defaultCategories))
}

// seedUsers upserts the default accounts. Existing accounts get their role
// and password reset to the known defaults so demo logins keep working.
func seedUsers(ctx context.Context, repo repository.UserRepository, hasher auth.PasswordHasher) (created int, updated int, err error) {
	for _, su := range defaultUsers {
		digest, err := hasher.Hash(su.Password)
		if err != nil {
			return created, updated, err
		}

		existing, err := repo.FindByUsername(ctx, su.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, updated, err
		}

		if existing != nil {
			if err := repo.UpdateRoleAndHash(ctx, su.Username, string(su.Role), digest); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}

		user := &model.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: digest,
			Role:         string(su.Role),
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, updated, err
		}
		created++
	}

	return created, updated, nil
}
