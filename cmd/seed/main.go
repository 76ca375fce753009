package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"printbridge/internal/config"
	"printbridge/internal/db"
	"printbridge/internal/model"
	"printbridge/internal/repository"
)

// Bootstrap accounts for a fresh deployment. The admin credentials match
// what the operators' runbook expects; change the password immediately
// after first login.
var seedUsers = []struct {
	email    string
	password string
	role     string
}{
	{email: "admin@test.com", password: "admin123", role: model.RoleAdmin},
	{email: "operator@test.com", password: "operator123", role: model.RoleUser},
}

func main() {
	force := flag.Bool("force", false, "reset passwords of existing seed users")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, seed.email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error checking user %s: %v", seed.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.email, err)
		}

		if existing != nil {
			if !*force {
				log.Printf("User %s already exists, skipping (use -force to reset)", seed.email)
				skipped++
				continue
			}
			existing.PasswordHash = string(hash)
			existing.Role = seed.role
			existing.Status = model.StatusActive
			if err := userRepo.Update(ctx, existing); err != nil {
				log.Fatalf("Failed to update user %s: %v", seed.email, err)
			}
			log.Printf("Reset user %s", seed.email)
			continue
		}

		user := &model.User{
			Email:        seed.email,
			PasswordHash: string(hash),
			Role:         seed.role,
			Status:       model.StatusActive,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.email, err)
		}
		log.Printf("Created %s user %s", seed.role, seed.email)
		created++
	}

	log.Printf("Seed completed: %d created, %d skipped", created, skipped)
}
