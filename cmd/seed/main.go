package main

import (
	"context"
	"log"
	"log/slog"

	"voting-service/internal/config"
	"voting-service/internal/database"
	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"

	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password"

var seedCandidates = []models.Candidate{
	{Name: "Sarah Johnson", Description: "A passionate advocate for education and community development."},
	{Name: "Maria Garcia", Description: "Dedicated to promoting cultural diversity and inclusion."},
	{Name: "Emily Chen", Description: "Environmental activist working towards sustainable solutions."},
	{Name: "Aisha Patel", Description: "Healthcare professional committed to improving public health."},
	{Name: "Jessica Williams", Description: "Technology enthusiast promoting digital literacy."},
	{Name: "Sophia Rodriguez", Description: "Artist and creative advocate for arts education."},
	{Name: "Isabella Thompson", Description: "Business leader focused on women empowerment."},
	{Name: "Olivia Davis", Description: "Sports advocate promoting fitness and wellness."},
	{Name: "Ava Martinez", Description: "Social worker dedicated to helping vulnerable communities."},
	{Name: "Mia Anderson", Description: "Scientist working on innovative research projects."},
	{Name: "Charlotte Taylor", Description: "Journalist committed to truth and transparency."},
	{Name: "Amelia Brown", Description: "Chef promoting healthy eating and food sustainability."},
	{Name: "Harper Wilson", Description: "Law student advocating for justice and equality."},
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	// Connect to database
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()
	userRepo := gormrepo.NewUserRepository(db)
	candidateRepo := gormrepo.NewCandidateRepository(db)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password:", err)
	}

	// Seed users
	slog.Info("Creating initial users...")
	users := []struct {
		email string
		role  string
	}{
		{"admin@pageant.com", models.RoleAdmin},
		{"john@example.com", models.RoleVoter},
		{"jane@example.com", models.RoleVoter},
		{"mike@example.com", models.RoleVoter},
	}
	for _, userData := range users {
		user := &models.User{Email: userData.email, Password: string(hashedPassword), Role: userData.role}
		if err := userRepo.Create(ctx, user); err != nil {
			slog.Warn("User might already exist", "email", userData.email, "error", err)
			continue
		}
		slog.Info("Created user", "email", userData.email, "role", userData.role, "id", user.ID)
	}

	// Seed candidates
	slog.Info("Creating candidates...")
	for _, seed := range seedCandidates {
		candidate := seed
		if err := candidateRepo.Create(ctx, &candidate); err != nil {
			slog.Warn("Candidate might already exist", "name", candidate.Name, "error", err)
			continue
		}
		slog.Info("Created candidate", "name", candidate.Name, "id", candidate.ID)
	}

	slog.Info("Database seeding completed successfully!")
}
