package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@taskboard.local"
	demoPassword = "demo123"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedDemoTasks(ctx, taskRepo, user)
	if err != nil {
		log.Fatalf("Failed to seed demo tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s / %s", demoEmail, demoPassword)
	log.Printf("  - New tasks created: %d", created)
}

// seedDemoUser creates the demo account unless it already exists.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindActiveByEmail(ctx, demoEmail)
	if err == nil {
		log.Println("Demo user already exists, skipping")
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hash),
		Role:         model.DefaultRole,
		Active:       true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("Created demo user %s", demoEmail)
	return user, nil
}

// seedDemoTasks inserts a batch of sample tasks when the board is empty.
func seedDemoTasks(ctx context.Context, repo repository.TaskRepository, user *model.User) (int, error) {
	total, err := repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		log.Printf("Found %d existing tasks, skipping task seed", total)
		return 0, nil
	}

	inThreeDays := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	nextWeek := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour)

	tasks := []model.Task{
		{
			Title:       "Set up project workspace",
			Description: "Install dependencies and confirm the local environment runs end to end.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Tags:        []string{"setup", "onboarding"},
			UserID:      &user.ID,
		},
		{
			Title:       "Write API integration tests",
			Description: "Cover task listing, filtering, and the authentication flow.",
			Status:      model.StatusInProgress,
			Priority:    model.PriorityHigh,
			DueDate:     &inThreeDays,
			Tags:        []string{"testing", "api"},
			UserID:      &user.ID,
		},
		{
			Title:       "Review pagination edge cases",
			Description: "Check behavior when the requested page is past the last one.",
			Status:      model.StatusPending,
			Priority:    model.PriorityMedium,
			DueDate:     &nextWeek,
			Tags:        []string{"review"},
			UserID:      &user.ID,
		},
		{
			Title:       "Polish the dashboard styling",
			Description: "Tighten spacing on the stats cards and the task list.",
			Status:      model.StatusPending,
			Priority:    model.PriorityLow,
			Tags:        []string{"frontend", "ui"},
		},
		{
			Title:       "Draft release notes",
			Status:      model.StatusPending,
			Priority:    model.PriorityMedium,
			Tags:        []string{},
		},
	}

	created := 0
	for i := range tasks {
		if err := repo.Create(ctx, &tasks[i]); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
