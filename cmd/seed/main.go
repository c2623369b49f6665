package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tooltrack/internal/database"
	"tooltrack/internal/domain"
	"tooltrack/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tooltrack.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM tools")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	users := repository.NewUserRepository(db)
	toolsRepo := repository.NewToolRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@tooltrack.local",
		PasswordHash: string(adminHash),
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("admin create failed:", err)
	}
	log.Println("Admin created: admin@tooltrack.local / admin123")

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	worker := &domain.User{
		Email:        "worker@tooltrack.local",
		PasswordHash: string(userHash),
		FirstName:    "Test",
		LastName:     "Worker",
		Role:         domain.RoleUser,
	}
	if err := users.Create(ctx, worker); err != nil {
		log.Fatal("user create failed:", err)
	}

	log.Println("Creating tools...")
	sample := []domain.Tool{
		{Name: "Excavator CAT 320", Code: "EXC-001", Category: "Heavy Machinery", Location: "Yard A", Status: domain.ToolAvailable},
		{Name: "Concrete Mixer M200", Code: "MIX-001", Category: "Construction", Location: "Yard A", Status: domain.ToolAvailable},
		{Name: "Diesel Generator 50kW", Code: "GEN-001", Category: "Power", Location: "Warehouse 2", Status: domain.ToolMaintenance},
		{Name: "Scissor Lift SL-12", Code: "LFT-001", Category: "Access", Location: "Warehouse 1", Status: domain.ToolAvailable},
	}
	toolIDs := make([]int64, 0, len(sample))
	for i := range sample {
		t := sample[i]
		if err := toolsRepo.Create(ctx, &t); err != nil {
			log.Fatal("tool create failed:", err)
		}
		toolIDs = append(toolIDs, t.ID)
	}

	log.Println("Creating bookings...")
	start := time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	b := &domain.Booking{
		UserID:    worker.ID,
		ToolID:    toolIDs[0],
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
		Duration:  4,
		Purpose:   "Foundation digging, site 14",
		Status:    domain.BookingPending,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal("booking create failed:", err)
	}

	log.Println("Seed complete.")
}
