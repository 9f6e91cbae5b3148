package main

import (
	"flag"
	"log"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/database"
	"github.com/talentwire/interview-orchestrator/pkg/config"
)

func main() {
	jobFlag := flag.String("job", "", "job id to seed questions for (random when empty)")
	migrateFlag := flag.Bool("migrate", false, "apply pending migrations and exit")
	flag.Parse()

	if *migrateFlag {
		runMigrations()
		return
	}

	log.Println("🚀 Seeding sample interview questions...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	jobID := uuid.New()
	if *jobFlag != "" {
		jobID, err = uuid.Parse(*jobFlag)
		if err != nil {
			log.Fatalf("Invalid job id: %v", err)
		}
	}

	questions := []entities.Question{
		{
			JobID:           jobID,
			Prompt:          "Tell me about yourself and your background.",
			Category:        entities.CategoryIntroduction,
			AllottedSeconds: 90,
			Position:        1,
		},
		{
			JobID:           jobID,
			Prompt:          "Describe a time you disagreed with a teammate. How did you resolve it?",
			Category:        entities.CategoryBehavioral,
			AllottedSeconds: 120,
			Position:        2,
		},
		{
			JobID:           jobID,
			Prompt:          "Walk me through how you would design a rate limiter for a public API.",
			Category:        entities.CategoryTechnical,
			AllottedSeconds: 180,
			Position:        3,
		},
		{
			JobID:           jobID,
			Prompt:          "Your production deployment just failed during peak hours. What do you do first?",
			Category:        entities.CategorySituational,
			AllottedSeconds: 120,
			Position:        4,
		},
		{
			JobID:           jobID,
			Prompt:          "Where do you see your career in five years?",
			Category:        entities.CategoryCareer,
			AllottedSeconds: 90,
			Position:        5,
		},
	}

	for i := range questions {
		questions[i].ID = uuid.New()
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("Failed to insert question %d: %v", questions[i].Position, err)
		}
	}

	log.Printf("✅ Seeded %d questions for job %s", len(questions), jobID)
	log.Println("   Start a session against this job id to exercise the full flow.")
}
