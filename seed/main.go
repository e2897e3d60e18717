package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lumen-learning/lumen_api/seed/seeders"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, progress")
		dbPath   = flag.String("db", "", "Database path (overrides DB_NAME env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_NAME")
		if databasePath == "" {
			databasePath = "lumen.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "users":
		log.Println("Seeding demo users only...")
		if err := mainSeeder.SeedUsersOnly(); err != nil {
			log.Fatalf("Failed to seed users: %v", err)
		}
	case "progress":
		log.Println("Seeding mastery and reward state only...")
		if err := mainSeeder.SeedProgressOnly(); err != nil {
			log.Fatalf("Failed to seed progress: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'users', or 'progress'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Lumen Learning API

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, users, progress
  -db string
        Database path (overrides DB_NAME environment variable)
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only the demo accounts
  go run seed/main.go -type=users

  # Seed with custom database path
  go run seed/main.go -db=./custom.db

Environment Variables:
  DB_NAME - Default database path (default: lumen.db)`)
}
