// Command main runs the database seeder for HappyHour.
package main

import (
	"flag"
	"log"

	"happyhour/internal/config"
	"happyhour/internal/database"
	"happyhour/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtureFile := flag.String("fixture", "", "YAML fixture file overriding the built-in reference data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	reference := seed.DefaultReference()
	if *fixtureFile != "" {
		reference, err = seed.LoadReferenceFile(*fixtureFile)
		if err != nil {
			log.Fatalf("❌ Fixture load failed: %v", err)
		}
		log.Printf("Using fixture file: %s\n", *fixtureFile)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(*numUsers, reference); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s", seed.TestUserPassword)
}
