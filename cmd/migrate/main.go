package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/courseportal/api/database"
)

// Applies the raw SQL layer that AutoMigrate does not cover: enum types,
// check constraints and the extra indexes.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.Start()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	fmt.Println("Running SQL migrations...")

	if err := store.Init(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migrations applied successfully.")
}
