package db

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// DB is the global database connection pool.
var DB *sql.DB

// InitDB initializes the SQLite database and creates tables if they don't exist.
func InitDB(path string) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}

	var err error
	DB, err = sql.Open(dbDriver, path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	createTables()

	log.Println("Database connection initialized successfully in", path)
}

// createTables creates the necessary tables in the database if they don't exist.
func createTables() {
	// SQL statement to create the 'cooldowns' table. One row per user,
	// overwritten on each approved upload.
	createCooldownsTableSQL := `
	CREATE TABLE IF NOT EXISTS cooldowns (
		user_id TEXT PRIMARY KEY,
		last_approved_at INTEGER NOT NULL
	);`

	_, err := DB.Exec(createCooldownsTableSQL)
	if err != nil {
		log.Fatalf("Failed to create cooldowns table: %v", err)
	}
}
