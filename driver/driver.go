package driver

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// ConnectDB opens the configured database. DB_DRIVER selects "mysql"
// (production) or "sqlite" (development); DB_DSN carries the DSN or the
// sqlite file path.
func ConnectDB() *sql.DB {
	driverName := os.Getenv("DB_DRIVER")
	if driverName == "" {
		driverName = "sqlite"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		if driverName == "sqlite" {
			dsn = "kalakriti.db"
		} else {
			log.Fatal("DB_DSN is not set")
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	if err := InitSchema(db, driverName); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}
	return db
}

// InitSchema creates the tables if they do not exist. The DDL is shared
// between MySQL and SQLite except for the auto-increment spelling.
func InitSchema(db *sql.DB, driverName string) error {
	autoinc := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driverName == "mysql" {
		autoinc = "INT AUTO_INCREMENT PRIMARY KEY"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id %s,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(32) NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL DEFAULT '',
			address VARCHAR(512) NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			previous_experience TEXT,
			role VARCHAR(32) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id %s,
			user_id INT NOT NULL,
			event_type VARCHAR(64) NOT NULL,
			artwork_count INT NOT NULL,
			amount INT NOT NULL,
			contestant_id VARCHAR(64) NOT NULL UNIQUE,
			status VARCHAR(32) NOT NULL DEFAULT 'pending_payment',
			order_id VARCHAR(128) NOT NULL DEFAULT '',
			payment_id VARCHAR(128) NOT NULL DEFAULT '',
			remarks TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS submission_files (
			id %s,
			registration_id INT NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			file_url VARCHAR(512) NOT NULL,
			size_bytes BIGINT NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS result_sets (
			id %s,
			event_type VARCHAR(64) NOT NULL,
			season VARCHAR(128) NOT NULL,
			is_latest BOOLEAN NOT NULL DEFAULT 0,
			published_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS result_entries (
			id %s,
			result_set_id INT NOT NULL,
			contestant_id VARCHAR(64) NOT NULL,
			participant_name VARCHAR(255) NOT NULL,
			category VARCHAR(32) NOT NULL,
			position INT NOT NULL,
			score DOUBLE PRECISION NOT NULL DEFAULT 0,
			remarks TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id %s,
			reviewer_name VARCHAR(255) NOT NULL,
			reviewer_role VARCHAR(128) NOT NULL DEFAULT '',
			rating INT NOT NULL,
			comment TEXT,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS queries (
			id %s,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'open',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		ddl := stmt
		if strings.Contains(ddl, "%s") {
			ddl = fmt.Sprintf(ddl, autoinc)
		}
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("schema init: %w", err)
		}
	}
	return nil
}
