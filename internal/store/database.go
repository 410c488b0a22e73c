package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database wraps the PostgreSQL connection pool.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens a connection pool and verifies connectivity.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{conn: db, dsn: dsn}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// Init creates the schema. With overwrite set, all scraper tables are
// dropped first — a full re-scrape from nothing.
func (db *Database) Init(overwrite bool) error {
	if overwrite {
		log.Println("⚠️  Overwrite requested: dropping existing tables")
		if _, err := db.conn.Exec(dropStatements); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	log.Println("Applying schema...")
	for i, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}

	log.Println("✓ Schema applied")
	return nil
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
