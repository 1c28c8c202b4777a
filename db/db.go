package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/lib/pq"

	"shortlink/models"
)

// Database struct holds the database connection
type Database struct {
	conn *sql.DB
}

// InitDB establishes a connection to the PostgreSQL database. Connection
// details come from DATABASE_URL or, failing that, the DATABASE_* parts.
// Missing configuration is a startup error.
func InitDB() (*Database, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		dbHost := os.Getenv("DATABASE_HOST")
		dbUser := os.Getenv("DATABASE_USER")
		dbPassword := os.Getenv("DATABASE_PASSWORD")
		dbName := os.Getenv("DATABASE_NAME")
		dbPort := os.Getenv("DATABASE_PORT")
		sslMode := os.Getenv("DATABASE_SSLMODE")

		if dbHost == "" {
			return nil, errors.New("database connection not configured: set DATABASE_URL or DATABASE_HOST")
		}
		if dbPort == "" {
			dbPort = "5432" // Default PostgreSQL port
		}
		if sslMode == "" {
			sslMode = "require"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbHost, dbPort, dbUser, dbPassword, dbName, sslMode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := createSchema(conn); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &Database{conn: conn}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.conn.Close()
}

// createSchema creates the necessary tables if they don't exist
func createSchema(db *sql.DB) error {
	// Expiry is stored as fixed-width date/time strings; the engine compares
	// them lexicographically.
	query := `
	CREATE TABLE IF NOT EXISTS urls (
		id SERIAL PRIMARY KEY,
		original TEXT NOT NULL,
		short_code VARCHAR(64) NOT NULL UNIQUE,
		remaining_uses INTEGER NOT NULL DEFAULT -1,
		expires_date CHAR(10) NOT NULL,
		expires_time CHAR(5) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	_, err := db.Exec(query)
	return err
}

const urlColumns = `id, original, short_code, remaining_uses, expires_date, expires_time, created_at`

func scanURL(row *sql.Row) (*models.URL, error) {
	var u models.URL
	err := row.Scan(
		&u.ID,
		&u.Original,
		&u.ShortCode,
		&u.RemainingUses,
		&u.ExpiresDate,
		&u.ExpiresTime,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByCode retrieves a URL by its short code; nil when absent.
func (db *Database) FindByCode(shortCode string) (*models.URL, error) {
	query := `SELECT ` + urlColumns + ` FROM urls WHERE short_code = $1`
	return scanURL(db.conn.QueryRow(query, shortCode))
}

// FindByURL retrieves an unlimited-use mapping for the original target; nil
// when absent. Only the dedup-on-create path uses it, and that path never
// reuses a limited record, so limited rows for the same URL are skipped here.
func (db *Database) FindByURL(original string) (*models.URL, error) {
	query := `SELECT ` + urlColumns + ` FROM urls
			  WHERE original = $1 AND remaining_uses = $2 ORDER BY id LIMIT 1`
	return scanURL(db.conn.QueryRow(query, original, models.UnlimitedUses))
}

// Insert stores a new URL record and fills in its generated ID. The engine's
// clock reading is persisted as-is so the row matches the returned record.
func (db *Database) Insert(u *models.URL) error {
	query := `INSERT INTO urls (original, short_code, remaining_uses, expires_date, expires_time, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return db.conn.QueryRow(query, u.Original, u.ShortCode, u.RemainingUses, u.ExpiresDate, u.ExpiresTime, u.CreatedAt).Scan(&u.ID)
}

// DeleteByID removes a URL record
func (db *Database) DeleteByID(id int) error {
	query := `DELETE FROM urls WHERE id = $1`
	_, err := db.conn.Exec(query, id)
	return err
}

// DecrementUses atomically consumes one use. The WHERE clause makes it a
// conditional update, so concurrent resolves cannot push the counter below
// zero; ok is false when the record had no uses left (or is gone).
func (db *Database) DecrementUses(id int) (int, bool, error) {
	query := `UPDATE urls SET remaining_uses = remaining_uses - 1
			  WHERE id = $1 AND remaining_uses > 0 RETURNING remaining_uses`
	var remaining int
	err := db.conn.QueryRow(query, id).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return remaining, true, nil
}

// IsConflict reports whether err is a Postgres unique violation.
func (db *Database) IsConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
