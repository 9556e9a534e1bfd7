package db

import "database/sql"

// MigrateUp creates the schema if it does not exist.
// The DDL is written against PostgreSQL; MigrateUpSQLite carries the SQLite
// variant for local development.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    owner_id     INTEGER NOT NULL REFERENCES users(id),
    source_title TEXT NOT NULL,
    source_link  TEXT NOT NULL,
    content      TEXT NOT NULL,
    created_at   TIMESTAMPTZ DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// owner-scoped listing sorts newest-first
		`CREATE INDEX IF NOT EXISTS idx_articles_owner_created ON articles(owner_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateUpSQLite creates the schema for the SQLite backend.
func MigrateUpSQLite(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id     INTEGER NOT NULL REFERENCES users(id),
    source_title TEXT NOT NULL,
    source_link  TEXT NOT NULL,
    content      TEXT NOT NULL,
    created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
		return err
	}

	if _, err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_articles_owner_created ON articles(owner_id, created_at DESC)`,
	); err != nil {
		return err
	}

	return nil
}

// Migrate runs the migration matching the configured driver.
func Migrate(db *sql.DB, driver Driver) error {
	if driver == DriverSQLite {
		return MigrateUpSQLite(db)
	}
	return MigrateUp(db)
}
