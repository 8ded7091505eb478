package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT    NOT NULL UNIQUE,
		email         TEXT    NOT NULL UNIQUE,
		password_hash TEXT    NOT NULL,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS campgrounds (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT    NOT NULL,
		description TEXT    NOT NULL,
		location    TEXT    NOT NULL,
		price       REAL    NOT NULL CHECK (price >= 0),
		longitude   REAL    NOT NULL DEFAULT 0,
		latitude    REAL    NOT NULL DEFAULT 0,
		author_id   INTEGER NOT NULL REFERENCES users(id),
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS campground_images (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		campground_id INTEGER NOT NULL REFERENCES campgrounds(id) ON DELETE CASCADE,
		public_id     TEXT    NOT NULL,
		url           TEXT    NOT NULL,
		position      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		campground_id INTEGER NOT NULL REFERENCES campgrounds(id) ON DELETE CASCADE,
		author_id     INTEGER NOT NULL REFERENCES users(id),
		rating        INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		body          TEXT    NOT NULL,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT     PRIMARY KEY,
		user_id    INTEGER  REFERENCES users(id),
		return_to  TEXT     NOT NULL DEFAULT '',
		flash_kind TEXT     NOT NULL DEFAULT '',
		flash_msg  TEXT     NOT NULL DEFAULT '',
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_campground ON reviews(campground_id)`,
	`CREATE INDEX IF NOT EXISTS idx_images_campground ON campground_images(campground_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
