package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		balance INTEGER NOT NULL DEFAULT 100,
		games INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		pushes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		player_id INTEGER NOT NULL REFERENCES players(id),
		bet_amount INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		player_hand TEXT NOT NULL DEFAULT '[]',
		dealer_hand TEXT NOT NULL DEFAULT '[]',
		deck_state TEXT NOT NULL DEFAULT '[]',
		player_score INTEGER NOT NULL DEFAULT 0,
		dealer_score INTEGER NOT NULL DEFAULT 0,
		payout INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_games_player ON games(player_id);

	-- Serializes concurrent starts for one player: at most one open game.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_games_one_active
		ON games(player_id) WHERE status = 'in_progress';
	`

	_, err := db.Exec(schema)
	return err
}
