package player

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetBySession(sessionID string) (*Player, error) {
	p := &Player{SessionID: sessionID}

	err := r.db.QueryRow(`
		SELECT id, balance, games, wins, losses, pushes, created_at, updated_at
		FROM players WHERE session_id = ?
	`, sessionID).Scan(
		&p.ID, &p.Balance, &p.Games, &p.Wins, &p.Losses, &p.Pushes,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return p, nil
}

func (r *SQLiteRepository) GetOrCreate(sessionID string, startBalance int) (*Player, error) {
	p, err := r.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	now := time.Now().UTC()
	res, err := r.db.Exec(`
		INSERT INTO players (session_id, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, startBalance, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return &Player{
		ID:        id,
		SessionID: sessionID,
		Balance:   startBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *SQLiteRepository) Save(p *Player) error {
	p.UpdatedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		UPDATE players SET
			balance = ?, games = ?, wins = ?, losses = ?, pushes = ?,
			updated_at = ?
		WHERE id = ?
	`, p.Balance, p.Games, p.Wins, p.Losses, p.Pushes, p.UpdatedAt, p.ID)

	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}
