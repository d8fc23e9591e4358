package game

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteRepository stores games with hands and the remaining deck encoded
// as JSON card arrays. The partial unique index on (player_id) for
// in-progress rows backs the one-active-game-per-player invariant even
// under concurrent starts.
type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(g *Game) error {
	playerHand, dealerHand, deck, err := encodeCards(g)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO games (
			id, player_id, bet_amount, status,
			player_hand, dealer_hand, deck_state,
			player_score, dealer_score, payout, message,
			created_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.PlayerID, g.Bet, string(g.Status),
		playerHand, dealerHand, deck,
		g.PlayerScore, g.DealerScore, g.Payout, g.Message,
		g.CreatedAt, completedAt(g))

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Save(g *Game) error {
	playerHand, dealerHand, deck, err := encodeCards(g)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE games SET
			status = ?, player_hand = ?, dealer_hand = ?, deck_state = ?,
			player_score = ?, dealer_score = ?, payout = ?, message = ?,
			completed_at = ?
		WHERE id = ?
	`, string(g.Status), playerHand, dealerHand, deck,
		g.PlayerScore, g.DealerScore, g.Payout, g.Message,
		completedAt(g), g.ID)

	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ActiveForPlayer(playerID int64) (*Game, error) {
	g := &Game{PlayerID: playerID}
	var playerHand, dealerHand, deck []byte
	var completed sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, bet_amount, status, player_hand, dealer_hand, deck_state,
			player_score, dealer_score, payout, message, created_at, completed_at
		FROM games
		WHERE player_id = ? AND status = ?
	`, playerID, string(StatusInProgress)).Scan(
		&g.ID, &g.Bet, &g.Status, &playerHand, &dealerHand, &deck,
		&g.PlayerScore, &g.DealerScore, &g.Payout, &g.Message,
		&g.CreatedAt, &completed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	if completed.Valid {
		g.CompletedAt = &completed.Time
	}

	if err := json.Unmarshal(playerHand, &g.PlayerHand); err != nil {
		return nil, fmt.Errorf("failed to decode player hand: %w", err)
	}
	if err := json.Unmarshal(dealerHand, &g.DealerHand); err != nil {
		return nil, fmt.Errorf("failed to decode dealer hand: %w", err)
	}
	var remaining []Card
	if err := json.Unmarshal(deck, &remaining); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	g.Deck = RestoreDeck(remaining)

	return g, nil
}

func (r *SQLiteRepository) CountActive() (int, error) {
	var n int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM games WHERE status = ?
	`, string(StatusInProgress)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active games: %w", err)
	}
	return n, nil
}

func encodeCards(g *Game) (playerHand, dealerHand, deck []byte, err error) {
	if playerHand, err = json.Marshal(g.PlayerHand); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode player hand: %w", err)
	}
	if dealerHand, err = json.Marshal(g.DealerHand); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode dealer hand: %w", err)
	}
	if deck, err = json.Marshal(g.Deck); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode deck: %w", err)
	}
	return playerHand, dealerHand, deck, nil
}

func completedAt(g *Game) any {
	if g.CompletedAt == nil {
		return nil
	}
	return *g.CompletedAt
}
