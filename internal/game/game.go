package game

import "time"

// Status is the closed set of game states. Every state other than
// StatusInProgress is terminal.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusPlayerWin  Status = "player_win"
	StatusDealerWin  Status = "dealer_win"
	StatusPush       Status = "push"
	StatusPlayerBust Status = "player_bust"
	StatusDealerBust Status = "dealer_bust"
	StatusBlackjack  Status = "blackjack"
)

// Terminal reports whether the game has been resolved.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Game is one blackjack round owned by a single player. A player has at
// most one game with StatusInProgress at any time.
type Game struct {
	ID          string
	PlayerID    int64
	Bet         int
	PlayerHand  []Card
	DealerHand  []Card
	Deck        *Deck
	PlayerScore int
	DealerScore int
	Status      Status
	Payout      int
	Message     string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (g *Game) complete(status Status, message string, payout int, at time.Time) {
	g.Status = status
	g.Message = message
	g.Payout = payout
	g.CompletedAt = &at
}

// Repository persists games between requests. ActiveForPlayer returns
// (nil, nil) when the player has no game in progress.
type Repository interface {
	Create(g *Game) error
	Save(g *Game) error
	ActiveForPlayer(playerID int64) (*Game, error)
	CountActive() (int, error)
}
