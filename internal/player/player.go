package player

import "time"

// Player is the root record for one session: a balance plus cumulative
// results. It is created lazily on first contact with a session identifier
// and mutated only through game transitions (and the explicit reset).
type Player struct {
	ID        int64
	SessionID string
	Balance   int
	Games     int
	Wins      int
	Losses    int
	Pushes    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaceBet moves the bet into escrow. It reports false without touching
// the balance when the player cannot cover the amount.
func (p *Player) PlaceBet(amount int) bool {
	if amount > p.Balance {
		return false
	}
	p.Balance -= amount
	return true
}

func (p *Player) AddWin(payout int) {
	p.Balance += payout
	p.Wins++
	p.Games++
}

func (p *Player) AddLoss() {
	p.Losses++
	p.Games++
}

func (p *Player) AddPush(refund int) {
	p.Balance += refund
	p.Pushes++
	p.Games++
}

// WinRate returns the percentage of played games won, 0 for a fresh player.
func (p *Player) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}

// Repository persists players keyed by session identifier. GetBySession
// returns (nil, nil) when no player exists for the session.
type Repository interface {
	GetBySession(sessionID string) (*Player, error)
	GetOrCreate(sessionID string, startBalance int) (*Player, error)
	Save(p *Player) error
	Count() (int, error)
}
