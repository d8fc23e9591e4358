package game

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"blackjack/internal/player"
)

// Rules are the table parameters. They are supplied by the caller; the
// engine never hard-codes them.
type Rules struct {
	InitialBalance  int
	MinBet          int
	MaxBet          int
	DealerStandsAt  int
	BlackjackPayout float64
}

// Service drives the game state machine. Every operation is one
// read-modify-write against the repositories: load player and active game,
// apply the transition, persist. Rejected actions change nothing.
type Service struct {
	players player.Repository
	games   Repository
	rules   Rules
	log     zerolog.Logger

	// newDeck is swapped out in tests to stack the deal.
	newDeck func() *Deck
}

func NewService(players player.Repository, games Repository, rules Rules, log zerolog.Logger) *Service {
	return &Service{
		players: players,
		games:   games,
		rules:   rules,
		log:     log,
		newDeck: NewDeck,
	}
}

func (s *Service) GetOrCreatePlayer(sessionID string) (*player.Player, error) {
	return s.players.GetOrCreate(sessionID, s.rules.InitialBalance)
}

// PlayerCount reports how many players have ever been created. Used by the
// metrics endpoints.
func (s *Service) PlayerCount() (int, error) {
	return s.players.Count()
}

// StartGame validates the bet, escrows it, deals two cards each (player,
// dealer, player, dealer) and resolves a player natural immediately. A
// dealer-only natural is deliberately left unresolved until the player
// stands.
func (s *Service) StartGame(sessionID string, bet int) (*Game, *player.Player, error) {
	p, err := s.GetOrCreatePlayer(sessionID)
	if err != nil {
		return nil, nil, err
	}

	if bet < s.rules.MinBet {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("Minimum bet is $%d", s.rules.MinBet)}
	}
	if bet > s.rules.MaxBet {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("Maximum bet is $%d", s.rules.MaxBet)}
	}
	if bet > p.Balance {
		return nil, nil, &ValidationError{Reason: "Insufficient balance"}
	}

	active, err := s.games.ActiveForPlayer(p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active game: %w", err)
	}
	if active != nil {
		return nil, nil, &ValidationError{Reason: "Game already in progress"}
	}

	p.PlaceBet(bet)

	deck := s.newDeck()
	playerHand := []Card{deck.Draw()}
	dealerHand := []Card{deck.Draw()}
	playerHand = append(playerHand, deck.Draw())
	dealerHand = append(dealerHand, deck.Draw())

	g := &Game{
		ID:          uuid.NewString(),
		PlayerID:    p.ID,
		Bet:         bet,
		PlayerHand:  playerHand,
		DealerHand:  dealerHand,
		Deck:        deck,
		PlayerScore: Score(playerHand),
		DealerScore: Score(dealerHand),
		Status:      StatusInProgress,
		CreatedAt:   time.Now().UTC(),
	}

	if IsBlackjack(playerHand) {
		if IsBlackjack(dealerHand) {
			g.complete(StatusPush, "Both have Blackjack! Push!", bet, time.Now().UTC())
			p.AddPush(bet)
		} else {
			payout := int(float64(bet) * (1 + s.rules.BlackjackPayout))
			g.complete(StatusBlackjack, "Blackjack! You win!", payout, time.Now().UTC())
			p.AddWin(payout)
		}
	}

	if err := s.games.Create(g); err != nil {
		return nil, nil, fmt.Errorf("failed to create game: %w", err)
	}
	if err := s.players.Save(p); err != nil {
		return nil, nil, fmt.Errorf("failed to save player: %w", err)
	}

	s.log.Debug().
		Str("game_id", g.ID).
		Int64("player_id", p.ID).
		Int("bet", bet).
		Str("status", string(g.Status)).
		Msg("game started")

	return g, p, nil
}

// Hit draws one card into the player hand. Going over 21 ends the game as
// a player bust with no payout.
func (s *Service) Hit(sessionID string) (*Game, *player.Player, error) {
	p, g, err := s.activeGame(sessionID)
	if err != nil {
		return nil, nil, err
	}

	g.PlayerHand = append(g.PlayerHand, g.Deck.Draw())
	g.PlayerScore = Score(g.PlayerHand)

	if IsBust(g.PlayerScore) {
		g.complete(StatusPlayerBust, "Bust! You lose!", 0, time.Now().UTC())
		p.AddLoss()
	}

	if err := s.persist(g, p); err != nil {
		return nil, nil, err
	}

	return g, p, nil
}

// Stand plays out the dealer hand and settles the bet. The dealer draws
// until reaching the stand threshold or, at the outside, emptying the deck.
func (s *Service) Stand(sessionID string) (*Game, *player.Player, error) {
	p, g, err := s.activeGame(sessionID)
	if err != nil {
		return nil, nil, err
	}

	for g.DealerScore < s.rules.DealerStandsAt && g.Deck.Remaining() > 0 {
		g.DealerHand = append(g.DealerHand, g.Deck.Draw())
		g.DealerScore = Score(g.DealerHand)
	}

	now := time.Now().UTC()
	switch {
	case IsBust(g.DealerScore):
		g.complete(StatusDealerBust, "Dealer busts! You win!", g.Bet*2, now)
		p.AddWin(g.Payout)
	case g.DealerScore > g.PlayerScore:
		g.complete(StatusDealerWin, "Dealer wins!", 0, now)
		p.AddLoss()
	case g.DealerScore < g.PlayerScore:
		g.complete(StatusPlayerWin, "You win!", g.Bet*2, now)
		p.AddWin(g.Payout)
	default:
		g.complete(StatusPush, "Push!", g.Bet, now)
		p.AddPush(g.Payout)
	}

	if err := s.persist(g, p); err != nil {
		return nil, nil, err
	}

	return g, p, nil
}

// Stats are the cumulative results for one session.
type Stats struct {
	Balance int     `json:"balance"`
	Games   int     `json:"total_games"`
	Wins    int     `json:"total_wins"`
	Losses  int     `json:"total_losses"`
	Pushes  int     `json:"total_pushes"`
	WinRate float64 `json:"win_rate"`
}

func (s *Service) Stats(sessionID string) (*Stats, error) {
	p, err := s.players.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &NotFoundError{Reason: "Player not found"}
	}

	return &Stats{
		Balance: p.Balance,
		Games:   p.Games,
		Wins:    p.Wins,
		Losses:  p.Losses,
		Pushes:  p.Pushes,
		WinRate: math.Round(p.WinRate()*100) / 100,
	}, nil
}

// ResetBalance restores the configured initial balance. Cumulative totals
// stay untouched.
func (s *Service) ResetBalance(sessionID string) (*player.Player, error) {
	p, err := s.GetOrCreatePlayer(sessionID)
	if err != nil {
		return nil, err
	}

	p.Balance = s.rules.InitialBalance
	if err := s.players.Save(p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) activeGame(sessionID string) (*player.Player, *Game, error) {
	p, err := s.GetOrCreatePlayer(sessionID)
	if err != nil {
		return nil, nil, err
	}

	g, err := s.games.ActiveForPlayer(p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active game: %w", err)
	}
	if g == nil {
		return nil, nil, &NotFoundError{Reason: "No active game"}
	}

	return p, g, nil
}

func (s *Service) persist(g *Game, p *player.Player) error {
	if err := s.games.Save(g); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	if err := s.players.Save(p); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}
