package game

import "blackjack/internal/player"

// View is the client-facing shape of a game. While the game is open the
// dealer's hole card is masked and the exposed dealer score covers only
// the visible card.
type View struct {
	PlayerHand  []Card `json:"playerHand"`
	DealerHand  []Card `json:"dealerHand"`
	PlayerScore int    `json:"playerScore"`
	DealerScore int    `json:"dealerScore"`
	Balance     int    `json:"balance"`
	Bet         int    `json:"bet"`
	GameOver    bool   `json:"gameOver"`
	Message     string `json:"message"`
}

func NewView(g *Game, p *player.Player) View {
	v := View{
		PlayerHand:  g.PlayerHand,
		DealerHand:  g.DealerHand,
		PlayerScore: g.PlayerScore,
		DealerScore: g.DealerScore,
		Balance:     p.Balance,
		Bet:         g.Bet,
		GameOver:    g.Status.Terminal(),
		Message:     g.Message,
	}

	if g.Status == StatusInProgress {
		v.DealerHand = []Card{g.DealerHand[0], HiddenCard}
		v.DealerScore = g.DealerHand[0].Value()
	}

	return v
}
