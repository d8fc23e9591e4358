package game

// Score computes the best value of a hand. Non-ace cards contribute their
// base value; each ace then counts 11 when that keeps the total at or below
// 21, otherwise 1. Aces are interchangeable, so taking 11 greedily while
// safe always yields the best total.
func Score(hand []Card) int {
	score := 0
	aces := 0

	for _, card := range hand {
		if card.IsAce() {
			aces++
		} else {
			score += card.Value()
		}
	}

	for i := 0; i < aces; i++ {
		if score+11 <= 21 {
			score += 11
		} else {
			score++
		}
	}

	return score
}

func IsBust(score int) bool {
	return score > 21
}

// IsBlackjack reports whether a hand is a natural: exactly two cards
// totaling 21. A 21 reached with three or more cards is not a blackjack.
func IsBlackjack(hand []Card) bool {
	return len(hand) == 2 && Score(hand) == 21
}
