package game

import (
	"encoding/json"
	"math/rand"
)

// Deck is a shuffled 52-card deck. Draw pops from the back; an exhausted
// deck is replaced with a fresh shuffled one before drawing, so a draw
// never fails mid-hand.
type Deck struct {
	cards []Card
}

func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}
	d.Shuffle()
	return d
}

// RestoreDeck rebuilds a deck from persisted remaining cards, in order.
func RestoreDeck(cards []Card) *Deck {
	return &Deck{cards: cards}
}

func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		*d = *NewDeck()
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns the remaining cards for persistence.
func (d *Deck) Cards() []Card {
	return d.cards
}

func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.cards)
}

func (d *Deck) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.cards)
}
