package game

import "encoding/json"

type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankValues = map[Rank]int{
	Ace: 11,
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6,
	Seven: 7, Eight: 8, Nine: 9, Ten: 10,
	Jack: 10, Queen: 10, King: 10,
}

// Card is an immutable card value identified by suit and rank.
type Card struct {
	Suit Suit
	Rank Rank
}

// HiddenCard stands in for the dealer's hole card while a hand is open.
var HiddenCard = Card{Suit: "?", Rank: "?"}

// Value returns the base value of the card: aces 11, faces 10,
// number cards their face value. The hidden sentinel is worth 0.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

func (c Card) IsAce() bool {
	return c.Rank == Ace
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// cardJSON is the structural encoding used both for persistence and for API
// responses. Value is derived from the rank and carried for clients only.
type cardJSON struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Suit:  string(c.Suit),
		Rank:  string(c.Rank),
		Value: c.Value(),
	})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Suit = Suit(raw.Suit)
	c.Rank = Rank(raw.Rank)
	return nil
}
