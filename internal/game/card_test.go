package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card  Card
		value int
	}{
		{Card{Hearts, Ace}, 11},
		{Card{Spades, Two}, 2},
		{Card{Diamonds, Nine}, 9},
		{Card{Clubs, Ten}, 10},
		{Card{Spades, Jack}, 10},
		{Card{Hearts, Queen}, 10},
		{Card{Diamonds, King}, 10},
		{HiddenCard, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.value, tt.card.Value(), "card %s", tt.card)
	}
}

func TestCardIsAce(t *testing.T) {
	t.Parallel()

	assert.True(t, Card{Spades, Ace}.IsAce())
	assert.False(t, Card{Spades, King}.IsAce())
	assert.False(t, HiddenCard.IsAce())
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", Card{Spades, Ace}.String())
	assert.Equal(t, "10♥", Card{Hearts, Ten}.String())
}

func TestCardJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := Card{Diamonds, Queen}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"♦","rank":"Q","value":10}`, string(data))

	var decoded Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestHiddenCardJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HiddenCard)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"?","rank":"?","value":0}`, string(data))
}
