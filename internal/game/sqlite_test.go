package game_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackjack/internal/database"
	"blackjack/internal/game"
	"blackjack/internal/player"
)

func newTestRepos(t *testing.T) (*game.SQLiteRepository, *player.SQLiteRepository) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return game.NewRepository(db.DB), player.NewRepository(db.DB)
}

func testGame(playerID int64, id string) *game.Game {
	return &game.Game{
		ID:       id,
		PlayerID: playerID,
		Bet:      10,
		PlayerHand: []game.Card{
			{Suit: game.Spades, Rank: game.Ten},
			{Suit: game.Hearts, Rank: game.Six},
		},
		DealerHand: []game.Card{
			{Suit: game.Diamonds, Rank: game.Nine},
			{Suit: game.Clubs, Rank: game.Five},
		},
		Deck: game.RestoreDeck([]game.Card{
			{Suit: game.Spades, Rank: game.Two},
			{Suit: game.Hearts, Rank: game.King},
		}),
		PlayerScore: 16,
		DealerScore: 14,
		Status:      game.StatusInProgress,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestGameRoundTrip(t *testing.T) {
	games, players := newTestRepos(t)

	p, err := players.GetOrCreate("sess-1", 100)
	require.NoError(t, err)

	original := testGame(p.ID, "game-1")
	require.NoError(t, games.Create(original))

	loaded, err := games.ActiveForPlayer(p.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Bet, loaded.Bet)
	assert.Equal(t, original.PlayerHand, loaded.PlayerHand)
	assert.Equal(t, original.DealerHand, loaded.DealerHand)
	assert.Equal(t, original.Deck.Cards(), loaded.Deck.Cards(), "deck order preserved")
	assert.Equal(t, original.PlayerScore, loaded.PlayerScore)
	assert.Equal(t, game.StatusInProgress, loaded.Status)
	assert.Nil(t, loaded.CompletedAt)
}

func TestActiveForPlayerIgnoresFinishedGames(t *testing.T) {
	games, players := newTestRepos(t)

	p, err := players.GetOrCreate("sess-1", 100)
	require.NoError(t, err)

	g := testGame(p.ID, "game-1")
	require.NoError(t, games.Create(g))

	now := time.Now().UTC()
	g.Status = game.StatusPlayerWin
	g.Payout = 20
	g.Message = "You win!"
	g.CompletedAt = &now
	require.NoError(t, games.Save(g))

	active, err := games.ActiveForPlayer(p.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCreateRejectsSecondActiveGame(t *testing.T) {
	games, players := newTestRepos(t)

	p, err := players.GetOrCreate("sess-1", 100)
	require.NoError(t, err)

	require.NoError(t, games.Create(testGame(p.ID, "game-1")))

	// The partial unique index keeps a second open game out even if the
	// service-level check is raced past.
	err = games.Create(testGame(p.ID, "game-2"))
	assert.Error(t, err)
}

func TestCountActive(t *testing.T) {
	games, players := newTestRepos(t)

	p1, err := players.GetOrCreate("sess-1", 100)
	require.NoError(t, err)
	p2, err := players.GetOrCreate("sess-2", 100)
	require.NoError(t, err)

	require.NoError(t, games.Create(testGame(p1.ID, "game-1")))
	require.NoError(t, games.Create(testGame(p2.ID, "game-2")))

	n, err := games.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
