package deck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKhQd")
	require.NoError(t, err)
	require.Equal(t, []Card{
		{Rank: Ace, Suit: Spades},
		{Rank: King, Suit: Hearts},
		{Rank: Queen, Suit: Diamonds},
	}, cards)
}

func TestParseCardsErrors(t *testing.T) {
	_, err := ParseCards("As K")
	require.Error(t, err)
	_, err = ParseCards("XsKs")
	require.Error(t, err)
	_, err = ParseCards("AsKx")
	require.Error(t, err)
}

func TestCardString(t *testing.T) {
	require.Equal(t, "Ts", Card{Rank: Ten, Suit: Spades}.String())
	require.Equal(t, "2c", Card{Rank: Two, Suit: Clubs}.String())
}
