package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/module"
)

func startHand(t *testing.T, s *State) *State {
	t.Helper()
	ns, err := ApplyAction(s, "", module.Action{Type: module.ActionStartHand})
	require.NoError(t, err)
	return ns
}

func TestDealSizes(t *testing.T) {
	s, err := CreateInitialState([]module.PlayerInit{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, Options{Seed: 42})
	require.NoError(t, err)

	s = startHand(t, s)
	require.Equal(t, PhasePreflop, s.Phase)
	for _, seat := range s.Seats {
		require.Len(t, seat.HoleCards, 2)
	}
	require.Equal(t, 46, s.Deck.Remaining())
}

func TestHeadsUpProgressesToFlop(t *testing.T) {
	s, err := CreateInitialState([]module.PlayerInit{{ID: "p1"}, {ID: "p2"}}, Options{Seed: 7, SmallBlind: 5, BigBlind: 10})
	require.NoError(t, err)
	s = startHand(t, s)

	require.Equal(t, "p1", s.Betting.ActivePlayerID())
	s, err = ApplyAction(s, "p1", module.Action{Type: module.ActionCall})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)
	require.True(t, s.Betting.RoundClosed())

	s, err = ApplyAction(s, "", module.Action{Type: module.ActionAdvancePhase})
	require.NoError(t, err)
	require.Equal(t, PhaseFlop, s.Phase)
	require.Len(t, s.Board, 3)
}

func TestIllegalCheckFacingBet(t *testing.T) {
	s, err := CreateInitialState([]module.PlayerInit{{ID: "p1"}, {ID: "p2"}}, Options{Seed: 7, SmallBlind: 5, BigBlind: 10})
	require.NoError(t, err)
	s = startHand(t, s)

	_, err = ApplyAction(s, "p1", module.Action{Type: module.ActionCheck})
	require.Error(t, err)
	require.Equal(t, module.ErrIllegalAction, module.KindOf(err))
	require.Contains(t, err.Error(), "Cannot check")
}

func TestHeadsUpShowdownAwardsBetterHand(t *testing.T) {
	testDeck := deck.MustParseCards("AcKhAh2dAd4sTc2h9s")
	// p1 is dealt Ac,Ah; with the Ad on board that's trip aces. p2's Kh,2d
	// only pairs its 2d with the board's 2h.
	s, err := CreateInitialState([]module.PlayerInit{{ID: "p1"}, {ID: "p2"}},
		Options{Seed: 7, SmallBlind: 5, BigBlind: 10, TestDeck: testDeck})
	require.NoError(t, err)
	s = startHand(t, s)

	advance := func(st *State) *State {
		ns, err := ApplyAction(st, "", module.Action{Type: module.ActionAdvancePhase})
		require.NoError(t, err)
		return ns
	}
	checkBoth := func(st *State, first, second string) *State {
		ns, err := ApplyAction(st, first, module.Action{Type: module.ActionCheck})
		require.NoError(t, err)
		ns, err = ApplyAction(ns, second, module.Action{Type: module.ActionCheck})
		require.NoError(t, err)
		return ns
	}

	s, err = ApplyAction(s, "p1", module.Action{Type: module.ActionCall})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)
	s = advance(s)
	require.Equal(t, PhaseFlop, s.Phase)

	s = checkBoth(s, "p2", "p1")
	s = advance(s)
	require.Equal(t, PhaseTurn, s.Phase)

	s = checkBoth(s, "p2", "p1")
	s = advance(s)
	require.Equal(t, PhaseRiver, s.Phase)

	s = checkBoth(s, "p2", "p1")
	s = advance(s)

	require.Equal(t, PhaseShowdown, s.Phase)
	require.NotNil(t, s.Showdown)
	require.Equal(t, []string{"p1"}, s.Showdown.Winners)

	s = advance(s)
	require.Equal(t, PhaseHandEnd, s.Phase)
	p1 := s.seatByID("p1")
	p2 := s.seatByID("p2")
	require.Greater(t, p1.Stack, p2.Stack)
	require.Equal(t, 2000, p1.Stack+p2.Stack)
}

func TestThreeWaySidePots(t *testing.T) {
	testDeck := deck.MustParseCards("Ah2cKhAc3cKcAd7h2h9sTd")
	s, err := CreateInitialState([]module.PlayerInit{
		{ID: "p1", Stack: 20},
		{ID: "p2", Stack: 60},
		{ID: "p3", Stack: 100},
	}, Options{Seed: 1, SmallBlind: 5, BigBlind: 10, TestDeck: testDeck})
	require.NoError(t, err)
	s = startHand(t, s)
	require.Equal(t, "p1", s.Betting.ActivePlayerID())

	s, err = ApplyAction(s, "p1", module.Action{Type: module.ActionAllIn})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionCall})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p3", module.Action{Type: module.ActionCall})
	require.NoError(t, err)
	require.True(t, s.Betting.RoundClosed())

	advance := func(st *State) *State {
		ns, err := ApplyAction(st, "", module.Action{Type: module.ActionAdvancePhase})
		require.NoError(t, err)
		return ns
	}

	s = advance(s)
	require.Equal(t, PhaseFlop, s.Phase)
	require.Equal(t, "p2", s.Betting.ActivePlayerID())

	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionBet, Amount: 20})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p3", module.Action{Type: module.ActionCall})
	require.NoError(t, err)
	require.True(t, s.Betting.RoundClosed())

	s = advance(s)
	require.Equal(t, PhaseTurn, s.Phase)
	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p3", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)

	s = advance(s)
	require.Equal(t, PhaseRiver, s.Phase)
	s, err = ApplyAction(s, "p2", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)
	s, err = ApplyAction(s, "p3", module.Action{Type: module.ActionCheck})
	require.NoError(t, err)

	s = advance(s)
	require.Equal(t, PhaseShowdown, s.Phase)
	require.GreaterOrEqual(t, len(s.Pots), 2)

	s = advance(s)
	require.Equal(t, PhaseHandEnd, s.Phase)

	p1 := s.seatByID("p1")
	p2 := s.seatByID("p2")
	p3 := s.seatByID("p3")
	require.Greater(t, p1.Stack, 20)
	require.Equal(t, 180, p1.Stack+p2.Stack+p3.Stack)
	require.Contains(t, s.Showdown.Winners, "p1")
	require.Contains(t, s.Showdown.Winners, "p3")
}
