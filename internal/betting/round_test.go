package betting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-core/internal/module"
)

func newHeadsUpPreflop(t *testing.T) *Round {
	t.Helper()
	seats := []SeatInput{{PlayerID: "btn", Stack: 1000}, {PlayerID: "bb", Stack: 1000}}
	forced := []ForcedBet{{PlayerID: "btn", Amount: 5}, {PlayerID: "bb", Amount: 10}}
	return NewRound(seats, forced, "btn", 10)
}

func TestHeadsUpButtonActsFirstPreflop(t *testing.T) {
	r := newHeadsUpPreflop(t)
	require.Equal(t, "btn", r.ActivePlayerID())
	require.Equal(t, 10, r.CurrentBet())
}

func TestCheckFacingBetIsIllegal(t *testing.T) {
	r := newHeadsUpPreflop(t)
	err := r.Act("btn", Check, 0)
	require.Error(t, err)
	require.Equal(t, module.ErrIllegalAction, module.KindOf(err))
	require.Contains(t, err.Error(), "Cannot check")
}

func TestBBGetsOptionAfterLimp(t *testing.T) {
	r := newHeadsUpPreflop(t)
	require.NoError(t, r.Act("btn", Call, 0))
	require.Equal(t, "bb", r.ActivePlayerID())
	require.False(t, r.RoundClosed())

	require.NoError(t, r.Act("bb", Check, 0))
	require.True(t, r.RoundClosed())
	require.Equal(t, "", r.ActivePlayerID())
}

func TestUnderMinAllInOverBlindsClosesAfterCalls(t *testing.T) {
	seats := []SeatInput{
		{PlayerID: "a", Stack: 1000},
		{PlayerID: "b", Stack: 1000},
		{PlayerID: "c", Stack: 15},
	}
	forced := []ForcedBet{{PlayerID: "a", Amount: 5}, {PlayerID: "b", Amount: 10}}
	r := NewRound(seats, forced, "c", 10)

	// c can only go 15 total, a short all-in raise that doesn't meet the
	// full 10-chip increment (current bet 10 -> 15 is only +5).
	require.NoError(t, r.Act("c", AllIn, 0))
	require.Equal(t, 15, r.CurrentBet())
	require.Equal(t, "a", r.ActivePlayerID())

	require.NoError(t, r.Act("a", Call, 0))
	require.NoError(t, r.Act("b", Call, 0))
	require.True(t, r.RoundClosed())
}

func TestUnderMinAllInBlocksReraiseForActedCaller(t *testing.T) {
	seats := []SeatInput{
		{PlayerID: "a", Stack: 1000},
		{PlayerID: "b", Stack: 1000},
		{PlayerID: "c", Stack: 140},
	}
	r := NewRound(seats, nil, "a", 10)

	require.NoError(t, r.Act("a", Bet, 100))
	require.NoError(t, r.Act("b", Call, 0))

	// c's all-in only raises the bet by 40, short of the 100-chip increment
	// a's bet established — it reopens nothing.
	require.NoError(t, r.Act("c", AllIn, 0))
	require.Equal(t, 140, r.CurrentBet())
	require.Equal(t, "a", r.ActivePlayerID())

	la := r.LegalActions("a")
	require.False(t, la.CanRaise)
	err := r.Act("a", Raise, 240)
	require.Error(t, err)
	require.Equal(t, module.ErrIllegalAction, module.KindOf(err))
	require.NoError(t, r.Act("a", Call, 0))

	la = r.LegalActions("b")
	require.False(t, la.CanRaise)
	err = r.Act("b", Raise, 240)
	require.Error(t, err)
	require.Equal(t, module.ErrIllegalAction, module.KindOf(err))
	require.NoError(t, r.Act("b", Call, 0))

	require.True(t, r.RoundClosed())
}

func TestFullRaiseReopensAction(t *testing.T) {
	seats := []SeatInput{{PlayerID: "a", Stack: 1000}, {PlayerID: "b", Stack: 1000}, {PlayerID: "c", Stack: 1000}}
	r := NewRound(seats, nil, "a", 10)

	require.NoError(t, r.Act("a", Bet, 20))
	require.NoError(t, r.Act("b", Raise, 50))
	require.NoError(t, r.Act("c", Fold, 0))
	require.Equal(t, "a", r.ActivePlayerID())
	require.False(t, r.RoundClosed())
}

func TestNotYourTurn(t *testing.T) {
	r := newHeadsUpPreflop(t)
	err := r.Act("bb", Call, 0)
	require.Equal(t, module.ErrNotYourTurn, module.KindOf(err))
}

func TestRoundClosesWhenOneSeatRemains(t *testing.T) {
	seats := []SeatInput{{PlayerID: "a", Stack: 1000}, {PlayerID: "b", Stack: 1000}}
	r := NewRound(seats, nil, "a", 10)
	require.NoError(t, r.Act("a", Bet, 20))
	require.NoError(t, r.Act("b", Fold, 0))
	require.True(t, r.RoundClosed())
}
