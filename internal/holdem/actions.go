package holdem

import (
	"fmt"

	"github.com/lox/holdem-core/internal/betting"
	"github.com/lox/holdem-core/internal/module"
)

// ApplyAction translates one uniform module.Action onto either a meta
// transition (START_HAND, ADVANCE_PHASE) or the betting engine, and returns
// the resulting new State. s is never mutated; on error the caller's s is
// still the current state.
func ApplyAction(s *State, playerID string, action module.Action) (*State, error) {
	switch action.Type {
	case module.ActionStartHand:
		return applyStartHand(s)
	case module.ActionAdvancePhase:
		return applyAdvancePhase(s)
	case module.ActionFold:
		return applyBettingAction(s, playerID, betting.Fold, 0)
	case module.ActionCheck:
		return applyBettingAction(s, playerID, betting.Check, 0)
	case module.ActionCall:
		return applyBettingAction(s, playerID, betting.Call, 0)
	case module.ActionBet:
		if action.Amount <= 0 {
			return nil, module.NewError(module.ErrInvalidAmount, "bet amount must be a positive integer")
		}
		return applyBettingAction(s, playerID, betting.Bet, action.Amount)
	case module.ActionRaise:
		if action.Amount <= 0 {
			return nil, module.NewError(module.ErrInvalidAmount, "raise amount must be a positive integer")
		}
		return applyBettingAction(s, playerID, betting.Raise, action.Amount)
	case module.ActionAllIn:
		return applyBettingAction(s, playerID, betting.AllIn, 0)
	default:
		return nil, module.NewError(module.ErrUnknownAction, fmt.Sprintf("unrecognized action type %q", action.Type))
	}
}

// applyBettingAction drives one wagering action through the betting engine,
// then folds the resulting per-seat delta into the hand-wide cumulative
// contribution and rebuilds the authoritative pots from it.
func applyBettingAction(s *State, playerID string, act betting.Action, amount int) (*State, error) {
	if s.Betting == nil {
		return nil, module.NewError(module.ErrWrongPhase, "no betting round is open")
	}
	beforeSeat, existed := s.Betting.Seat(playerID)

	ns := s.clone()
	if err := ns.Betting.Act(playerID, act, amount); err != nil {
		return nil, err
	}

	afterSeat, _ := ns.Betting.Seat(playerID)
	delta := afterSeat.RoundContribution
	if existed {
		delta -= beforeSeat.RoundContribution
	}
	if delta > 0 {
		ns.Contributions[playerID] += delta
	}

	syncSeatsFromRound(ns)
	rebuildPots(ns)
	if entries := ns.Betting.ActionLog(); len(entries) > 0 {
		ns.ActionLog = append(ns.ActionLog, entries[len(entries)-1])
	}
	return ns, nil
}

// applyAdvancePhase moves the hand to its next phase. During an open street
// it requires the current betting round to be closed, and short-circuits
// straight to showdown whenever at most one seat is still in the hand. From
// showdown it needs no open round — it simply releases the hand to hand_end.
func applyAdvancePhase(s *State) (*State, error) {
	switch s.Phase {
	case PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver:
		if s.Betting == nil || !s.Betting.RoundClosed() {
			return nil, module.NewError(module.ErrWrongPhase, "ADVANCE_PHASE requires the betting round to be closed")
		}
	case PhaseShowdown:
	default:
		return nil, module.NewError(module.ErrWrongPhase, "ADVANCE_PHASE is only valid during an open street or at showdown")
	}

	ns := s.clone()

	if ns.Phase == PhaseShowdown {
		ns.Phase = PhaseHandEnd
		return ns, nil
	}

	if ns.nonFoldedCount() <= 1 || ns.Phase == PhaseRiver {
		computeShowdown(ns)
		ns.Phase = PhaseShowdown
		ns.Betting = nil
		return ns, nil
	}

	switch ns.Phase {
	case PhasePreflop:
		dealBoard(ns, 3)
		ns.Phase = PhaseFlop
	case PhaseFlop:
		dealBoard(ns, 1)
		ns.Phase = PhaseTurn
	case PhaseTurn:
		dealBoard(ns, 1)
		ns.Phase = PhaseRiver
	}
	setupPostflopBetting(ns)
	return ns, nil
}
