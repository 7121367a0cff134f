package holdem

import (
	"fmt"

	"github.com/lox/holdem-core/internal/betting"
	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/module"
)

// nextPositiveStackSeat finds the seat index after from (cyclic over the
// table's fixed seat list) with a positive stack. from=-1 starts the search
// at seat 0, which is what gives hand 1 its dealer.
func nextPositiveStackSeat(seats []Seat, from int) int {
	n := len(seats)
	for step := 1; step <= n; step++ {
		idx := (from + step) % n
		if idx < 0 {
			idx += n
		}
		if seats[idx].Stack > 0 {
			return idx
		}
	}
	return -1
}

// rotationFromDealer lists, in turn order starting right after dealerIdx,
// every seat satisfying filter. Because the scan wraps all the way around
// the table, if the dealer itself satisfies filter it appears last.
func rotationFromDealer(seats []Seat, dealerIdx int, filter func(Seat) bool) []int {
	n := len(seats)
	var out []int
	for step := 1; step <= n; step++ {
		idx := (dealerIdx + step) % n
		if filter(seats[idx]) {
			out = append(out, idx)
		}
	}
	return out
}

func inHandPositiveStack(s Seat) bool { return s.InHand && s.Stack > 0 }
func liveSeat(s Seat) bool            { return s.InHand && !s.Folded && s.Stack > 0 }
func stillInHand(s Seat) bool         { return s.InHand && !s.Folded }

// applyStartHand deals a new hand: dealer rotation, flag reset, shuffle (or
// test deck), hole cards, and preflop blinds/first-actor setup.
func applyStartHand(s *State) (*State, error) {
	if s.Phase != PhaseLobby && s.Phase != PhaseHandEnd {
		return nil, module.NewError(module.ErrWrongPhase, "START_HAND requires the lobby or hand_end phase")
	}
	if s.positiveStackSeatCount() < 2 {
		return nil, module.NewError(module.ErrInsufficientPlayers, "at least 2 seats with a positive stack are required")
	}

	ns := s.clone()
	ns.HandNumber++
	dealerIdx := nextPositiveStackSeat(ns.Seats, ns.DealerSeatIndex)
	ns.DealerSeatIndex = dealerIdx

	for i := range ns.Seats {
		ns.Seats[i].Folded = false
		ns.Seats[i].AllIn = false
		ns.Seats[i].InHand = ns.Seats[i].Stack > 0
		ns.Seats[i].IsDealer = i == dealerIdx
		ns.Seats[i].HoleCards = nil
	}

	rng := deck.NewLCG(ns.Options.Seed + int64(ns.HandNumber))
	var d *deck.Deck
	if len(ns.Options.TestDeck) > 0 {
		d = deck.NewPreset(ns.Options.TestDeck)
		ns.UsingTestDeck = true
	} else {
		d = deck.New()
		d.Shuffle(rng)
		ns.UsingTestDeck = false
	}

	for pass := 0; pass < 2; pass++ {
		for i := range ns.Seats {
			if !ns.Seats[i].InHand {
				continue
			}
			c, ok := d.Draw()
			if ok {
				ns.Seats[i].HoleCards = append(ns.Seats[i].HoleCards, c)
			}
		}
	}

	ns.Deck = d
	ns.Board = nil
	ns.Contributions = map[string]int{}
	ns.Pots = nil
	ns.Showdown = nil
	ns.Phase = PhasePreflop
	ns.ActionLog = append(ns.ActionLog, fmt.Sprintf("hand %d: dealer is seat %d", ns.HandNumber, dealerIdx))

	setupPreflopBetting(ns)
	return ns, nil
}

// setupPreflopBetting posts blinds and opens the preflop betting round,
// branching explicitly for heads-up (dealer posts small blind and acts
// first) rather than relying on the general rotation degenerating correctly.
func setupPreflopBetting(ns *State) {
	rotation := rotationFromDealer(ns.Seats, ns.DealerSeatIndex, inHandPositiveStack)
	m := len(rotation)

	var sbIdx, bbIdx, firstIdx int
	if m == 2 {
		sbIdx = ns.DealerSeatIndex
		bbIdx = rotation[0]
		firstIdx = ns.DealerSeatIndex
	} else {
		sbIdx = rotation[0]
		bbIdx = rotation[1]
		firstIdx = rotation[2]
	}

	sbID := ns.Seats[sbIdx].PlayerID
	bbID := ns.Seats[bbIdx].PlayerID

	forced := []betting.ForcedBet{
		{PlayerID: sbID, Amount: ns.SmallBlind},
		{PlayerID: bbID, Amount: ns.BigBlind},
	}
	ns.Contributions[sbID] += min(ns.SmallBlind, ns.Seats[sbIdx].Stack)
	ns.Contributions[bbID] += min(ns.BigBlind, ns.Seats[bbIdx].Stack)

	ns.Betting = betting.NewRound(buildRoundSeatInputs(ns), forced, ns.Seats[firstIdx].PlayerID, ns.BigBlind)
	syncSeatsFromRound(ns)
	rebuildPots(ns)
}

// setupPostflopBetting opens a fresh betting round for flop/turn/river: no
// forced bets, first-to-act is the first live seat after the dealer.
func setupPostflopBetting(ns *State) {
	rotation := rotationFromDealer(ns.Seats, ns.DealerSeatIndex, liveSeat)
	firstID := ""
	if len(rotation) > 0 {
		firstID = ns.Seats[rotation[0]].PlayerID
	}
	ns.Betting = betting.NewRound(buildRoundSeatInputs(ns), nil, firstID, ns.BigBlind)
	syncSeatsFromRound(ns)
	rebuildPots(ns)
}

// buildRoundSeatInputs lists every seat still in the hand (folded seats are
// permanently done and excluded) in turn-rotation order starting right
// after the dealer — the order the betting engine steps through on advance.
func buildRoundSeatInputs(ns *State) []betting.SeatInput {
	rotation := rotationFromDealer(ns.Seats, ns.DealerSeatIndex, stillInHand)
	out := make([]betting.SeatInput, 0, len(rotation))
	for _, idx := range rotation {
		out = append(out, betting.SeatInput{PlayerID: ns.Seats[idx].PlayerID, Stack: ns.Seats[idx].Stack})
	}
	return out
}

// syncSeatsFromRound copies each round seat's live stack/folded/all-in state
// back onto the hand-wide Seat, which is what persists across streets.
func syncSeatsFromRound(ns *State) {
	if ns.Betting == nil {
		return
	}
	for _, rs := range ns.Betting.Seats() {
		seat := ns.seatByID(rs.PlayerID)
		if seat == nil {
			continue
		}
		seat.Stack = rs.Stack
		seat.Folded = seat.Folded || rs.Folded
		seat.AllIn = seat.AllIn || rs.AllIn
	}
}

func rebuildPots(ns *State) {
	order := make([]string, 0, len(ns.Seats))
	folded := make(map[string]bool, len(ns.Seats))
	for _, seat := range ns.Seats {
		if !seat.InHand {
			continue
		}
		order = append(order, seat.PlayerID)
		folded[seat.PlayerID] = seat.Folded
	}
	ns.Pots = betting.BuildPots(order, ns.Contributions, folded)
}

func dealBoard(ns *State, n int) {
	ns.Board = append(ns.Board, ns.Deck.DealN(n)...)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
