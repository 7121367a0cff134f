// Package holdem implements the No-Limit Hold'em phase machine: dealing,
// board progression, action translation onto the betting engine, showdown,
// and view projection. It is the strongly-typed core that this package's
// Adapter wraps to satisfy internal/module's language-neutral GameModule
// contract.
package holdem

import (
	"github.com/lox/holdem-core/internal/betting"
	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/evaluator"
)

// Phase is a stage in a hand's lifecycle.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseHandStart Phase = "hand_start"
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
	PhaseHandEnd  Phase = "hand_end"
)

// Seat is one player's seat for the lifetime of the table, plus the flags
// that reset every hand.
type Seat struct {
	PlayerID  string
	SeatIndex int
	Stack     int
	Folded    bool
	AllIn     bool
	IsDealer  bool
	InHand    bool
	HoleCards []deck.Card
}

// ShowdownResult is the outcome of a completed hand.
type ShowdownResult struct {
	Winners []string
	Awarded map[string]int
	Scores  map[string]evaluator.HandScore
	Summary string
}

// State is the full authoritative state of one table's current hand. It is
// never mutated in place by ApplyAction — every successful call returns a
// new *State; the caller's old reference stays valid and unchanged.
type State struct {
	Phase           Phase
	Options         Options
	HandNumber      int
	Seats           []Seat
	Deck            *deck.Deck
	Board           []deck.Card
	DealerSeatIndex int
	SmallBlind      int
	BigBlind        int
	Betting         *betting.Round
	Contributions   map[string]int
	Pots            []betting.Pot
	ActionLog       []string
	Showdown        *ShowdownResult
	UsingTestDeck   bool
}

func (s *State) seatIndexOf(playerID string) int {
	for i := range s.Seats {
		if s.Seats[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (s *State) seatByID(playerID string) *Seat {
	idx := s.seatIndexOf(playerID)
	if idx < 0 {
		return nil
	}
	return &s.Seats[idx]
}

// clone returns a deep copy so in-flight mutation during ApplyAction never
// touches the State a caller already holds.
func (s *State) clone() *State {
	ns := *s
	ns.Seats = make([]Seat, len(s.Seats))
	for i, seat := range s.Seats {
		ns.Seats[i] = seat
		ns.Seats[i].HoleCards = append([]deck.Card(nil), seat.HoleCards...)
	}
	ns.Board = append([]deck.Card(nil), s.Board...)
	ns.ActionLog = append([]string(nil), s.ActionLog...)
	ns.Contributions = make(map[string]int, len(s.Contributions))
	for k, v := range s.Contributions {
		ns.Contributions[k] = v
	}
	ns.Pots = append([]betting.Pot(nil), s.Pots...)
	if s.Deck != nil {
		cards := append([]deck.Card(nil), s.Deck.Cards()...)
		ns.Deck = deck.NewPreset(cards)
	}
	if s.Betting != nil {
		ns.Betting = s.Betting.Clone()
	}
	if s.Showdown != nil {
		sd := *s.Showdown
		ns.Showdown = &sd
	}
	return &ns
}

// nonFoldedCount returns how many in-hand seats have not folded.
func (s *State) nonFoldedCount() int {
	n := 0
	for _, seat := range s.Seats {
		if seat.InHand && !seat.Folded {
			n++
		}
	}
	return n
}

func (s *State) positiveStackSeatCount() int {
	n := 0
	for _, seat := range s.Seats {
		if seat.Stack > 0 {
			n++
		}
	}
	return n
}
