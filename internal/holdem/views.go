package holdem

import (
	"github.com/lox/holdem-core/internal/betting"
	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/module"
)

// PublicSeatView is one seat as seen by the shared display: no hole cards.
type PublicSeatView struct {
	PlayerID  string
	SeatIndex int
	Stack     int
	Folded    bool
	AllIn     bool
	IsDealer  bool
	InHand    bool
}

// PublicView is projected for the shared display and carries no hidden
// information: no hole cards, no remaining deck order.
type PublicView struct {
	Phase          Phase
	HandNumber     int
	Board          []deck.Card
	Seats          []PublicSeatView
	Pots           []betting.Pot
	ActivePlayerID string
	ActionLog      []string
	Showdown       *ShowdownResult
}

// PlayerView is the public view plus the requesting seat's own hole cards
// and, while a betting round is open, that seat's legal actions.
type PlayerView struct {
	PublicView
	HoleCards        []deck.Card
	AvailableActions *betting.LegalActions
}

func publicSeats(s *State) []PublicSeatView {
	out := make([]PublicSeatView, len(s.Seats))
	for i, seat := range s.Seats {
		out[i] = PublicSeatView{
			PlayerID:  seat.PlayerID,
			SeatIndex: seat.SeatIndex,
			Stack:     seat.Stack,
			Folded:    seat.Folded,
			AllIn:     seat.AllIn,
			IsDealer:  seat.IsDealer,
			InHand:    seat.InHand,
		}
	}
	return out
}

// GetPublicView projects s for the shared display.
func GetPublicView(s *State) PublicView {
	active := ""
	if s.Betting != nil {
		active = s.Betting.ActivePlayerID()
	}
	return PublicView{
		Phase:          s.Phase,
		HandNumber:     s.HandNumber,
		Board:          append([]deck.Card(nil), s.Board...),
		Seats:          publicSeats(s),
		Pots:           append([]betting.Pot(nil), s.Pots...),
		ActivePlayerID: active,
		ActionLog:      append([]string(nil), s.ActionLog...),
		Showdown:       s.Showdown,
	}
}

// GetPlayerView projects s for one seated player, adding that seat's hole
// cards and legal-action set.
func GetPlayerView(s *State, playerID string) PlayerView {
	pv := PlayerView{PublicView: GetPublicView(s)}
	if seat := s.seatByID(playerID); seat != nil {
		pv.HoleCards = append([]deck.Card(nil), seat.HoleCards...)
	}
	if s.Betting != nil && !s.Betting.RoundClosed() {
		la := s.Betting.LegalActions(playerID)
		pv.AvailableActions = &la
	}
	return pv
}

// CreateInitialState seats players into a fresh lobby-phase table.
func CreateInitialState(players []module.PlayerInit, opts Options) (*State, error) {
	if len(players) < 2 {
		return nil, module.NewError(module.ErrInsufficientPlayers, "a table requires at least 2 seats")
	}
	if len(players) > 6 {
		return nil, module.NewError(module.ErrIllegalAction, "a table supports at most 6 seats")
	}
	opts = opts.normalize()

	seats := make([]Seat, len(players))
	for i, p := range players {
		stack := p.Stack
		if stack <= 0 {
			stack = opts.InitialStack
		}
		seats[i] = Seat{PlayerID: p.ID, SeatIndex: i, Stack: stack}
	}

	return &State{
		Phase:           PhaseLobby,
		Options:         opts,
		Seats:           seats,
		DealerSeatIndex: -1,
		SmallBlind:      opts.SmallBlind,
		BigBlind:        opts.BigBlind,
		Contributions:   map[string]int{},
	}, nil
}

// IsGameOver reports whether the table has at most one seat left with a
// positive stack — the game can no longer deal a new hand.
func IsGameOver(s *State) bool {
	return s.positiveStackSeatCount() <= 1
}

// GetResult returns the current hand's showdown result once it has been
// computed (from showdown through hand_end). It is cleared when the next
// hand starts, so it reports false while that hand is in progress.
func GetResult(s *State) (*ShowdownResult, bool) {
	if s.Showdown == nil {
		return nil, false
	}
	return s.Showdown, true
}
