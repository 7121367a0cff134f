package betting

import (
	"fmt"

	"github.com/lox/holdem-core/internal/module"
)

// Round is one betting round (a single street). It is created fresh at the
// start of every phase and discarded once it closes and the board advances —
// nothing here persists across rounds; the Hold'em module owns that.
type Round struct {
	order             []string
	seats             map[string]*SeatState
	currentBet        int
	minOpenBet        int
	minRaiseIncrement int
	activePlayerID    string
	roundClosed       bool
	actionLog         []string
}

// NewRound creates a round. seats gives the turn-rotation order starting
// from first-to-act; forced bets are applied in listed order, each capped at
// the posting seat's stack. firstToActPlayerID is used verbatim if that seat
// still needs to act; otherwise the first seat in order that needs action is
// used (this is what makes an all-forced-in heads-up round close instantly).
func NewRound(seats []SeatInput, forced []ForcedBet, firstToActPlayerID string, minOpenBet int) *Round {
	r := &Round{
		seats:      make(map[string]*SeatState, len(seats)),
		minOpenBet: minOpenBet,
	}
	for _, s := range seats {
		r.order = append(r.order, s.PlayerID)
		r.seats[s.PlayerID] = &SeatState{PlayerID: s.PlayerID, Stack: s.Stack, MayRaise: true}
	}

	for _, fb := range forced {
		st := r.seats[fb.PlayerID]
		if st == nil {
			continue
		}
		amt := fb.Amount
		if amt > st.Stack {
			amt = st.Stack
		}
		st.Stack -= amt
		st.RoundContribution += amt
		st.TotalContribution += amt
		if st.Stack == 0 {
			st.AllIn = true
		}
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s posts %d", fb.PlayerID, amt))
	}

	cb := 0
	for _, st := range r.seats {
		if st.RoundContribution > cb {
			cb = st.RoundContribution
		}
	}
	r.currentBet = cb
	r.minRaiseIncrement = max(minOpenBet, cb)

	if firstToActPlayerID != "" && r.needsAction(firstToActPlayerID) {
		r.activePlayerID = firstToActPlayerID
	} else {
		r.activePlayerID = r.firstNeedingAction()
	}
	r.maybeCloseAtInit()
	return r
}

// maybeCloseAtInit closes the round immediately if it was born already
// settled: at most one live (non-folded) seat, or nobody left who still
// needs to act (e.g. every remaining seat posted all-in as a forced bet).
func (r *Round) maybeCloseAtInit() {
	nonFolded := 0
	for _, id := range r.order {
		if !r.seats[id].Folded {
			nonFolded++
		}
	}
	liveCount := 0
	for _, id := range r.order {
		if r.needsAction(id) {
			liveCount++
		}
	}
	if nonFolded <= 1 || liveCount == 0 || r.activePlayerID == "" {
		r.close()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// needsAction reports whether seat id must still act before the round can
// close: not folded, not all-in, has chips, and either behind the current
// bet or hasn't acted this round yet.
func (r *Round) needsAction(id string) bool {
	st := r.seats[id]
	if st == nil || st.Folded || st.AllIn || st.Stack <= 0 {
		return false
	}
	return st.RoundContribution < r.currentBet || !st.HasActed
}

func (r *Round) firstNeedingAction() string {
	for _, id := range r.order {
		if r.needsAction(id) {
			return id
		}
	}
	return ""
}

// ActivePlayerID returns the seat allowed to act, or "" if the round is
// closed.
func (r *Round) ActivePlayerID() string { return r.activePlayerID }
func (r *Round) RoundClosed() bool      { return r.roundClosed }
func (r *Round) CurrentBet() int        { return r.currentBet }
func (r *Round) MinRaiseIncrement() int { return r.minRaiseIncrement }
func (r *Round) ActionLog() []string    { return r.actionLog }

func (r *Round) Seat(id string) (SeatState, bool) {
	st, ok := r.seats[id]
	if !ok {
		return SeatState{}, false
	}
	return *st, true
}

// Seats returns a snapshot of every seat in turn order.
func (r *Round) Seats() []SeatState {
	out := make([]SeatState, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.seats[id])
	}
	return out
}

// LegalActions reports what id may currently do. Returns the zero value
// (all false) if id is not the active player or the round is closed.
func (r *Round) LegalActions(id string) LegalActions {
	if r.roundClosed || r.activePlayerID != id {
		return LegalActions{}
	}
	st := r.seats[id]
	if st == nil {
		return LegalActions{}
	}

	callAmount := r.currentBet - st.RoundContribution
	if callAmount < 0 {
		callAmount = 0
	}
	minRequired := max(r.minOpenBet, r.minRaiseIncrement)

	la := LegalActions{
		CanFold:  true,
		CanCheck: callAmount == 0,
		CanCall:  callAmount > 0,
	}
	la.CallAmount = min(callAmount, st.Stack)

	if r.currentBet == 0 {
		la.CanBet = st.Stack > 0
		la.MinBet = min(minRequired, st.Stack)
	} else {
		la.CanRaise = st.Stack > callAmount && st.MayRaise
		toAmountMin := r.currentBet + minRequired
		maxToAmount := st.RoundContribution + st.Stack
		if toAmountMin > maxToAmount {
			toAmountMin = maxToAmount
		}
		la.MinRaiseTo = toAmountMin
	}
	la.CanAllIn = st.Stack > 0 && !st.AllIn
	if r.currentBet > 0 && !st.MayRaise && st.Stack > callAmount {
		// An all-in for more than the call is a raise, which Act rejects here.
		la.CanAllIn = false
	}

	return la
}

// Act applies action by seat id. amount is the bet size for Bet, the target
// total contribution for Raise, and is ignored otherwise.
func (r *Round) Act(id string, action Action, amount int) error {
	if r.roundClosed {
		return module.NewError(module.ErrRoundClosed, "betting round is closed")
	}
	if r.activePlayerID != id {
		return module.NewError(module.ErrNotYourTurn, fmt.Sprintf("it is not %s's turn", id))
	}
	st := r.seats[id]
	if st == nil {
		return module.NewError(module.ErrNotSeated, fmt.Sprintf("%s is not in this round", id))
	}

	switch action {
	case Fold:
		st.Folded = true
		st.HasActed = true
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s folds", id))

	case Check:
		if r.currentBet-st.RoundContribution != 0 {
			return module.NewError(module.ErrIllegalAction, "Cannot check: facing a bet")
		}
		st.HasActed = true
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s checks", id))

	case Call:
		callAmount := r.currentBet - st.RoundContribution
		if callAmount <= 0 {
			return module.NewError(module.ErrIllegalAction, "cannot call: nothing to call")
		}
		pay := min(st.Stack, callAmount)
		st.Stack -= pay
		st.RoundContribution += pay
		st.TotalContribution += pay
		if st.Stack == 0 {
			st.AllIn = true
		}
		st.HasActed = true
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s calls %d", id, pay))

	case Bet:
		if r.currentBet != 0 {
			return module.NewError(module.ErrIllegalAction, "cannot bet: a bet already exists")
		}
		if amount <= 0 || amount > st.Stack {
			return module.NewError(module.ErrInvalidAmount, "bet amount out of range")
		}
		isAllIn := amount == st.Stack
		minRequired := max(r.minOpenBet, r.minRaiseIncrement)
		if !isAllIn && amount < minRequired {
			return module.NewError(module.ErrIllegalAction, "bet below minimum open")
		}
		st.Stack -= amount
		st.RoundContribution += amount
		st.TotalContribution += amount
		if st.Stack == 0 {
			st.AllIn = true
		}
		r.currentBet = amount
		if amount >= minRequired {
			r.minRaiseIncrement = amount
			r.reopenFor(id)
		}
		st.HasActed = true
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s bets %d", id, amount))

	case Raise:
		if r.currentBet == 0 {
			return module.NewError(module.ErrIllegalAction, "cannot raise: no bet to raise")
		}
		if !st.MayRaise {
			return module.NewError(module.ErrIllegalAction, "cannot raise: action was not reopened for this seat")
		}
		if amount <= r.currentBet {
			return module.NewError(module.ErrInvalidAmount, "raise must exceed current bet")
		}
		additional := amount - st.RoundContribution
		if additional <= 0 || additional > st.Stack {
			return module.NewError(module.ErrInvalidAmount, "raise amount out of range")
		}
		isAllIn := additional == st.Stack
		increment := amount - r.currentBet
		full := increment >= r.minRaiseIncrement
		if !isAllIn && !full {
			return module.NewError(module.ErrIllegalAction, "raise below minimum increment")
		}
		st.Stack -= additional
		st.RoundContribution += additional
		st.TotalContribution += additional
		if st.Stack == 0 {
			st.AllIn = true
		}
		r.currentBet = amount
		if full {
			r.minRaiseIncrement = increment
			r.reopenFor(id)
		} else {
			r.capReraiseRights(id)
		}
		st.HasActed = true
		r.actionLog = append(r.actionLog, fmt.Sprintf("%s raises to %d", id, amount))

	case AllIn:
		contribution := st.RoundContribution
		stack := st.Stack
		if r.currentBet == 0 {
			return r.Act(id, Bet, stack)
		}
		if contribution+stack <= r.currentBet {
			return r.Act(id, Call, 0)
		}
		return r.Act(id, Raise, contribution+stack)

	default:
		return module.NewError(module.ErrUnknownAction, "unrecognized betting action")
	}

	r.advance()
	return nil
}

// reopenFor restores the right to act (and to raise) for every seat besides
// actorID that can still act, and marks every seat that cannot act as
// already-acted so it doesn't gate round closure. actorID's own HasActed is
// set by its caller.
func (r *Round) reopenFor(actorID string) {
	for _, id := range r.order {
		if id == actorID {
			continue
		}
		st := r.seats[id]
		if st.Folded || st.AllIn || st.Stack <= 0 {
			st.HasActed = true
		} else {
			st.HasActed = false
			st.MayRaise = true
		}
	}
}

// capReraiseRights marks every other live seat that had already acted at the
// current bet level as no longer able to raise: actorID's all-in fell short
// of minRaiseIncrement, so it gives them a new call/fold decision but does
// not reopen raising for them. Seats that have not acted yet this round are
// untouched — this is their first decision, not a reopening.
func (r *Round) capReraiseRights(actorID string) {
	for _, id := range r.order {
		if id == actorID {
			continue
		}
		st := r.seats[id]
		if st.Folded || st.AllIn || st.Stack <= 0 || !st.HasActed {
			continue
		}
		st.MayRaise = false
	}
}

func (r *Round) advance() {
	nonFolded := 0
	for _, id := range r.order {
		if !r.seats[id].Folded {
			nonFolded++
		}
	}
	if nonFolded <= 1 {
		r.close()
		return
	}

	liveCount := 0
	for _, id := range r.order {
		if r.needsAction(id) {
			liveCount++
		}
	}
	if liveCount == 0 {
		r.close()
		return
	}

	startIdx := 0
	for i, id := range r.order {
		if id == r.activePlayerID {
			startIdx = i
			break
		}
	}
	for step := 1; step <= len(r.order); step++ {
		idx := (startIdx + step) % len(r.order)
		id := r.order[idx]
		if r.needsAction(id) {
			r.activePlayerID = id
			return
		}
	}
	r.close()
}

func (r *Round) close() {
	r.roundClosed = true
	r.activePlayerID = ""
}

// Clone returns an independent copy. The Hold'em module takes a fresh clone
// before every Act call so a rejected action never mutates the state a
// caller is still holding a reference to.
func (r *Round) Clone() *Round {
	cp := &Round{
		order:             append([]string(nil), r.order...),
		seats:             make(map[string]*SeatState, len(r.seats)),
		currentBet:        r.currentBet,
		minOpenBet:        r.minOpenBet,
		minRaiseIncrement: r.minRaiseIncrement,
		activePlayerID:    r.activePlayerID,
		roundClosed:       r.roundClosed,
		actionLog:         append([]string(nil), r.actionLog...),
	}
	for id, st := range r.seats {
		s := *st
		cp.seats[id] = &s
	}
	return cp
}

// Pots builds side pots from this round's own contributions. The Hold'em
// module rebuilds the authoritative, hand-wide pots itself from cumulative
// per-hand contributions (see internal/holdem); this is the round-scoped
// view named in BettingState.
func (r *Round) Pots() []Pot {
	total := make(map[string]int, len(r.order))
	folded := make(map[string]bool, len(r.order))
	for _, id := range r.order {
		total[id] = r.seats[id].TotalContribution
		folded[id] = r.seats[id].Folded
	}
	return BuildPots(r.order, total, folded)
}
