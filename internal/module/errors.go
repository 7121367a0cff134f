package module

import "errors"

// ErrorKind tags every failure a game module or its collaborators can
// return. Nothing in the core panics across a package boundary; callers
// switch on Kind rather than string-matching Error().
type ErrorKind string

const (
	ErrNotSeated           ErrorKind = "NotSeated"
	ErrNotYourTurn         ErrorKind = "NotYourTurn"
	ErrInvalidAmount       ErrorKind = "InvalidAmount"
	ErrIllegalAction       ErrorKind = "IllegalAction"
	ErrInsufficientPlayers ErrorKind = "InsufficientPlayers"
	ErrWrongPhase          ErrorKind = "WrongPhase"
	ErrRoundClosed         ErrorKind = "RoundClosed"
	ErrUnknownAction       ErrorKind = "UnknownAction"
	ErrInvalidInput        ErrorKind = "InvalidInput"
	ErrBusy                ErrorKind = "Busy"
)

// GameError is the concrete error value returned for every ErrorKind.
type GameError struct {
	Kind    ErrorKind
	Message string
}

func (e *GameError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func NewError(kind ErrorKind, message string) *GameError {
	return &GameError{Kind: kind, Message: message}
}

// KindOf unwraps err looking for a *GameError and returns its Kind, or ""
// if err isn't (or doesn't wrap) one.
func KindOf(err error) ErrorKind {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
