package holdem

import "github.com/lox/holdem-core/internal/module"

// Adapter wraps the strongly-typed Hold'em functions to satisfy
// module.GameModule at the table mediator boundary. Direct callers (tests,
// the CLI) should prefer this package's typed functions; Adapter exists only so
// the mediator can stay game-agnostic.
type Adapter struct{}

var _ module.GameModule = Adapter{}

func (Adapter) CreateInitialState(players []module.PlayerInit, options any) (any, error) {
	opts, _ := options.(Options)
	return CreateInitialState(players, opts)
}

func (Adapter) ApplyAction(state any, playerID string, action module.Action) (any, error) {
	s, ok := state.(*State)
	if !ok {
		return nil, module.NewError(module.ErrInvalidInput, "state is not a *holdem.State")
	}
	return ApplyAction(s, playerID, action)
}

func (Adapter) GetPublicView(state any) any {
	return GetPublicView(state.(*State))
}

func (Adapter) GetPlayerView(state any, playerID string) any {
	return GetPlayerView(state.(*State), playerID)
}

func (Adapter) IsGameOver(state any) bool {
	return IsGameOver(state.(*State))
}

func (Adapter) GetResult(state any) (any, bool) {
	result, ok := GetResult(state.(*State))
	return result, ok
}
