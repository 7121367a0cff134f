// Package table implements the per-table actor: it owns one game's State,
// serializes every mutating action through a single goroutine, and
// publishes a PublicView plus one PlayerView per seat after each successful
// mutation. It is deliberately game-agnostic — it drives a module.GameModule,
// never internal/holdem's types directly.
package table

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-core/internal/module"
)

// Publisher receives views after every successful mutation. A freshly
// attached subscriber should call Mediator.Views to get the current
// snapshot rather than waiting for the next publish.
type Publisher interface {
	PublishPublic(tableID string, view any)
	PublishPlayer(tableID, playerID string, view any)
}

type request struct {
	playerID string
	action   module.Action
	resultCh chan result
}

type result struct {
	view any
	err  error
}

// Mediator is one table: a single-threaded actor over module.GameModule.
// Concurrent calls to Submit from multiple goroutines are serialized by the
// internal request channel; calls for different Mediators never block each
// other.
type Mediator struct {
	tableID   string
	module    module.GameModule
	publisher Publisher
	logger    *log.Logger
	clock     quartz.Clock

	requests chan request

	mu       sync.RWMutex
	state    any
	players  []string
	lastView any
}

// New creates a table's Mediator and seats the given players by creating the
// module's initial state. It does not start the actor loop — call Run in its
// own goroutine (Registry does this for you).
func New(tableID string, mod module.GameModule, players []module.PlayerInit, options any, publisher Publisher, logger *log.Logger, clock quartz.Clock) (*Mediator, error) {
	state, err := mod.CreateInitialState(players, options)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	m := &Mediator{
		tableID:   tableID,
		module:    mod,
		publisher: publisher,
		logger:    logger.With("table", tableID),
		clock:     clock,
		requests:  make(chan request),
		state:     state,
		players:   ids,
	}
	m.publishLocked()
	return m, nil
}

// Run drives the actor loop until ctx is cancelled. Every request enqueued
// via Submit is handled in the order it was received.
func (m *Mediator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-m.requests:
			m.handle(req)
		}
	}
}

// Submit enqueues one action and blocks until it has been applied (or
// rejected). If ctx is done before the actor loop picks up the request,
// Submit fails with ErrBusy without having mutated state; once picked up,
// the action runs to completion and its result is returned.
func (m *Mediator) Submit(ctx context.Context, playerID string, action module.Action) (any, error) {
	req := request{playerID: playerID, action: action, resultCh: make(chan result, 1)}
	select {
	case m.requests <- req:
	case <-ctx.Done():
		return nil, module.NewError(module.ErrBusy, "table did not accept the action before the deadline")
	}
	res := <-req.resultCh
	return res.view, res.err
}

func (m *Mediator) handle(req request) {
	if req.playerID != "" && !m.isSeated(req.playerID) {
		req.resultCh <- result{err: module.NewError(module.ErrNotSeated, req.playerID+" is not seated at this table")}
		return
	}

	m.mu.RLock()
	current := m.state
	m.mu.RUnlock()

	newState, err := m.module.ApplyAction(current, req.playerID, req.action)
	if err != nil {
		m.logger.Debug("action rejected", "player", req.playerID, "type", req.action.Type, "kind", module.KindOf(err))
		req.resultCh <- result{err: err}
		return
	}

	m.mu.Lock()
	m.state = newState
	m.mu.Unlock()

	m.publishLocked()
	m.logger.Debug("action applied", "player", req.playerID, "type", req.action.Type, "at", m.clock.Now())
	req.resultCh <- result{view: m.currentPublicView()}
}

func (m *Mediator) isSeated(playerID string) bool {
	for _, id := range m.players {
		if id == playerID {
			return true
		}
	}
	return false
}

// publishLocked computes and publishes the public view and one player view
// per seat from the current state. It is only ever called from the actor
// goroutine (construction, or inside handle), so it needs no external lock
// around the module calls themselves.
func (m *Mediator) publishLocked() {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()

	public := m.module.GetPublicView(state)

	m.mu.Lock()
	m.lastView = public
	m.mu.Unlock()

	if m.publisher == nil {
		return
	}
	m.publisher.PublishPublic(m.tableID, public)
	for _, id := range m.players {
		m.publisher.PublishPlayer(m.tableID, id, m.module.GetPlayerView(state, id))
	}
}

func (m *Mediator) currentPublicView() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastView
}

// Views is the idempotent query path: it never mutates state and always
// reflects the most recent successful publication, without going through
// the actor's request channel.
func (m *Mediator) Views() (public any, byPlayer map[string]any) {
	m.mu.RLock()
	state := m.state
	public = m.lastView
	players := append([]string(nil), m.players...)
	m.mu.RUnlock()

	byPlayer = make(map[string]any, len(players))
	for _, id := range players {
		byPlayer[id] = m.module.GetPlayerView(state, id)
	}
	return public, byPlayer
}

// IsGameOver reports whether the underlying module considers the game
// finished (at most one seat left with chips).
func (m *Mediator) IsGameOver() bool {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	return m.module.IsGameOver(state)
}
