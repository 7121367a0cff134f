package table

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-core/internal/module"
)

// Registry fans a server process out across many tables: one Mediator actor
// goroutine per table, all tracked by one errgroup so the process can wait
// for (or cancel) them together. Tables never share a lock with each other.
type Registry struct {
	ctx    context.Context
	group  *errgroup.Group
	logger *log.Logger
	clock  quartz.Clock

	mu     sync.RWMutex
	tables map[string]*Mediator
}

// NewRegistry builds a registry bound to ctx: cancelling ctx stops every
// table's actor loop, and Wait returns once they have all exited.
func NewRegistry(ctx context.Context, logger *log.Logger, clock quartz.Clock) *Registry {
	group, gctx := errgroup.WithContext(ctx)
	return &Registry{
		ctx:    gctx,
		group:  group,
		logger: logger,
		clock:  clock,
		tables: make(map[string]*Mediator),
	}
}

// CreateTable seats players into a new table, starts its actor goroutine,
// and registers it under tableID.
func (r *Registry) CreateTable(tableID string, mod module.GameModule, players []module.PlayerInit, options any, publisher Publisher) (*Mediator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[tableID]; exists {
		return nil, fmt.Errorf("table: %q already exists", tableID)
	}

	m, err := New(tableID, mod, players, options, publisher, r.logger, r.clock)
	if err != nil {
		return nil, err
	}
	r.tables[tableID] = m
	r.group.Go(func() error {
		m.Run(r.ctx)
		return nil
	})
	return m, nil
}

// Table returns the Mediator for tableID, if one is registered.
func (r *Registry) Table(tableID string) (*Mediator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.tables[tableID]
	return m, ok
}

// RemoveTable drops tableID from the registry. The table's actor loop keeps
// running until ctx is cancelled; this only stops routing new lookups to it.
func (r *Registry) RemoveTable(tableID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, tableID)
}

// Wait blocks until every table's actor loop has exited (normally because
// the registry's context was cancelled).
func (r *Registry) Wait() error {
	return r.group.Wait()
}
