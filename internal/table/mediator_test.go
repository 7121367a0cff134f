package table

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-core/internal/holdem"
	"github.com/lox/holdem-core/internal/module"
)

type recordingPublisher struct {
	mu      sync.Mutex
	public  []any
	players []string
}

func (p *recordingPublisher) PublishPublic(tableID string, view any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.public = append(p.public, view)
}

func (p *recordingPublisher) PublishPlayer(tableID, playerID string, view any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.players = append(p.players, playerID)
}

func newTestMediator(t *testing.T) (*Mediator, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	logger := log.New(io.Discard)
	m, err := New("t1", holdem.Adapter{},
		[]module.PlayerInit{{ID: "p1"}, {ID: "p2"}},
		holdem.Options{Seed: 1, SmallBlind: 5, BigBlind: 10},
		pub, logger, quartz.NewMock(t))
	require.NoError(t, err)
	return m, pub
}

func TestMediatorPublishesOnEverySuccessfulAction(t *testing.T) {
	m, pub := newTestMediator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	_, err := m.Submit(context.Background(), "", module.Action{Type: module.ActionStartHand})
	require.NoError(t, err)

	pub.mu.Lock()
	publishCount := len(pub.public)
	pub.mu.Unlock()
	require.GreaterOrEqual(t, publishCount, 2) // construction + START_HAND
}

func TestMediatorRejectsUnseatedPlayer(t *testing.T) {
	m, _ := newTestMediator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	_, err := m.Submit(context.Background(), "ghost", module.Action{Type: module.ActionCheck})
	require.Error(t, err)
	require.Equal(t, module.ErrNotSeated, module.KindOf(err))
}

func TestMediatorViewsHideHoleCardsFromOthers(t *testing.T) {
	m, _ := newTestMediator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	_, err := m.Submit(context.Background(), "", module.Action{Type: module.ActionStartHand})
	require.NoError(t, err)

	_, byPlayer := m.Views()
	p1View, ok := byPlayer["p1"].(holdem.PlayerView)
	require.True(t, ok)
	p2View, ok := byPlayer["p2"].(holdem.PlayerView)
	require.True(t, ok)

	require.Len(t, p1View.HoleCards, 2)
	require.Len(t, p2View.HoleCards, 2)
	require.NotEqual(t, p1View.HoleCards, p2View.HoleCards)
}

func TestRegistryRejectsDuplicateTableID(t *testing.T) {
	logger := log.New(io.Discard)
	registry := NewRegistry(context.Background(), logger, quartz.NewMock(t))

	m1, err := registry.CreateTable("a", holdem.Adapter{}, []module.PlayerInit{{ID: "p1"}, {ID: "p2"}}, holdem.Options{Seed: 1}, nil)
	require.NoError(t, err)
	_, err = registry.CreateTable("a", holdem.Adapter{}, []module.PlayerInit{{ID: "p1"}, {ID: "p2"}}, holdem.Options{Seed: 1}, nil)
	require.Error(t, err)

	got, ok := registry.Table("a")
	require.True(t, ok)
	require.Same(t, m1, got)
}
