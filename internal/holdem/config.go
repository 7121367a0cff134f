package holdem

import "github.com/lox/holdem-core/internal/deck"

// Options configures a table's hand engine. Zero values fall back to the
// documented defaults; TestDeck is the only field with no default — it is
// nil in production and non-nil only in deterministic tests.
type Options struct {
	Seed         int64
	InitialStack int
	SmallBlind   int
	BigBlind     int
	TestDeck     []deck.Card
}

const (
	defaultSeed         = 1
	defaultInitialStack = 1000
	defaultSmallBlind   = 5
	defaultBigBlind     = 10
)

func (o Options) normalize() Options {
	out := o
	if out.Seed == 0 {
		out.Seed = defaultSeed
	}
	if out.InitialStack <= 0 {
		out.InitialStack = defaultInitialStack
	}
	if out.SmallBlind <= 0 {
		out.SmallBlind = defaultSmallBlind
	}
	if out.BigBlind <= 0 {
		out.BigBlind = 2 * out.SmallBlind
	}
	return out
}
