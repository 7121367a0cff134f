package deck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLCGDeterministic(t *testing.T) {
	a := NewLCG(42)
	b := NewLCG(42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestLCGNextIntBounds(t *testing.T) {
	rng := NewLCG(7)
	for i := 0; i < 100; i++ {
		n := rng.NextInt(5)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 5)
	}
}
