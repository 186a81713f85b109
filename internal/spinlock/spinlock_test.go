package spinlock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazarin/internal/spinlock"
)

func TestLockUnlockRoundTrip(t *testing.T) {
	lock := spinlock.New(42)

	g := lock.Lock()
	require.Equal(t, 42, *g.Get())
	*g.Get() = 100
	g.Unlock()

	g2 := lock.Lock()
	require.Equal(t, 100, *g2.Get())
	g2.Unlock()
}

func TestGuardMutatesUnderlyingValue(t *testing.T) {
	type counters struct{ n int }
	lock := spinlock.New(counters{})

	for i := 0; i < 5; i++ {
		g := lock.Lock()
		g.Get().n++
		g.Unlock()
	}

	g := lock.Lock()
	require.Equal(t, 5, g.Get().n)
	g.Unlock()
}
