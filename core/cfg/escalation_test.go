package cfg

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	events  []int
	release chan struct{}
}

func (c *collector) OnFirstTake(_ *BasicBlock, successor int) {
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	c.events = append(c.events, successor)
	c.mu.Unlock()
}

func TestDeferredEscalatorDelivers(t *testing.T) {
	col := new(collector)
	esc, err := NewDeferredEscalator(col, DeferredEscalatorConfig{Workers: 4})
	require.NoError(t, err)

	b := mustBlock(0, nil, &pickTerm{succ: []int{1, 2, 3}})
	b.SetFirstTakeHandler(esc)
	for _, pick := range []int{2, 0, 2, 1, 0} {
		_, err := b.Execute(&trace{pick: pick})
		require.NoError(t, err)
	}
	esc.Close()
	assert.ElementsMatch(t, []int{0, 1, 2}, col.events)
	assert.Zero(t, esc.Pending())
}

func TestDeferredEscalatorCollapsesPending(t *testing.T) {
	col := &collector{release: make(chan struct{})}
	esc, err := NewDeferredEscalator(col, DeferredEscalatorConfig{})
	require.NoError(t, err)

	b := mustBlock(0, nil, &pickTerm{succ: []int{1}})
	esc.OnFirstTake(b, 0)
	esc.OnFirstTake(b, 0)
	assert.Equal(t, 1, esc.Pending())

	close(col.release)
	esc.Close()
	assert.Equal(t, []int{0}, col.events)
}

func TestDeferredEscalatorNonblockingParks(t *testing.T) {
	col := &collector{release: make(chan struct{})}
	esc, err := NewDeferredEscalator(col, DeferredEscalatorConfig{Workers: 1, Nonblocking: true})
	require.NoError(t, err)

	b := mustBlock(0, nil, &pickTerm{succ: []int{1, 2}})
	b.SetFirstTakeHandler(esc)
	take := func(pick int) {
		_, err := b.Execute(&trace{pick: pick})
		require.NoError(t, err)
	}
	take(0) // occupies the only worker
	take(1) // pool full
	assert.Equal(t, 2, esc.Pending())

	close(col.release)
	for i := 0; i < 5; i++ {
		take(1)
	}
	assert.False(t, b.IsFirstTake(1))
	assert.Equal(t, uint64(6), b.Profile().Count(1))

	esc.Close()
	assert.ElementsMatch(t, []int{0, 1}, col.events)
	assert.Zero(t, esc.Pending())
}

func TestDeferredEscalatorFlushResubmits(t *testing.T) {
	col := &collector{release: make(chan struct{})}
	esc, err := NewDeferredEscalator(col, DeferredEscalatorConfig{Workers: 1, Nonblocking: true})
	require.NoError(t, err)

	b := mustBlock(0, nil, &pickTerm{succ: []int{1, 2}})
	esc.OnFirstTake(b, 0)
	esc.OnFirstTake(b, 1)
	esc.OnFirstTake(b, 1)
	esc.Flush()
	assert.Equal(t, 2, esc.Pending())

	close(col.release)
	require.Eventually(t, func() bool {
		esc.Flush()
		col.mu.Lock()
		defer col.mu.Unlock()
		return len(col.events) == 2
	}, 5*time.Second, time.Millisecond)

	esc.Close()
	assert.ElementsMatch(t, []int{0, 1}, col.events)
	assert.Zero(t, esc.Pending())
}
