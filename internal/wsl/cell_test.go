package wsl

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_ComputesOnce(t *testing.T) {
	t.Parallel()

	cell := NewCell[int]()
	var calls atomic.Int32

	assert.False(t, cell.Committed())
	got := cell.Get(func() int { calls.Add(1); return 7 })
	assert.Equal(t, 7, got)
	assert.True(t, cell.Committed())

	got = cell.Get(func() int { calls.Add(1); return 99 })
	assert.Equal(t, 7, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCell_ConcurrentCallersShareOneComputation(t *testing.T) {
	t.Parallel()

	const callers = 64
	cell := NewCell[string]()
	var calls atomic.Int32
	release := make(chan struct{})

	results := make([]string, callers)
	var started, finished sync.WaitGroup
	started.Add(callers)
	finished.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer finished.Done()
			started.Done()
			results[i] = cell.Get(func() string {
				calls.Add(1)
				<-release
				return `\\wsl.localhost\Ubuntu`
			})
		}(i)
	}

	started.Wait()
	close(release)
	finished.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, `\\wsl.localhost\Ubuntu`, r)
	}
}

func TestCell_PanicCommitsZeroValue(t *testing.T) {
	t.Parallel()

	cell := NewCell[Root]()
	require.Panics(t, func() {
		cell.Get(func() Root { panic("boom") })
	})

	got := cell.Get(func() Root { return Root{Path: "x", Resolved: true} })
	assert.Equal(t, Root{}, got)
}
