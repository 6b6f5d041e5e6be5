package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_Sequential(t *testing.T) {
	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, Sequential())

	assert.Equal(t, int64(100), counter)
}

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 203
	seen := make([]int32, n)
	var mu sync.Mutex
	var calls int

	ForRange(n, func(start, end int) {
		mu.Lock()
		calls++
		mu.Unlock()
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	for i, c := range seen {
		assert.Equalf(t, int32(1), c, "index %d visited %d times", i, c)
	}
	assert.Greater(t, calls, 1, "expected work to be split across chunks")
}

func TestForRange_SmallInputRunsOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	var calls int
	ForRange(10, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	}, cfg)

	assert.Equal(t, 1, calls)
}

func TestForRange_Empty(t *testing.T) {
	ForRange(0, func(_, _ int) {
		t.Fatal("f must not be called for n == 0")
	}, DefaultConfig())
}
