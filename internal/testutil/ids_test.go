package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsInOrder(t *testing.T) {
	gen := NewFixedIDGenerator("a", "b", "c")

	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Equal(t, 1, gen.Remaining())
	assert.Equal(t, "c", gen.Generate())
	assert.Equal(t, 0, gen.Remaining())
}

func TestFixedIDGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedIDGenerator("only")
	gen.Generate()

	assert.PanicsWithValue(t, "FixedIDGenerator: all ids exhausted", func() {
		gen.Generate()
	})
}

func TestFixedIDGenerator_ThreadSafe(t *testing.T) {
	const n = 200
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('A'+i%26)) + string(rune('0'+i/26))
	}
	gen := NewFixedIDGenerator(ids...)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < n/10; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	assert.Equal(t, 0, gen.Remaining())
}

func TestConstantIDGenerator(t *testing.T) {
	gen := NewConstantIDGenerator("same")
	assert.Equal(t, "same", gen.Generate())
	assert.Equal(t, "same", gen.Generate())

	assert.Equal(t, "test-id-default", NewConstantIDGenerator("").Generate())
}
