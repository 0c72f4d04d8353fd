package resolver

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	stores := map[string]Store[string]{
		"map":  NewStore[string](),
		"sync": NewSyncStore[string](),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Get("missing")
			assert.False(t, ok)

			s.Put("a", "1")
			s.Put("b", "2")
			s.Put("a", "3")

			v, ok := s.Get("a")
			require.True(t, ok)
			assert.Equal(t, "3", v)
			assert.Equal(t, 2, s.Len())

			snap := s.Snapshot()
			snap["c"] = "mutated"
			assert.Equal(t, 2, s.Len(), "snapshot must be a copy")

			s.Clear()
			assert.Equal(t, 0, s.Len())
			_, ok = s.Get("a")
			assert.False(t, ok)
		})
	}
}

func TestSyncStore_Concurrent(t *testing.T) {
	s := NewSyncStore[int]()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", j)
				s.Put(key, i)
				s.Get(key)
				s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}

func TestBuildOptions(t *testing.T) {
	o := buildOptions(nil)
	assert.IsType(t, &MapStore[string]{}, o.cache)
	assert.IsType(t, &MapStore[inference]{}, o.processed)

	o = buildOptions([]Option{WithSynchronized()})
	assert.IsType(t, &SyncStore[string]{}, o.cache)
	assert.IsType(t, &SyncStore[inference]{}, o.processed)

	injected := NewStore[string]()
	o = buildOptions([]Option{WithSynchronized(), WithCache(injected)})
	assert.Same(t, injected, o.cache)
	assert.IsType(t, &SyncStore[inference]{}, o.processed)
}
