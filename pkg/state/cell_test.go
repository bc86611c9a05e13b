package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kindred/pkg/storage"
)

func newAdapter(t *testing.T) (*storage.Adapter, *storage.MemoryMedium) {
	t.Helper()
	medium := storage.NewMemoryMedium()
	return storage.New(medium, nil), medium
}

func TestNewHydratesFromStorage(t *testing.T) {
	a, medium := newAdapter(t)
	require.NoError(t, medium.Set("ns-sparkles", "false"))

	c := New(a, "ns-sparkles", true)

	assert.False(t, c.Get())
	assert.True(t, c.Hydrated())
}

func TestNewFallsBackToInitial(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
	}{
		{name: "missing key"},
		{name: "malformed value", stored: ptr("{broken")},
		{name: "wrong type", stored: ptr(`"yes"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, medium := newAdapter(t)
			if tt.stored != nil {
				require.NoError(t, medium.Set("flag", *tt.stored))
			}

			c := New(a, "flag", true)
			assert.True(t, c.Get())
			assert.False(t, c.Hydrated())
		})
	}
}

func TestNewFuncEvaluatesInitializerAtMostOnce(t *testing.T) {
	t.Run("runs once when nothing stored", func(t *testing.T) {
		a, _ := newAdapter(t)
		calls := 0
		c := NewFunc(a, "count", func() int { calls++; return 5 })

		assert.Equal(t, 5, c.Get())
		c.Set(6)
		c.Get()
		assert.Equal(t, 1, calls)
	})

	t.Run("never runs when hydrated", func(t *testing.T) {
		a, medium := newAdapter(t)
		require.NoError(t, medium.Set("count", "9"))
		calls := 0
		c := NewFunc(a, "count", func() int { calls++; return 5 })

		assert.Equal(t, 9, c.Get())
		assert.Equal(t, 0, calls)
	})
}

func TestSetIsVisibleAndPersisted(t *testing.T) {
	a, medium := newAdapter(t)
	c := New(a, "name", "")

	c.Set("ada")
	assert.Equal(t, "ada", c.Get())

	raw, ok, err := medium.Get("name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"ada"`, raw)

	// A new cell on the same key sees the persisted value.
	again := New(a, "name", "default")
	assert.Equal(t, "ada", again.Get())
}

func TestUpdateUsesPreviousValue(t *testing.T) {
	a, _ := newAdapter(t)
	c := New(a, "list", []string{"a"})

	got := c.Update(func(prev []string) []string {
		return append([]string{"z"}, prev...)
	})

	assert.Equal(t, []string{"z", "a"}, got)
	assert.Equal(t, []string{"z", "a"}, c.Get())
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	a, _ := newAdapter(t)
	c := New(a, "counter", 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Update(func(prev int) int { return prev + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Get())
	assert.Equal(t, 50, storage.Read(a, "counter", -1))
}

func TestConcurrentSetsPersistLastValue(t *testing.T) {
	a, _ := newAdapter(t)
	c := New(a, "last", -1)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Set(v)
		}(i)
	}
	wg.Wait()

	// Whichever Set won in memory must also be the stored value.
	assert.Equal(t, c.Get(), storage.Read(a, "last", -2))
}

func TestSubscribe(t *testing.T) {
	a, _ := newAdapter(t)
	c := New(a, "q", "")

	var seen []string
	cancel := c.Subscribe(func(v string) { seen = append(seen, v) })

	c.Set("sushi")
	c.Update(func(prev string) string { return prev + "!" })
	cancel()
	c.Set("ignored")

	assert.Equal(t, []string{"sushi", "sushi!"}, seen)
}

func TestOmitZeroRemovesKey(t *testing.T) {
	a, medium := newAdapter(t)
	c := New(a, "active", "", OmitZero[string]())

	c.Set("p1")
	_, ok, _ := medium.Get("active")
	assert.True(t, ok)

	c.Set("")
	_, ok, _ = medium.Get("active")
	assert.False(t, ok)
	assert.Equal(t, "", c.Get())
}

func TestDeferredSchedulerCoalesces(t *testing.T) {
	a, medium := newAdapter(t)
	d := NewDeferred()
	name := New(a, "name", "", WithScheduler[string](d))
	count := New(a, "count", 0, WithScheduler[int](d))

	name.Set("a")
	count.Set(1)
	name.Set("b")
	name.Set("c")

	// Visible immediately, not yet durable.
	assert.Equal(t, "c", name.Get())
	assert.Equal(t, 2, d.Pending())
	assert.Equal(t, 0, medium.Len())

	d.Flush()

	assert.Equal(t, 0, d.Pending())
	raw, _, _ := medium.Get("name")
	assert.Equal(t, `"c"`, raw)
	raw, _, _ = medium.Get("count")
	assert.Equal(t, "1", raw)
}

func TestDeferredRunFlushesOnCancel(t *testing.T) {
	a, medium := newAdapter(t)
	d := NewDeferred()
	c := New(a, "k", 0, WithScheduler[int](d))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, time.Hour)
		close(done)
	}()

	c.Set(42)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	raw, ok, _ := medium.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "42", raw)
}

func TestCellWithoutStorage(t *testing.T) {
	a := storage.New(nil, nil)
	c := New(a, "db", []int{1})

	c.Set([]int{1, 2})
	assert.Equal(t, []int{1, 2}, c.Get())
	assert.False(t, c.Hydrated())
}

func ptr(s string) *string { return &s }
