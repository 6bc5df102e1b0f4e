package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-bot/internal/core/nlu"
)

func TestContextPagination(t *testing.T) {
	t.Parallel()

	sc := NewContext("s1", 5)
	assert.Equal(t, 0, sc.TotalPages())
	assert.False(t, sc.NextPage())

	sc.SetResults([]string{"a", "b", "c", "d", "e", "f", "g"}, nil)
	assert.Equal(t, 2, sc.TotalPages())

	start, end := sc.PageBounds()
	assert.Equal(t, [2]int{0, 5}, [2]int{start, end})
	assert.False(t, sc.PrevPage())

	require.True(t, sc.NextPage())
	start, end = sc.PageBounds()
	assert.Equal(t, [2]int{5, 7}, [2]int{start, end})
	assert.False(t, sc.NextPage())

	require.True(t, sc.PrevPage())
	assert.Equal(t, 0, sc.CurrentPage)

	sc.CurrentPage = 1
	sc.SetResults([]string{"x"}, nil)
	assert.Equal(t, 0, sc.CurrentPage)
}

func TestNewContextDefaultsPerPage(t *testing.T) {
	t.Parallel()

	sc := NewContext("s1", 0)
	assert.Equal(t, DefaultRecipesPerPage, sc.RecipesPerPage)
	assert.NotNil(t, sc.LastSearchResults)
}

func TestContextClone(t *testing.T) {
	t.Parallel()

	q := nlu.ParsedQuery{Intent: nlu.IntentFindRecipe, IncludeIngredients: []string{"rice"}}
	sc := NewContext("s1", 5)
	sc.SetResults([]string{"1", "2"}, &q)

	clone := sc.Clone()
	clone.LastSearchResults[0] = "changed"
	clone.LastQuery.Intent = nlu.IntentHelp

	assert.Equal(t, "1", sc.LastSearchResults[0])
	assert.Equal(t, nlu.IntentFindRecipe, sc.LastQuery.Intent)
}

func TestLockerSerializesSameKey(t *testing.T) {
	t.Parallel()

	l := NewLocker()
	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("same")
			defer unlock()
			n := active.Add(1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			time.Sleep(time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.Equal(t, 0, l.Len())
}

func TestLockerIndependentKeys(t *testing.T) {
	t.Parallel()

	l := NewLocker()
	unlockA := l.Lock("a")

	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}

	unlockA()
	// 重複解鎖不會 panic
	unlockA()
	assert.Equal(t, 0, l.Len())
}
