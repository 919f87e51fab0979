package state

import (
	"sync"
	"testing"
	"time"

	"github.com/korjavin/matchmygrocery/pkg/grocery"
	"github.com/stretchr/testify/assert"
)

func TestManager_States(t *testing.T) {
	m := New()

	assert.Equal(t, StateNormal, m.GetState(1))

	m.SetState(1, StateAddingPantry)
	assert.Equal(t, StateAddingPantry, m.GetState(1))
	assert.Equal(t, StateNormal, m.GetState(2))

	m.ClearState(1)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestManager_StateExpires(t *testing.T) {
	m := NewWithTTL(20 * time.Millisecond)

	m.SetState(1, StateAddingPantry)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, StateNormal, m.GetState(1))

	// expired states are dropped, touching does not revive them
	m.Touch(1)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestManager_Sort(t *testing.T) {
	m := New()

	assert.Equal(t, grocery.SortCategory, m.GetSort(1, grocery.SortCategory))
	m.SetSort(1, grocery.SortName)
	assert.Equal(t, grocery.SortName, m.GetSort(1, grocery.SortCategory))
}

func TestManager_Concurrent(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetState(id%5, StateAddingPantry)
			m.GetState(id % 5)
			m.Touch(id % 5)
			m.SetSort(id%5, grocery.SortRecent)
			m.GetSort(id%5, grocery.SortName)
			m.ClearState(id % 5)
		}(int64(i))
	}
	wg.Wait()
}
