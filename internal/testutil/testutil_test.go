package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	assert.Equal(t, "00000000-0000-7000-8000-000000000001", ID(1).String())
	assert.Equal(t, "00000000-0000-7000-8000-0000000000ff", ID(255).String())
	assert.Equal(t, uuid.Version(7), ID(3).Version())
	assert.Equal(t, uuid.RFC4122, ID(3).Variant())
}

func TestSequentialIDs_ThreadSafe(t *testing.T) {
	gen := NewSequentialIDs()

	var mu sync.Mutex
	seen := make(map[uuid.UUID]bool)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1000)
	assert.Equal(t, ID(1001), gen.Generate())
}

func TestDeterministicClock(t *testing.T) {
	clock := NewDeterministicClock(Epoch, time.Minute)

	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, Epoch.Add(time.Minute), clock.Now())

	clock.Advance(time.Hour)
	assert.Equal(t, Epoch.Add(62*time.Minute), clock.Now())

	clock.Reset()
	assert.Equal(t, Epoch, clock.Now())
}

func TestNewRepo(t *testing.T) {
	r, root := NewRepo(t)
	assert.DirExists(t, root+"/Locations")

	l, err := r.CreateLocation(t.Context(), "Earth")
	assert.NoError(t, err)
	assert.Equal(t, ID(1), l.ID)
	assert.FileExists(t, root+"/Locations/"+ID(1).String())
}

func TestNewSQLiteRepo(t *testing.T) {
	r := NewSQLiteRepo(t)

	l, err := r.CreateLocation(t.Context(), "Earth")
	assert.NoError(t, err)

	got, err := r.Location(t.Context(), l.ID)
	assert.NoError(t, err)
	assert.Equal(t, l, got)
}
