package mywebapi

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewOpenRequestTracker()

	assert.False(t, tracker.IsOpen("key"), "key should be idle initially")

	assert.True(t, tracker.StoreRequest("key"), "first store should win")
	assert.True(t, tracker.IsOpen("key"), "key should be open between store and remove")

	tracker.RemoveRequest("key")
	assert.False(t, tracker.IsOpen("key"), "key should be idle after remove")
}

func TestTrackerRejectsRedispatchWhileOpen(t *testing.T) {
	tracker := NewOpenRequestTracker()

	assert.True(t, tracker.StoreRequest("key"))
	assert.False(t, tracker.StoreRequest("key"), "store while open must be rejected")

	tracker.RemoveRequest("key")
	assert.True(t, tracker.StoreRequest("key"), "key becomes eligible again after remove")
}

func TestTrackerKeysAreIndependent(t *testing.T) {
	tracker := NewOpenRequestTracker()

	assert.True(t, tracker.StoreRequest("a"))
	assert.True(t, tracker.StoreRequest("b"))
	assert.Equal(t, 2, tracker.Len())

	tracker.RemoveRequest("a")
	assert.False(t, tracker.IsOpen("a"))
	assert.True(t, tracker.IsOpen("b"))
}

func TestTrackerRemoveAbsentKey(t *testing.T) {
	tracker := NewOpenRequestTracker()
	tracker.RemoveRequest("never-stored")
	assert.Equal(t, 0, tracker.Len())
}

// Many goroutines race to dispatch the same resource; exactly one may win per
// round no matter how the schedules interleave.
func TestTrackerConcurrentSingleWinner(t *testing.T) {
	tracker := NewOpenRequestTracker()

	const rounds = 100
	const contenders = 32

	for round := 0; round < rounds; round++ {
		var winners int32
		var wg sync.WaitGroup
		start := make(chan struct{})

		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if !tracker.IsOpen("key") && tracker.StoreRequest("key") {
					atomic.AddInt32(&winners, 1)
				}
			}()
		}

		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), winners, "round %d: exactly one contender may dispatch", round)
		tracker.RemoveRequest("key")
	}
}
