package imposter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatsHistogramIsTotal(t *testing.T) {
	s := NewStats()

	require.Len(t, s.History, MaxScore+1)
	for i := 0; i <= MaxScore; i++ {
		assert.Equal(t, 0, s.History[i])
	}
	assert.Equal(t, 0, s.Played)
	assert.Equal(t, 0, s.Streak)
}

func TestApplyStreakReset(t *testing.T) {
	s := NewStats()
	for _, score := range []int{5, 6, 3, 7} {
		s = s.Apply(score)
	}

	assert.Equal(t, 4, s.Played)
	assert.Equal(t, 1, s.Streak, "the 3 resets the streak, the 7 restarts it")
}

func TestApplyHistoryAccumulation(t *testing.T) {
	s := NewStats()
	for _, score := range []int{8, 8, 5} {
		s = s.Apply(score)
	}

	assert.Equal(t, 3, s.Played)
	assert.Equal(t, 2, s.History[8])
	assert.Equal(t, 1, s.History[5])
	for i := 0; i <= MaxScore; i++ {
		if i == 8 || i == 5 {
			continue
		}
		assert.Equal(t, 0, s.History[i], "history[%d]", i)
	}
}

func TestApplyThresholdBoundary(t *testing.T) {
	s := NewStats().Apply(StreakThreshold)
	assert.Equal(t, 1, s.Streak, "a score equal to the threshold qualifies")

	s = s.Apply(StreakThreshold - 1)
	assert.Equal(t, 0, s.Streak)
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := NewStats()
	_ = s.Apply(8)

	assert.Equal(t, 0, s.Played)
	assert.Equal(t, 0, s.History[8])
}

func TestDefaultPuzzleShape(t *testing.T) {
	p := DefaultPuzzle()

	require.Len(t, p.Slots, SlotCount)

	seen := make(map[string]bool)
	imposters := 0
	for _, slot := range p.Slots {
		assert.False(t, seen[slot.CyclistID], "cyclist %s repeated", slot.CyclistID)
		seen[slot.CyclistID] = true
		if slot.IsImposter {
			imposters++
		}
	}
	assert.Equal(t, 1, imposters)
	assert.NotEmpty(t, p.Statement)
}
