package imposter

// Stats is the derived aggregate over all of a device's results. It is
// maintained incrementally but must always equal a replay of the result
// sequence through Apply.
type Stats struct {
	Played  int         `json:"played"`
	Streak  int         `json:"streak"`
	History map[int]int `json:"history"`
}

// NewStats returns empty stats with the histogram zeroed for every score
// from 0 to MaxScore, so the mapping is total from the start.
func NewStats() Stats {
	h := make(map[int]int, MaxScore+1)
	for i := 0; i <= MaxScore; i++ {
		h[i] = 0
	}
	return Stats{History: h}
}

// Apply folds one new score into the stats and returns the updated copy.
// A score at or above StreakThreshold extends the streak; anything below
// resets it to zero. Apply performs no deduplication: the session guard is
// responsible for invoking it exactly once per result.
func (s Stats) Apply(score int) Stats {
	next := Stats{
		Played:  s.Played + 1,
		Streak:  0,
		History: make(map[int]int, MaxScore+1),
	}
	if score >= StreakThreshold {
		next.Streak = s.Streak + 1
	}
	for i := 0; i <= MaxScore; i++ {
		next.History[i] = s.History[i]
	}
	next.History[score]++
	return next
}
