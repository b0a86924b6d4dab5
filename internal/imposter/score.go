package imposter

// SlotResult is the per-slot verdict revealed after submission.
type SlotResult struct {
	CyclistID  string `json:"cyclistId"`
	IsImposter bool   `json:"isImposter"`
	Selected   bool   `json:"selected"`
	Correct    bool   `json:"correct"`
}

// Score compares a selection against the puzzle's answer key and returns
// the number of correct slots.
//
// Marking a cyclist means "I claim this one is the imposter": a slot is
// correct exactly when selected == isImposter. Selection ids that match no
// slot are ignored. The function is pure and deterministic.
func Score(p Puzzle, sel Selection) int {
	score := 0
	for _, slot := range p.Slots {
		if sel.Contains(slot.CyclistID) == slot.IsImposter {
			score++
		}
	}
	return score
}

// Reveal returns the per-slot correctness for a graded selection, in slot
// display order.
func Reveal(p Puzzle, sel Selection) []SlotResult {
	out := make([]SlotResult, 0, len(p.Slots))
	for _, slot := range p.Slots {
		selected := sel.Contains(slot.CyclistID)
		out = append(out, SlotResult{
			CyclistID:  slot.CyclistID,
			IsImposter: slot.IsImposter,
			Selected:   selected,
			Correct:    selected == slot.IsImposter,
		})
	}
	return out
}
