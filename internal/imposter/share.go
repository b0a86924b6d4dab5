package imposter

import "fmt"

// PlayURL is the public address included in shared results.
const PlayURL = "https://cyclingimposter.com"

// ShareText renders the copyable result summary for one playthrough.
func ShareText(score, streak int) string {
	return fmt.Sprintf(
		"🚴 Cycling Imposter\n🏆 Score: %d/%d\n🔥 Streak: %d\n\nCan you spot the fake riders?\n👉 Play at: %s",
		score, MaxScore, streak, PlayURL,
	)
}
