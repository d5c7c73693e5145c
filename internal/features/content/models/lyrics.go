package models

// lyricsEndedGrace is how long after the last line the song counts as over.
const lyricsEndedGrace = 3.0

// CurrentLine returns the index of the line whose time window contains t:
// the line with the greatest timestamp <= t, holding until the next line
// starts. Returns -1 before the first line or when there are no lines.
func CurrentLine(lines []LyricLine, t float64) int {
	index := -1
	for i, line := range lines {
		if t >= line.Time {
			index = i
		} else {
			break
		}
	}
	return index
}

// LyricsEnded reports whether playback has moved past the last line,
// with a short grace period so the final line stays on screen.
func LyricsEnded(lines []LyricLine, t float64) bool {
	if len(lines) == 0 {
		return false
	}
	return t > lines[len(lines)-1].Time+lyricsEndedGrace
}
