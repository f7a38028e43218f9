package parser

// EstimateResume compares the previous and new source of a deck and returns
// the index of the slide holding the first difference. The document start
// counts as the opening of slide one, so the result is the number of slide
// openings in the common prefix minus one. Callers must treat a result
// outside the new deck as "start from the first slide".
func EstimateResume(previous, next string) int {
	slides := 1
	startOfLine := true
	for i := 0; i < len(previous) && i < len(next) && previous[i] == next[i]; i++ {
		c := previous[i]
		if c == '-' && startOfLine {
			slides++
		}
		startOfLine = c == '\n'
	}
	return slides - 1
}
