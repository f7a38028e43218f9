package parser

import "testing"

func TestEstimateResume(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		next     string
		expected int
	}{
		{name: "appended slide", previous: "A\n-\nB", next: "A\n-\nB\n-\nC", expected: 1},
		{name: "first character differs", previous: "A\n-\nB", next: "B\n-\nB", expected: 0},
		{name: "second slide edited", previous: "A\n--\nB\n--\nC", next: "A\n--\nX\n--\nC", expected: 1},
		{name: "dash inside line not counted", previous: "A - B\n-\nC", next: "A - B\n-\nD", expected: 1},
		{name: "empty previous", previous: "", next: "A\n-\nB", expected: 0},
		{name: "leading separator", previous: "-- [red]\nA\n--\nB", next: "-- [red]\nA\n--\nC", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateResume(tt.previous, tt.next); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
