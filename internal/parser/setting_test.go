package parser

import "testing"

func TestApplySetting(t *testing.T) {
	tests := []struct {
		name  string
		token string
		check func(p Point) bool
	}{
		{"stage color", "stage-color=#112233", func(p Point) bool { return p.StageColor == "#112233" }},
		{"font", "font=Sans 24px", func(p Point) bool { return p.Font == "Sans 24px" }},
		{"text color", "text-color=blue", func(p Point) bool { return p.TextColor == "blue" }},
		{"text align right", "text-align=right", func(p Point) bool { return p.TextAlign == AlignRight }},
		{"text align center", "text-align=center", func(p Point) bool { return p.TextAlign == AlignCenter }},
		{"text align unknown", "text-align=sideways", func(p Point) bool { return p.TextAlign == AlignLeft }},
		{"shading color", "shading-color=gray", func(p Point) bool { return p.ShadingColor == "gray" }},
		{"shading opacity", "shading-opacity=0.25", func(p Point) bool { return p.ShadingOpacity == 0.25 }},
		{"shading opacity trailing junk", "shading-opacity=0.5x", func(p Point) bool { return p.ShadingOpacity == 0.5 }},
		{"shading opacity unparsable", "shading-opacity=lots", func(p Point) bool { return p.ShadingOpacity == 0 }},
		{"command", "command=xterm -e top", func(p Point) bool { return p.Command == "xterm -e top" }},
		{"transition", "transition=sheet", func(p Point) bool { return p.Transition == "sheet" }},
		{"fill", "fill", func(p Point) bool { return p.BackgroundScale == ScaleFill }},
		{"stretch", "stretch", func(p Point) bool { return p.BackgroundScale == ScaleStretch }},
		{"unscaled", "unscaled", func(p Point) bool { return p.BackgroundScale == ScaleUnscaled }},
		{"top", "top", func(p Point) bool { return p.Position == PositionNorth }},
		{"bottom right", "bottom-right", func(p Point) bool { return p.Position == PositionSouthEast }},
		{"left", "left", func(p Point) bool { return p.Position == PositionWest }},
		{"no markup", "no-markup", func(p Point) bool { return !p.UseMarkup }},
		{"keywords are case sensitive", "Top", func(p Point) bool { return p.Position == PositionCenter && p.Background == "Top" }},
		{"unknown becomes background", "slides/bg.jpg", func(p Point) bool { return p.Background == "slides/bg.jpg" }},
		{"whitespace kept", " fill ", func(p Point) bool { return p.Background == " fill " && p.BackgroundScale == ScaleFit }},
		{"unknown key becomes background", "size=12", func(p Point) bool { return p.Background == "size=12" }},
		{"empty token becomes background", "", func(p Point) bool { return p.Background == "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPoint()
			ApplySetting(&p, tt.token)
			if !tt.check(p) {
				t.Errorf("token %q produced unexpected point %+v", tt.token, p)
			}
		})
	}
}

func TestApplySettingPrefixPriority(t *testing.T) {
	// the first matching prefix takes the whole remainder as its value
	p := DefaultPoint()
	ApplySetting(&p, "font=text-color=red")
	if p.Font != "text-color=red" {
		t.Errorf("expected font %q, got %q", "text-color=red", p.Font)
	}
	if p.TextColor != "white" {
		t.Errorf("expected text color untouched, got %q", p.TextColor)
	}
}

func TestConfigTokens(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{name: "none", line: "-- just a separator", expected: nil},
		{name: "two tokens", line: "- [font=Sans 24px][text-align=right]", expected: []string{"font=Sans 24px", "text-align=right"}},
		{name: "text between ignored", line: "x [a] y [b] z", expected: []string{"a", "b"}},
		{name: "unterminated", line: "[a][font=Mono", expected: []string{"a", "font=Mono"}},
		{name: "empty brackets", line: "[]", expected: []string{""}},
		{name: "nested open", line: "[a[b]", expected: []string{"a[b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := configTokens(tt.line)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestApplyConfigLineLaterWins(t *testing.T) {
	p := DefaultPoint()
	ApplyConfigLine(&p, "[top][bottom][red][logo.png]")
	if p.Position != PositionSouth {
		t.Errorf("expected bottom, got %s", p.Position)
	}
	if p.Background != "logo.png" {
		t.Errorf("expected logo.png, got %q", p.Background)
	}
}
