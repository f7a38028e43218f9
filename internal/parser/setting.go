package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// setting is one entry of the config token grammar.
// match returns the argument for apply and whether the token belongs to this rule.
type setting struct {
	match func(token string) (string, bool)
	apply func(p *Point, arg string)
}

// prefixed matches tokens of the form key=value
func prefixed(key string, apply func(p *Point, arg string)) setting {
	prefix := key + "="
	return setting{
		match: func(token string) (string, bool) {
			if strings.HasPrefix(token, prefix) {
				return token[len(prefix):], true
			}
			return "", false
		},
		apply: apply,
	}
}

// keyword matches bare words from a fixed table
func keyword(table map[string]func(p *Point)) setting {
	return setting{
		match: func(token string) (string, bool) {
			_, ok := table[token]
			return token, ok
		},
		apply: func(p *Point, arg string) {
			table[arg](p)
		},
	}
}

var textAligns = []struct {
	name  string
	align TextAlign
}{
	{"left", AlignLeft},
	{"center", AlignCenter},
	{"right", AlignRight},
}

var keywords = map[string]func(p *Point){
	"fill":     func(p *Point) { p.BackgroundScale = ScaleFill },
	"fit":      func(p *Point) { p.BackgroundScale = ScaleFit },
	"stretch":  func(p *Point) { p.BackgroundScale = ScaleStretch },
	"unscaled": func(p *Point) { p.BackgroundScale = ScaleUnscaled },

	"center":       func(p *Point) { p.Position = PositionCenter },
	"top":          func(p *Point) { p.Position = PositionNorth },
	"bottom":       func(p *Point) { p.Position = PositionSouth },
	"left":         func(p *Point) { p.Position = PositionWest },
	"right":        func(p *Point) { p.Position = PositionEast },
	"top-left":     func(p *Point) { p.Position = PositionNorthWest },
	"top-right":    func(p *Point) { p.Position = PositionNorthEast },
	"bottom-left":  func(p *Point) { p.Position = PositionSouthWest },
	"bottom-right": func(p *Point) { p.Position = PositionSouthEast },

	"no-markup": func(p *Point) { p.UseMarkup = false },
	"markup":    func(p *Point) { p.UseMarkup = true },
}

// settings is evaluated top to bottom, first match wins
var settings = []setting{
	prefixed("stage-color", func(p *Point, v string) { p.StageColor = v }),
	prefixed("font", func(p *Point, v string) { p.Font = v }),
	prefixed("text-color", func(p *Point, v string) { p.TextColor = v }),
	prefixed("text-align", func(p *Point, v string) { p.TextAlign = lookupAlign(v) }),
	prefixed("shading-color", func(p *Point, v string) { p.ShadingColor = v }),
	prefixed("shading-opacity", func(p *Point, v string) { p.ShadingOpacity = parseOpacity(v) }),
	prefixed("command", func(p *Point, v string) { p.Command = v }),
	prefixed("transition", func(p *Point, v string) { p.Transition = v }),
	keyword(keywords),
}

// ApplySetting interprets a single bracketed token and updates p.
// Anything the grammar does not recognize names the background.
func ApplySetting(p *Point, token string) {
	for _, s := range settings {
		if arg, ok := s.match(token); ok {
			s.apply(p, arg)
			return
		}
	}
	p.Background = token
}

// ApplyConfigLine applies every [token] found in a config line, in order
func ApplyConfigLine(p *Point, line string) {
	for _, token := range configTokens(line) {
		ApplySetting(p, token)
	}
}

// configTokens extracts the bracketed tokens of a config line.
// A token runs to the next ']' or newline; an unclosed one runs to the end.
func configTokens(line string) []string {
	var tokens []string
	for i := 0; i < len(line); i++ {
		if line[i] != '[' {
			continue
		}
		start := i + 1
		end := start
		for end < len(line) && line[end] != ']' && line[end] != '\n' {
			end++
		}
		tokens = append(tokens, line[start:end])
		i = end
	}
	return tokens
}

func lookupAlign(name string) TextAlign {
	for _, a := range textAligns {
		if a.name == name {
			return a.align
		}
	}
	return textAligns[0].align
}

var floatPrefix = regexp.MustCompile(`^\s*[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// parseOpacity reads the leading number of s, 0 when there is none
func parseOpacity(s string) float64 {
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return 0
	}
	return v
}
