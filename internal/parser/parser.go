package parser

import (
	"fmt"
	"os"
	"strings"
	"unique"
)

// Renderer is the presentation backend the parser feeds.
// The parser allocates and frees per-slide data only through these hooks.
type Renderer interface {
	AllocateData() Data
	FreeData(data Data)
	MakePoint(point *Point)
}

// Deck is the ordered list of slides plus the slide being shown
type Deck struct {
	Points  []*Point
	Current int

	// Source is the raw text of the last completed parse pass
	Source    string
	HasSource bool
}

// CurrentPoint returns the slide at the cursor, nil for an empty deck
func (d *Deck) CurrentPoint() *Point {
	if d.Current < 0 || d.Current >= len(d.Points) {
		return nil
	}
	return d.Points[d.Current]
}

// Len returns the number of slides
func (d *Deck) Len() int {
	return len(d.Points)
}

// Move shifts the cursor by delta, clamped to the deck
func (d *Deck) Move(delta int) {
	d.Seek(d.Current + delta)
}

// Seek places the cursor at index, clamped to the deck
func (d *Deck) Seek(index int) {
	if len(d.Points) == 0 {
		d.Current = 0
		return
	}
	d.Current = clamp(index, 0, len(d.Points)-1)
}

// Parser turns presentation text into a Deck.
// Defaults is the cross-document baseline: the first slide's config line
// is folded into it on every pass and later slides inherit from it.
type Parser struct {
	renderer Renderer
	defaults *Point
}

// NewParser creates a parser feeding r. A nil defaults starts from DefaultPoint.
func NewParser(r Renderer, defaults *Point) *Parser {
	if defaults == nil {
		d := DefaultPoint()
		defaults = &d
	}
	return &Parser{
		renderer: r,
		defaults: defaults,
	}
}

// Defaults returns the persistent default record
func (p *Parser) Defaults() *Point {
	return p.defaults
}

// ParseFile reads path and runs a full parse pass over its contents
func (p *Parser) ParseFile(deck *Deck, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load presentation from %s: %w", path, err)
	}
	p.Parse(deck, string(content))
	return nil
}

// Parse replaces the whole deck with the slides of text.
// The cursor moves to the slide where text first differs from the previous source.
func (p *Parser) Parse(deck *Deck, text string) {
	resume := -1
	unchanged := false
	if deck.HasSource {
		resume = EstimateResume(deck.Source, text)
		unchanged = deck.Source == text
	}
	previous := deck.Current

	p.release(deck)

	acc := &accumulator{startOfLine: true}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\':
			i++
			if i < len(text) {
				acc.body.WriteByte(text[i])
			}
			acc.startOfLine = false
		case c == '\n':
			acc.body.WriteByte(c)
			acc.startOfLine = true
		case c == '-' && acc.startOfLine:
			end := strings.IndexByte(text[i+1:], '\n')
			if end < 0 {
				end = len(text)
			} else {
				end += i + 1
			}
			p.closeSlide(deck, acc, text[i+1:end])
			// the separator's own newline is consumed with it
			i = end
			acc.startOfLine = true
		default:
			acc.body.WriteByte(c)
			acc.startOfLine = false
		}
	}
	p.closeSlide(deck, acc, "")

	switch {
	case unchanged:
		deck.Seek(previous)
	case resume >= 0 && resume < len(deck.Points):
		deck.Current = resume
	default:
		deck.Current = 0
	}

	deck.Source = text
	deck.HasSource = true
}

// Release frees every slide through the renderer and empties the deck
func (p *Parser) Release(deck *Deck) {
	p.release(deck)
	deck.Current = 0
}

func (p *Parser) release(deck *Deck) {
	for _, point := range deck.Points {
		p.renderer.FreeData(point.Data)
		point.Data = nil
	}
	deck.Points = nil
}

// accumulator holds the state of one parse pass
type accumulator struct {
	body            strings.Builder
	startOfLine     bool
	defaultsApplied bool
}

// closeSlide finishes the slide accumulated so far with its config line
func (p *Parser) closeSlide(deck *Deck, acc *accumulator, config string) {
	point := &Point{Data: p.renderer.AllocateData()}
	point.inherit(p.defaults)

	if !acc.defaultsApplied {
		ApplyConfigLine(p.defaults, config)
		acc.defaultsApplied = true
	}
	ApplyConfigLine(point, config)

	point.Text = unique.Make(strings.Trim(acc.body.String(), "\n")).Value()
	acc.body.Reset()

	if point.Background != "" {
		point.BackgroundKind = ClassifyBackground(point.Background)
	}

	p.renderer.MakePoint(point)
	deck.Points = append(deck.Points, point)
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
