package parser

import "fmt"

// BackgroundKind classifies what a slide's background reference points at
type BackgroundKind int

const (
	BackgroundNone BackgroundKind = iota
	BackgroundImage
	BackgroundSVG
	BackgroundVideo
	BackgroundColor
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundImage:
		return "image"
	case BackgroundSVG:
		return "svg"
	case BackgroundVideo:
		return "video"
	case BackgroundColor:
		return "color"
	default:
		return "none"
	}
}

// ScaleMode controls how a background is fitted to the stage
type ScaleMode int

const (
	ScaleFit ScaleMode = iota
	ScaleFill
	ScaleStretch
	ScaleUnscaled
)

func (s ScaleMode) String() string {
	switch s {
	case ScaleFill:
		return "fill"
	case ScaleStretch:
		return "stretch"
	case ScaleUnscaled:
		return "unscaled"
	default:
		return "fit"
	}
}

// Position is the compass anchor of the slide text on the stage
type Position int

const (
	PositionCenter Position = iota
	PositionNorth
	PositionSouth
	PositionEast
	PositionWest
	PositionNorthEast
	PositionNorthWest
	PositionSouthEast
	PositionSouthWest
)

var positionNames = [...]string{
	PositionCenter:    "center",
	PositionNorth:     "top",
	PositionSouth:     "bottom",
	PositionEast:      "right",
	PositionWest:      "left",
	PositionNorthEast: "top-right",
	PositionNorthWest: "top-left",
	PositionSouthEast: "bottom-right",
	PositionSouthWest: "bottom-left",
}

func (p Position) String() string {
	if int(p) >= 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// TextAlign is the alignment of lines within the text block
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Data is the opaque per-slide handle owned by a Renderer.
// The parser carries it but never looks inside.
type Data any

// Point is one slide: its body text plus the full inherited configuration.
// Empty strings mean "not set" for the optional fields.
type Point struct {
	StageColor string

	Background      string
	BackgroundKind  BackgroundKind
	BackgroundScale ScaleMode

	Text     string
	Position Position
	Font     string

	TextColor string
	TextAlign TextAlign
	UseMarkup bool

	ShadingColor   string
	ShadingOpacity float64

	Transition string
	Command    string

	Data Data
}

// DefaultPoint returns the built-in baseline every deck starts from
func DefaultPoint() Point {
	return Point{
		StageColor:      "black",
		BackgroundKind:  BackgroundNone,
		BackgroundScale: ScaleFit,
		Position:        PositionCenter,
		Font:            "Sans 60px",
		TextColor:       "white",
		TextAlign:       AlignLeft,
		UseMarkup:       true,
		ShadingColor:    "black",
		ShadingOpacity:  0.66,
	}
}

// inherit copies every attribute of src into p, keeping p's own renderer data
func (p *Point) inherit(src *Point) {
	data := p.Data
	*p = *src
	p.Data = data
}

// SameAttributes reports whether two points carry equal values, ignoring renderer data
func (p *Point) SameAttributes(o *Point) bool {
	a, b := *p, *o
	a.Data, b.Data = nil, nil
	return a == b
}
