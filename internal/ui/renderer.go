package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gubarz/pinpoint/internal/parser"
)

// ============================================================================
// Slide View - per-slide renderer data
// ============================================================================

// slideView caches the rendered slide for one terminal size
type slideView struct {
	width    int
	height   int
	rendered string
	freed    bool
}

// ============================================================================
// Terminal Renderer
// ============================================================================

// Renderer draws slides into the terminal with lipgloss.
// It implements parser.Renderer; slides are pre-rendered as the parser
// completes them and re-rendered lazily after a resize.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a terminal renderer with a provisional size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// SetSize updates the area slides are drawn into
func (r *Renderer) SetSize(width, height int) {
	r.width = maxInt(width, 1)
	r.height = maxInt(height, 1)
}

func (r *Renderer) AllocateData() parser.Data {
	return &slideView{}
}

func (r *Renderer) FreeData(data parser.Data) {
	if sv, ok := data.(*slideView); ok {
		sv.rendered = ""
		sv.freed = true
	}
}

func (r *Renderer) MakePoint(point *parser.Point) {
	r.View(point)
}

// View returns the slide drawn at the current size
func (r *Renderer) View(point *parser.Point) string {
	sv, ok := point.Data.(*slideView)
	if !ok || sv.freed {
		return r.render(point)
	}
	if sv.width != r.width || sv.height != r.height || sv.rendered == "" {
		sv.width, sv.height = r.width, r.height
		sv.rendered = r.render(point)
	}
	return sv.rendered
}

func (r *Renderer) render(point *parser.Point) string {
	stage := stageColor(point)
	fg := parser.ColorHex(point.TextColor, "#ffffff")

	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(stage)).
		Align(textAlign(point.TextAlign)).
		MaxWidth(r.width)

	if point.ShadingOpacity > 0 {
		block = block.
			Background(lipgloss.Color(shade(point.ShadingColor, stage, point.ShadingOpacity))).
			Padding(0, 1)
	}

	text := point.PlainText()
	body := ""
	if text != "" {
		body = block.Render(text)
	}

	hpos, vpos := placement(point.Position)
	return lipgloss.Place(r.width, r.height, hpos, vpos, body,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(stage)))
}

// stageColor is the terminal background of a slide
func stageColor(point *parser.Point) string {
	stage := parser.ColorHex(point.StageColor, "#000000")
	if point.BackgroundKind == parser.BackgroundColor {
		return parser.ColorHex(point.Background, stage)
	}
	return stage
}

// shade mixes the shading color over the stage with the given opacity
func shade(spec, stage string, opacity float64) string {
	over, err := colorful.Hex(parser.ColorHex(spec, "#000000"))
	if err != nil {
		return stage
	}
	under, err := colorful.Hex(stage)
	if err != nil {
		return over.Hex()
	}
	if opacity > 1 {
		opacity = 1
	}
	return under.BlendRgb(over, opacity).Clamped().Hex()
}

func textAlign(a parser.TextAlign) lipgloss.Position {
	switch a {
	case parser.AlignCenter:
		return lipgloss.Center
	case parser.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// placement maps a compass position to lipgloss horizontal and vertical anchors
func placement(pos parser.Position) (lipgloss.Position, lipgloss.Position) {
	h, v := lipgloss.Center, lipgloss.Center

	switch pos {
	case parser.PositionNorth, parser.PositionNorthEast, parser.PositionNorthWest:
		v = lipgloss.Top
	case parser.PositionSouth, parser.PositionSouthEast, parser.PositionSouthWest:
		v = lipgloss.Bottom
	}
	switch pos {
	case parser.PositionWest, parser.PositionNorthWest, parser.PositionSouthWest:
		h = lipgloss.Left
	case parser.PositionEast, parser.PositionNorthEast, parser.PositionSouthEast:
		h = lipgloss.Right
	}
	return h, v
}

// backgroundCaption describes a background the terminal cannot show
func backgroundCaption(point *parser.Point) string {
	switch point.BackgroundKind {
	case parser.BackgroundImage, parser.BackgroundSVG, parser.BackgroundVideo:
		return fmt.Sprintf("%s: %s (%s)", point.BackgroundKind, point.Background, point.BackgroundScale)
	default:
		return ""
	}
}

// countLines returns the number of lines in s
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
