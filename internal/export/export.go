// Package export renders a deck to still images.
//
// Exporter implements parser.Renderer: every completed slide is drawn into
// its own page as the parser emits it, and WritePNGs saves the pages once
// the pass is over.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gubarz/pinpoint/internal/logger"
	"github.com/gubarz/pinpoint/internal/parser"
)

// ErrUnsupportedOutput is returned for export targets other than .png
var ErrUnsupportedOutput = errors.New("unsupported output format (supported: png)")

const (
	// stageHeight is the height font sizes are written against
	stageHeight = 600.0
	lineSpacing = 1.2
	defaultSize = 60.0
)

// page is the per-slide renderer data
type page struct {
	img image.Image
}

// Exporter draws slides with gg
type Exporter struct {
	width   int
	height  int
	baseDir string
	font    *truetype.Font
	faces   map[float64]font.Face
	images  map[string]image.Image
	log     *logger.Logger
}

// New creates an exporter producing width x height pages.
// Relative background paths resolve against baseDir; an empty fontFile
// selects the bundled Go Regular face.
func New(width, height int, baseDir, fontFile string, log *logger.Logger) (*Exporter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid export size %dx%d", width, height)
	}

	raw := goregular.TTF
	if fontFile != "" {
		b, err := os.ReadFile(fontFile)
		if err != nil {
			return nil, fmt.Errorf("could not load font: %w", err)
		}
		raw = b
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse font: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Exporter{
		width:   width,
		height:  height,
		baseDir: baseDir,
		font:    f,
		faces:   make(map[float64]font.Face),
		images:  make(map[string]image.Image),
		log:     log.With("renderer", "export"),
	}, nil
}

// CheckTarget validates an export path before any work is done
func CheckTarget(target string) error {
	if !strings.EqualFold(filepath.Ext(target), ".png") {
		return fmt.Errorf("%s: %w", target, ErrUnsupportedOutput)
	}
	return nil
}

// ============================================================================
// parser.Renderer
// ============================================================================

func (e *Exporter) AllocateData() parser.Data {
	return &page{}
}

func (e *Exporter) FreeData(data parser.Data) {
	if pg, ok := data.(*page); ok {
		pg.img = nil
	}
}

func (e *Exporter) MakePoint(point *parser.Point) {
	pg, ok := point.Data.(*page)
	if !ok {
		return
	}
	pg.img = e.render(point)
}

// ============================================================================
// Output
// ============================================================================

// WritePNGs saves one numbered PNG per slide next to target
// (talk.png becomes talk-001.png, talk-002.png, ...)
func (e *Exporter) WritePNGs(deck *parser.Deck, target string) ([]string, error) {
	if err := CheckTarget(target); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	stem := strings.TrimSuffix(target, filepath.Ext(target))
	var written []string
	for i, point := range deck.Points {
		pg, ok := point.Data.(*page)
		if !ok || pg.img == nil {
			return written, fmt.Errorf("slide %d was not rendered", i+1)
		}
		path := fmt.Sprintf("%s-%03d.png", stem, i+1)
		if err := gg.SavePNG(path, pg.img); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Page returns the rendered image of a slide, nil if it has none
func Page(point *parser.Point) image.Image {
	if pg, ok := point.Data.(*page); ok {
		return pg.img
	}
	return nil
}

// ============================================================================
// Drawing
// ============================================================================

func (e *Exporter) render(point *parser.Point) image.Image {
	w, h := float64(e.width), float64(e.height)
	dc := gg.NewContext(e.width, e.height)

	dc.SetColor(colorOr(point.StageColor, color.Black))
	dc.Clear()

	switch point.BackgroundKind {
	case parser.BackgroundColor:
		dc.SetColor(colorOr(point.Background, color.Black))
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	case parser.BackgroundImage:
		if bg := e.loadImage(point.Background); bg != nil {
			dc.DrawImage(scaleBackground(bg, e.width, e.height, point.BackgroundScale), 0, 0)
		}
	case parser.BackgroundSVG, parser.BackgroundVideo:
		e.log.Debug("background kind has no still rasterizer", "background", point.Background, "kind", point.BackgroundKind.String())
	}

	text := point.PlainText()
	if strings.TrimSpace(text) == "" {
		return dc.Image()
	}

	size := fontSize(point.Font) * h / stageHeight
	dc.SetFontFace(e.face(size))
	tw, th := dc.MeasureMultilineString(text, lineSpacing)

	// shrink to fit 90% of the stage
	if fit := min(0.9*w/tw, 0.9*h/th); fit < 1 {
		size *= fit
		dc.SetFontFace(e.face(size))
		tw, th = dc.MeasureMultilineString(text, lineSpacing)
	}

	margin := 0.05 * h
	x, y := anchor(point.Position, w, h, tw, th, margin)

	if point.ShadingOpacity > 0 {
		shade := toNRGBA(colorOr(point.ShadingColor, color.Black))
		shade.A = uint8(clampUnit(point.ShadingOpacity) * 255)
		pad := margin / 2
		dc.SetColor(shade)
		dc.DrawRectangle(x-pad, y-pad, tw+2*pad, th+2*pad)
		dc.Fill()
	}

	dc.SetColor(colorOr(point.TextColor, color.White))
	dc.DrawStringWrapped(text, x, y, 0, 0, tw+1, lineSpacing, ggAlign(point.TextAlign))
	return dc.Image()
}

func (e *Exporter) face(size float64) font.Face {
	if f, ok := e.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(e.font, &truetype.Options{Size: size})
	e.faces[size] = f
	return f
}

// loadImage decodes a background once per exporter
func (e *Exporter) loadImage(ref string) image.Image {
	path := ref
	if !filepath.IsAbs(path) && e.baseDir != "" {
		path = filepath.Join(e.baseDir, path)
	}
	if img, ok := e.images[path]; ok {
		return img
	}

	var img image.Image
	f, err := os.Open(path)
	if err == nil {
		img, _, err = image.Decode(f)
		f.Close()
	}
	if err != nil {
		e.log.Warn("could not load background", "path", path, "error", err)
		img = nil
	}
	e.images[path] = img
	return img
}

// scaleBackground places src on a width x height canvas according to mode
func scaleBackground(src image.Image, width, height int, mode parser.ScaleMode) image.Image {
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	w, h := float64(width), float64(height)

	var dw, dh float64
	switch mode {
	case parser.ScaleStretch:
		dw, dh = w, h
	case parser.ScaleFill:
		s := max(w/sw, h/sh)
		dw, dh = sw*s, sh*s
	case parser.ScaleUnscaled:
		dw, dh = sw, sh
	default:
		s := min(w/sw, h/sh)
		dw, dh = sw*s, sh*s
	}

	x0 := int((w - dw) / 2)
	y0 := int((h - dh) / 2)
	dr := image.Rect(x0, y0, x0+int(dw+0.5), y0+int(dh+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dr, src, sb, xdraw.Over, nil)
	return dst
}

// anchor returns the top-left corner of a tw x th block placed at pos
func anchor(pos parser.Position, w, h, tw, th, margin float64) (float64, float64) {
	x := (w - tw) / 2
	y := (h - th) / 2

	switch pos {
	case parser.PositionNorth, parser.PositionNorthEast, parser.PositionNorthWest:
		y = margin
	case parser.PositionSouth, parser.PositionSouthEast, parser.PositionSouthWest:
		y = h - th - margin
	}
	switch pos {
	case parser.PositionWest, parser.PositionNorthWest, parser.PositionSouthWest:
		x = margin
	case parser.PositionEast, parser.PositionNorthEast, parser.PositionSouthEast:
		x = w - tw - margin
	}
	return x, y
}

func ggAlign(a parser.TextAlign) gg.Align {
	switch a {
	case parser.AlignCenter:
		return gg.AlignCenter
	case parser.AlignRight:
		return gg.AlignRight
	default:
		return gg.AlignLeft
	}
}

var fontPixels = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(px)?\s*$`)

// fontSize extracts the size from a font description such as "Sans Bold 60px"
func fontSize(desc string) float64 {
	m := fontPixels.FindStringSubmatch(desc)
	if m == nil {
		return defaultSize
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return defaultSize
	}
	return v
}

func colorOr(spec string, fallback color.Color) color.Color {
	if c, ok := parser.ParseColor(spec); ok {
		return c
	}
	return fallback
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
