package export

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gubarz/pinpoint/internal/parser"
)

func newTestExporter(t *testing.T, dir string) *Exporter {
	t.Helper()
	e, err := New(160, 120, dir, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRenderStageAndBackgroundColor(t *testing.T) {
	e := newTestExporter(t, "")
	deck := &parser.Deck{}
	parser.NewParser(e, nil).Parse(deck, "-- [stage-color=red]\n--[blue]\n")

	tests := []struct {
		index    int
		expected color.NRGBA
	}{
		{0, color.NRGBA{255, 0, 0, 255}},
		{1, color.NRGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		img := Page(deck.Points[tt.index])
		if img == nil {
			t.Fatalf("slide %d: expected rendered page", tt.index)
		}
		if got := rgbaAt(img, 5, 5); got != tt.expected {
			t.Errorf("slide %d: expected %v, got %v", tt.index, tt.expected, got)
		}
	}
}

func TestRenderImageBackgroundStretch(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "green.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e := newTestExporter(t, dir)
	deck := &parser.Deck{}
	parser.NewParser(e, nil).Parse(deck, "-- [green.png][stretch]")

	if deck.Points[0].BackgroundKind != parser.BackgroundImage {
		t.Fatalf("expected image background, got %s", deck.Points[0].BackgroundKind)
	}
	img := Page(deck.Points[0])
	if got := rgbaAt(img, 1, 1); got.G < 200 || got.R > 50 {
		t.Errorf("expected stretched green corner, got %v", got)
	}
}

func TestRenderMissingBackgroundKeepsStage(t *testing.T) {
	e := newTestExporter(t, t.TempDir())
	deck := &parser.Deck{}
	parser.NewParser(e, nil).Parse(deck, "-- [missing.jpg][stage-color=white]")

	if got := rgbaAt(Page(deck.Points[0]), 2, 2); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("expected white stage, got %v", got)
	}
}

func TestRenderTextDrawsSomething(t *testing.T) {
	e := newTestExporter(t, "")
	deck := &parser.Deck{}
	parser.NewParser(e, nil).Parse(deck, "-- [shading-opacity=0]\nWWWW")

	img := Page(deck.Points[1])
	lit := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y).R > 128 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Errorf("expected white text pixels on black stage")
	}
}

func TestWritePNGs(t *testing.T) {
	dir := t.TempDir()
	e := newTestExporter(t, "")
	deck := &parser.Deck{}
	parser.NewParser(e, nil).Parse(deck, "A\n--\nB\n--\nC")

	written, err := e.WritePNGs(deck, filepath.Join(dir, "out", "talk.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 files, got %d", len(written))
	}
	if filepath.Base(written[2]) != "talk-003.png" {
		t.Errorf("expected talk-003.png, got %s", filepath.Base(written[2]))
	}
	for _, path := range written {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}
}

func TestFreeDataDropsPage(t *testing.T) {
	e := newTestExporter(t, "")
	p := parser.NewParser(e, nil)
	deck := &parser.Deck{}
	p.Parse(deck, "A")
	point := deck.Points[0]

	p.Release(deck)
	if Page(point) != nil {
		t.Errorf("expected page to be released")
	}
}

func TestCheckTarget(t *testing.T) {
	if err := CheckTarget("talk.PNG"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckTarget("talk.pdf"); !errors.Is(err, ErrUnsupportedOutput) {
		t.Errorf("expected ErrUnsupportedOutput, got %v", err)
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		desc     string
		expected float64
	}{
		{"Sans 60px", 60},
		{"Sans Bold 24px", 24},
		{"Monospace 18", 18},
		{"Serif 12.5px", 12.5},
		{"Sans", 60},
		{"", 60},
	}
	for _, tt := range tests {
		if got := fontSize(tt.desc); got != tt.expected {
			t.Errorf("fontSize(%q): expected %v, got %v", tt.desc, tt.expected, got)
		}
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		pos  parser.Position
		x, y float64
	}{
		{parser.PositionCenter, 40, 40},
		{parser.PositionNorthWest, 5, 5},
		{parser.PositionSouthEast, 75, 75},
		{parser.PositionNorth, 40, 5},
		{parser.PositionWest, 5, 40},
	}
	for _, tt := range tests {
		x, y := anchor(tt.pos, 100, 100, 20, 20, 5)
		if x != tt.x || y != tt.y {
			t.Errorf("%s: expected (%v,%v), got (%v,%v)", tt.pos, tt.x, tt.y, x, y)
		}
	}
}
