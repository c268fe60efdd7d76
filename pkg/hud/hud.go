// Package hud draws the frame statistics overlay into a framebuffer.
package hud

import (
	"fmt"
	"image/color"
	"time"

	"github.com/taigrr/flatshade/pkg/render"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Layout of the stats column.
const (
	// RowHeight is the vertical distance between lines, in pixels.
	RowHeight = 16
	// ColumnWidth is how far from the right edge the column starts.
	ColumnWidth = 280
	// baseline is the glyph baseline offset within a row.
	baseline = RowHeight - 4
)

// Stats is what the overlay reports for one frame.
type Stats struct {
	FPS       float64
	Transform time.Duration // transform and projection
	Raster    time.Duration
	Present   time.Duration
	Visible   int // triangles rasterized
}

// Lines formats the stats one entry per line.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Frame Rate       %.0f FPS", s.FPS),
		fmt.Sprintf("Trans. & Proj    %s", ms(s.Transform)),
		fmt.Sprintf("Raster           %s", ms(s.Raster)),
		fmt.Sprintf("Present          %s", ms(s.Present)),
		fmt.Sprintf("Visible tris.    %d", s.Visible),
	}
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d.Microseconds())/1000)
}

// Overlay writes text over a rendered frame. Glyph pixels are added to what
// is already there, so text stays readable over both dark and light areas of
// the scene without hiding it.
type Overlay struct {
	Font  tinyfont.Fonter
	Color color.RGBA
}

// NewOverlay creates an overlay using the small proggy font.
func NewOverlay() *Overlay {
	return &Overlay{
		Font:  &proggy.TinySZ8pt7b,
		Color: color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	}
}

// Draw writes the stats in a column at the top right of fb.
func (o *Overlay) Draw(fb *render.Framebuffer, s Stats) {
	x := max(fb.Width-ColumnWidth, 0)
	o.DrawLines(fb, x, 0, s.Lines())
}

// DrawLines writes each line one row below the previous, starting with its
// top at (x, y) in top-left screen coordinates.
func (o *Overlay) DrawLines(fb *render.Framebuffer, x, y int, lines []string) {
	d := displayer{fb: fb}
	for i, line := range lines {
		top := y + i*RowHeight
		tinyfont.WriteLine(d, o.Font, int16(x), int16(top+baseline), line, o.Color)
	}
}

// displayer lets tinyfont draw into a framebuffer.
type displayer struct {
	fb *render.Framebuffer
}

var _ drivers.Displayer = displayer{}

func (d displayer) Size() (x, y int16) {
	return int16(d.fb.Width), int16(d.fb.Height)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.fb.AddPixelRow(int(x), int(y), c)
}

func (d displayer) Display() error {
	return nil
}
