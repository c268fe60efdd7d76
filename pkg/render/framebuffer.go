// Package render implements the flatshade software pipeline: per-triangle
// transform and culling, painter's ordering, flat shading and scanline fill.
package render

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// Framebuffer holds packed 0x00RRGGBB pixels.
//
// Pixels are stored top row first. The drawing methods address pixels with
// y = 0 at the bottom of the screen; the *Row methods use y = 0 at the top.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Resize changes the dimensions, reallocating only when the buffer grows.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width, fb.Height = width, height
	if n := width * height; n <= cap(fb.Pixels) {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]uint32, n)
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	p := PackRGB(c)
	for i := range fb.Pixels {
		fb.Pixels[i] = p
	}
}

// index maps bottom-left coordinates to a slice index. Callers check bounds.
func (fb *Framebuffer) index(x, y int) int {
	return (fb.Height-y-1)*fb.Width + x
}

// SetPixel sets a pixel at (x, y), origin bottom-left.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[fb.index(x, y)] = PackRGB(c)
}

// Pixel returns the color at (x, y), origin bottom-left.
// Returns transparent black if out of bounds.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return UnpackRGB(fb.Pixels[fb.index(x, y)])
}

// PixelRow returns the color at column x of row, origin top-left.
func (fb *Framebuffer) PixelRow(x, row int) Color {
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return Color{}
	}
	return UnpackRGB(fb.Pixels[row*fb.Width+x])
}

// AddPixelRow adds c to the pixel at column x of row (origin top-left),
// saturating each channel.
func (fb *Framebuffer) AddPixelRow(x, row int, c Color) {
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return
	}
	i := row*fb.Width + x
	fb.Pixels[i] = PackRGB(AddColor(UnpackRGB(fb.Pixels[i]), c))
}

// DrawHorizontalLine fills row y from x1 to x2 inclusive, in either order.
// Rows outside the buffer are skipped and the span is clamped to its width.
func (fb *Framebuffer) DrawHorizontalLine(x1, x2, y int, c Color) {
	if y < 0 || y >= fb.Height {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x2 < 0 || x1 >= fb.Width {
		return
	}
	x1 = max(x1, 0)
	x2 = min(x2, fb.Width-1)

	p := PackRGB(c)
	row := fb.Pixels[fb.index(0, y):]
	for x := x1; x <= x2; x++ {
		row[x] = p
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the frame as opaque RGBA bytes, top row first, into dst,
// which must hold at least 4*Width*Height bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, p := range fb.Pixels {
		o := i * 4
		dst[o] = uint8(p >> 16)
		dst[o+1] = uint8(p >> 8)
		dst[o+2] = uint8(p)
		dst[o+3] = 255
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return errors.Wrap(err, "encode png")
	}
	return errors.Wrap(f.Close(), "close png")
}
