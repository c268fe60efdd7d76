package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack      = color.RGBA{0, 0, 0, 255}
	ColorWhite      = color.RGBA{255, 255, 255, 255}
	ColorRed        = color.RGBA{255, 0, 0, 255}
	ColorGreen      = color.RGBA{0, 255, 0, 255}
	ColorBlue       = color.RGBA{0, 0, 255, 255}
	ColorGray       = color.RGBA{128, 128, 128, 255}
	ColorBackground = color.RGBA{59, 59, 59, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// PackRGB packs a color into the frame buffer's 0x00RRGGBB format.
func PackRGB(c Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackRGB expands a 0x00RRGGBB pixel into an opaque color.
func UnpackRGB(p uint32) Color {
	return Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255}
}

// ScaleColor multiplies each channel by intensity, truncating the result.
// Channels saturate at 255.
func ScaleColor(c Color, intensity float32) Color {
	return Color{
		R: scaleChannel(c.R, intensity),
		G: scaleChannel(c.G, intensity),
		B: scaleChannel(c.B, intensity),
		A: c.A,
	}
}

func scaleChannel(v uint8, f float32) uint8 {
	s := float32(v) * f
	switch {
	case s >= 255:
		return 255
	case s > 0:
		return uint8(s)
	default:
		return 0
	}
}

// AddColor adds two colors channel-wise, saturating at 255.
func AddColor(a, b Color) Color {
	return Color{
		R: addChannel(a.R, b.R),
		G: addChannel(a.G, b.G),
		B: addChannel(a.B, b.B),
		A: 255,
	}
}

func addChannel(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 255 {
		return uint8(s)
	}
	return 255
}
