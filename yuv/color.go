package yuv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor indicates a color specifier that is neither a known name
// nor a well-formed hex triple.
var ErrInvalidColor = errors.New("invalid color specifier")

// Color is a fill color in constrained-range YCbCr with a coverage alpha.
// A is 0 for fully transparent and 255 for fully opaque.
type Color struct {
	Y uint8
	U uint8
	V uint8
	A uint8
}

// Fixed-point CCIR 601 forward matrix, 10 bits of fraction. The 219/255 and
// 224/255 factors fold the full-range RGB input into broadcast range.
const (
	scaleBits = 10
	oneHalf   = 1 << (scaleBits - 1)
)

func fix(x float64) int {
	return int(x*(1<<scaleBits) + 0.5)
}

var (
	coefYR = fix(0.299 * 219.0 / 255.0)
	coefYG = fix(0.587 * 219.0 / 255.0)
	coefYB = fix(0.114 * 219.0 / 255.0)

	coefUR = fix(0.16874 * 224.0 / 255.0)
	coefUG = fix(0.33126 * 224.0 / 255.0)
	coefUB = fix(0.50000 * 224.0 / 255.0)

	coefVR = fix(0.50000 * 224.0 / 255.0)
	coefVG = fix(0.41869 * 224.0 / 255.0)
	coefVB = fix(0.08131 * 224.0 / 255.0)
)

// FromRGBA converts a full-range RGBA quad to a constrained-range Color.
// The alpha channel passes through untouched.
func FromRGBA(r, g, b, a uint8) Color {
	ri, gi, bi := int(r), int(g), int(b)
	return Color{
		Y: uint8(((coefYR*ri + coefYG*gi + coefYB*bi + oneHalf) >> scaleBits) + 16),
		U: uint8(((-coefUR*ri - coefUG*gi + coefUB*bi + oneHalf - 1) >> scaleBits) + 128),
		V: uint8(((coefVR*ri - coefVG*gi - coefVB*bi + oneHalf - 1) >> scaleBits) + 128),
		A: a,
	}
}

// namedColors maps CSS color names to packed 0xRRGGBB values.
var namedColors = map[string]uint32{
	"black":   0x000000,
	"white":   0xFFFFFF,
	"red":     0xFF0000,
	"lime":    0x00FF00,
	"blue":    0x0000FF,
	"green":   0x008000,
	"yellow":  0xFFFF00,
	"cyan":    0x00FFFF,
	"magenta": 0xFF00FF,
	"gray":    0x808080,
	"grey":    0x808080,
	"silver":  0xC0C0C0,
	"maroon":  0x800000,
	"navy":    0x000080,
	"olive":   0x808000,
	"teal":    0x008080,
	"purple":  0x800080,
	"orange":  0xFFA500,
	"pink":    0xFFC0CB,
	"brown":   0xA52A2A,
	"violet":  0xEE82EE,
}

// ParseColor resolves a color specifier to a Color. Accepted forms are a
// case-insensitive color name, #RRGGBB, #RRGGBBAA, 0xRRGGBB, or 0xRRGGBBAA.
// When the specifier carries no alpha digits the color is fully opaque.
func ParseColor(spec string) (Color, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty specifier", ErrInvalidColor)
	}

	if rgb, ok := namedColors[strings.ToLower(s)]; ok {
		return FromRGBA(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255), nil
	}

	hex := s
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		return Color{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, spec)
	}

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q needs 6 or 8 hex digits", ErrInvalidColor, spec)
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q is not valid hex", ErrInvalidColor, spec)
	}

	alpha := uint8(255)
	if len(hex) == 8 {
		alpha = uint8(val)
		val >>= 8
	}
	return FromRGBA(uint8(val>>16), uint8(val>>8), uint8(val), alpha), nil
}

// Opacity returns the color's alpha normalized to [0,1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255.0
}

// String renders the color for logs.
func (c Color) String() string {
	return fmt.Sprintf("yuv(%d,%d,%d,a=%d)", c.Y, c.U, c.V, c.A)
}
