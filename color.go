package xl2html

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorKind discriminates the variants of a ColorRef.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorAuto
	ColorRGB
	ColorIndexed
	ColorTheme
)

// ColorRef is a spreadsheet color reference: automatic, literal ARGB/RGB,
// legacy indexed palette, or a theme slot plus luminance tint.
type ColorRef struct {
	Kind    ColorKind
	RGB     string  // hex digits, possibly with a leading alpha byte
	Indexed int     // legacy palette index
	Theme   int     // canonical theme slot index
	Tint    float64 // in [-1, 1], applied to the theme color's luminance
}

// AutoColor is the automatic (window text) color reference.
var AutoColor = ColorRef{Kind: ColorAuto}

// RGBColor builds a literal color reference from hex digits.
func RGBColor(hex string) ColorRef { return ColorRef{Kind: ColorRGB, RGB: hex} }

// IndexedColor builds a legacy palette color reference.
func IndexedColor(index int) ColorRef { return ColorRef{Kind: ColorIndexed, Indexed: index} }

// ThemeColor builds a theme-slot color reference with a tint.
func ThemeColor(theme int, tint float64) ColorRef {
	return ColorRef{Kind: ColorTheme, Theme: theme, Tint: tint}
}

// IsZero reports whether no color is declared.
func (c ColorRef) IsZero() bool { return c.Kind == ColorNone }

// The legacy indexed palette. Indices 64 and 65 are reserved for the system
// foreground and background colors and deliberately absent: a lookup past the
// end of this table resolves to "no color".
var indexedPalette = []string{
	"FF000000", "FFFFFFFF", "FFFF0000", "FF00FF00", "FF0000FF", "FFFFFF00", "FFFF00FF", "FF00FFFF",
	"FF000000", "FFFFFFFF", "FFFF0000", "FF00FF00", "FF0000FF", "FFFFFF00", "FFFF00FF", "FF00FFFF",
	"FF800000", "FF008000", "FF000080", "FF808000", "FF800080", "FF008080", "FFC0C0C0", "FF808080",
	"FF9999FF", "FF993366", "FFFFFFCC", "FFCCFFFF", "FF660066", "FFFF8080", "FF0066CC", "FFCCCCFF",
	"FF000080", "FFFF00FF", "FFFFFF00", "FF00FFFF", "FF800080", "FF800000", "FF008080", "FF0000FF",
	"FF00CCFF", "FFCCFFFF", "FFCCFFCC", "FFFFFF99", "FF99CCFF", "FFFF99CC", "FFCC99FF", "FFFFCC99",
	"FF3366FF", "FF33CCCC", "FF99CC00", "FFFFCC00", "FFFF9900", "FFFF6600", "FF666699", "FF969696",
	"FF003366", "FF339966", "FF003300", "FF333300", "FF993300", "FF993366", "FF333399", "FF333333",
}

const whiteHex = "#FFFFFF"

// resolveColor converts a color reference into a CSS hex color. The second
// return value is false when no color is declared; malformed input degrades
// to white rather than failing, so a single bad color can never abort a
// whole-sheet render.
func resolveColor(ref ColorRef, palette []string) (string, bool) {
	switch ref.Kind {
	case ColorAuto:
		return "#000000", true
	case ColorRGB:
		hex := lowSixHex(ref.RGB)
		if hex == "" {
			return whiteHex, true
		}
		return "#" + hex, true
	case ColorIndexed:
		if ref.Indexed < 0 || ref.Indexed >= len(indexedPalette) {
			return "", false
		}
		hex := lowSixHex(indexedPalette[ref.Indexed])
		if hex == "" {
			return "", false
		}
		return "#" + hex, true
	case ColorTheme:
		return "#" + themeAndTintToRGB(palette, ref.Theme, ref.Tint), true
	default:
		return "", false
	}
}

// lowSixHex returns the six low-order hex digits of a color string, dropping
// a leading "#" and any alpha byte, or "" when the input is not hex.
func lowSixHex(s string) string {
	s = strings.TrimPrefix(s, "#")
	if len(s) > 6 {
		s = s[len(s)-6:]
	}
	if len(s) != 6 || !isHex(s) {
		return ""
	}
	return s
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Theme tinting runs in the integer HLS space Excel uses, where hue,
// luminance and saturation all range over 0..240.
const (
	rgbMax = 0xFF
	hlsMax = 240
)

// themeAndTintToRGB resolves a theme slot and tint against the palette,
// returning six uppercase hex digits. Any failure yields white.
func themeAndTintToRGB(palette []string, theme int, tint float64) string {
	if len(palette) == 0 {
		return "FFFFFF"
	}
	base := palette[0]
	if theme >= 0 && theme < len(palette) {
		base = palette[theme]
	}
	hex := lowSixHex(base)
	if hex == "" {
		return "FFFFFF"
	}

	h, l, s := rgbToMSHLS(hex)
	r, g, b := msHLSToRGB(h, tintLuminance(tint, l), s)
	return rgbToHex(r, g, b)
}

// rgbToMSHLS converts six hex digits to HLSMAX-based HLS.
func rgbToMSHLS(hex string) (h, l, s int) {
	r := hexByte(hex[0:2]) / rgbMax
	g := hexByte(hex[2:4]) / rgbMax
	b := hexByte(hex[4:6]) / rgbMax

	fh, fl, fs := rgbToHLS(r, g, b)
	return int(math.Round(fh * hlsMax)), int(math.Round(fl * hlsMax)), int(math.Round(fs * hlsMax))
}

// msHLSToRGB converts HLSMAX-based HLS values back to (0,1) RGB.
func msHLSToRGB(h, l, s int) (r, g, b float64) {
	return hlsToRGB(float64(h)/hlsMax, float64(l)/hlsMax, float64(s)/hlsMax)
}

// tintLuminance applies an Excel tint to an HLSMAX-based luminance.
func tintLuminance(tint float64, lum int) int {
	if tint < 0 {
		return int(math.Round(float64(lum) * (1.0 + tint)))
	}
	return int(math.Round(float64(lum)*(1.0-tint) + (hlsMax - hlsMax*(1.0-tint))))
}

// rgbToHex formats (0,1) RGB components as six uppercase hex digits.
func rgbToHex(r, g, b float64) string {
	return strings.ToUpper(fmt.Sprintf("%02x%02x%02x",
		int(math.Round(r*rgbMax)), int(math.Round(g*rgbMax)), int(math.Round(b*rgbMax))))
}

func hexByte(s string) float64 {
	v, _ := strconv.ParseUint(s, 16, 16)
	return float64(v)
}

// rgbToHLS converts (0,1) RGB to (0,1) hue, luminance, saturation.
func rgbToHLS(r, g, b float64) (h, l, s float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l = (minc + maxc) / 2.0
	if minc == maxc {
		return 0, l, 0
	}
	delta := maxc - minc
	if l <= 0.5 {
		s = delta / (maxc + minc)
	} else {
		s = delta / (2.0 - maxc - minc)
	}
	rc := (maxc - r) / delta
	gc := (maxc - g) / delta
	bc := (maxc - b) / delta
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	return mod1(h / 6.0), l, s
}

// hlsToRGB converts (0,1) hue, luminance, saturation to (0,1) RGB.
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1.0 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2.0*l - m2
	return hlsComponent(m1, m2, h+1.0/3.0), hlsComponent(m1, m2, h), hlsComponent(m1, m2, h-1.0/3.0)
}

func hlsComponent(m1, m2, hue float64) float64 {
	hue = mod1(hue)
	switch {
	case hue < 1.0/6.0:
		return m1 + (m2-m1)*hue*6.0
	case hue < 0.5:
		return m2
	case hue < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-hue)*6.0
	default:
		return m1
	}
}

func mod1(x float64) float64 {
	m := math.Mod(x, 1.0)
	if m < 0 {
		m += 1.0
	}
	return m
}
