package render

import (
	"fmt"
	"strconv"
	"strings"

	"podder.dev/internal/resume"
)

// DefaultAccent is the teal used for the name and section headings
const DefaultAccent = "#17a2b8"

// Color is an RGB color with 0-255 components
type Color struct {
	R, G, B int
}

// Black is the default text color
var Black = Color{0, 0, 0}

// ParseHexColor converts "#rrggbb" (the # is optional) to a Color
func ParseHexColor(hex string) (Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Alignment values understood by the layout engine
const (
	AlignLeft    = "L"
	AlignCenter  = "C"
	AlignJustify = "J"
)

// TextStyle describes how one kind of paragraph is set
type TextStyle struct {
	Family      string
	Bold        bool
	Size        float64
	Color       Color
	Align       string
	SpaceBefore float64
	SpaceAfter  float64

	// Border draws a frame of BorderWidth around the paragraph,
	// with Padding between frame and text
	Border      bool
	BorderColor Color
	BorderWidth float64
	Padding     float64
}

// Leading is the baseline-to-baseline distance
func (s TextStyle) Leading() float64 {
	return s.Size * 1.2
}

// StyleSheet maps the style tags of resume blocks to text styles
type StyleSheet map[resume.Style]TextStyle

// Lookup returns the style for tag, falling back to the body style
func (ss StyleSheet) Lookup(tag resume.Style) TextStyle {
	if s, ok := ss[tag]; ok {
		return s
	}
	return ss[resume.StyleBody]
}

// DefaultStyles returns the fixed resume style table with the given accent
func DefaultStyles(accent Color) StyleSheet {
	return StyleSheet{
		resume.StyleTitle: {
			Family:     "Helvetica",
			Bold:       true,
			Size:       24,
			Color:      accent,
			Align:      AlignCenter,
			SpaceAfter: 12,
		},
		resume.StyleSubtitle: {
			Family:      "Helvetica",
			Bold:        true,
			Size:        12,
			Color:       Black,
			Align:       AlignLeft,
			SpaceBefore: 6,
			SpaceAfter:  6,
		},
		resume.StyleHeading: {
			Family:      "Helvetica",
			Bold:        true,
			Size:        14,
			Color:       accent,
			Align:       AlignLeft,
			SpaceBefore: 12,
			SpaceAfter:  6,
			Border:      true,
			BorderColor: accent,
			BorderWidth: 1,
			Padding:     3,
		},
		resume.StyleSubHeading: {
			Family:      "Helvetica",
			Bold:        true,
			Size:        12,
			Color:       Black,
			Align:       AlignLeft,
			SpaceBefore: 6,
			SpaceAfter:  3,
		},
		resume.StyleBody: {
			Family:     "Helvetica",
			Size:       10,
			Color:      Black,
			Align:      AlignJustify,
			SpaceAfter: 3,
		},
	}
}

// PageSetup is the page geometry in points
type PageSetup struct {
	Size   string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultPage is A4 with 72pt sides and top and an 18pt bottom margin
func DefaultPage() PageSetup {
	return PageSetup{
		Size:   "A4",
		Left:   72,
		Right:  72,
		Top:    72,
		Bottom: 18,
	}
}
