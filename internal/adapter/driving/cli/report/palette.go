package report

import "github.com/fatih/color"

var (
	boldStyle   = color.New(color.Bold)
	greenStyle  = color.New(color.FgGreen)
	redStyle    = color.New(color.FgRed)
	yellowStyle = color.New(color.FgYellow)
)

func init() {
	// Palette decides whether to style; the styles themselves always emit codes.
	for _, c := range []*color.Color{boldStyle, greenStyle, redStyle, yellowStyle} {
		c.EnableColor()
	}
}

// Palette styles terminal text. The zero value renders plain text.
type Palette struct {
	enabled bool
}

// NewPalette returns a palette that emits ANSI styles when enabled is true.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

func (p Palette) apply(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

// Bold styles group keys and headers.
func (p Palette) Bold(s string) string { return p.apply(boldStyle, s) }

// Good styles a favorable change.
func (p Palette) Good(s string) string { return p.apply(greenStyle, s) }

// Bad styles an unfavorable change and error messages.
func (p Palette) Bad(s string) string { return p.apply(redStyle, s) }

// Neutral styles an unchanged value marker and warnings.
func (p Palette) Neutral(s string) string { return p.apply(yellowStyle, s) }
