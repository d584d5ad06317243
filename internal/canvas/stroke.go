package canvas

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// Point is a pointer position in display coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one recorded pointer path, as captured by a client that sends
// vectors instead of rasterizing locally. Width is in display-pixel units.
type Stroke struct {
	Tool   string  `json:"tool"`
	Color  string  `json:"color,omitempty"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
}

// Render replays recorded strokes over the base image and exports the
// flattened PNG. displayW/displayH describe the size the points were captured
// against; zero values fall back to the native size.
func Render(base io.Reader, displayW, displayH float64, strokes []Stroke) ([]byte, error) {
	c := New()
	if err := c.Load(base); err != nil {
		return nil, err
	}
	c.SetDisplaySize(displayW, displayH)

	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		if strings.EqualFold(s.Tool, "eraser") {
			c.SetTool(ToolEraser)
		} else {
			c.SetTool(ToolPen)
			col, err := ParseHexColor(s.Color)
			if err != nil {
				return nil, err
			}
			c.SetColor(col)
		}
		c.SetLineWidth(s.Width)

		if err := c.StrokeStart(s.Points[0].X, s.Points[0].Y); err != nil {
			return nil, err
		}
		for _, p := range s.Points[1:] {
			c.StrokeMove(p.X, p.Y)
		}
		c.StrokeEnd()
	}

	return c.Export()
}

// ParseHexColor parses "#RGB" and "#RRGGBB" into an opaque color. An empty
// string yields the editor's default red.
func ParseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 0xFF, A: 0xFF}, nil
	}
	s = strings.TrimPrefix(s, "#")

	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
