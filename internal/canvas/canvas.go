// Package canvas implements the annotation engine: a raster surface holding a
// base image at its native resolution, free-hand pen and eraser strokes fed in
// display coordinates, and a flattened PNG export. One Canvas serves one
// drawing session and is discarded after export or cancel.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// MaxDisplayHeightRatio caps the display height at this share of the viewport
// height when fitting the image into the editor.
const MaxDisplayHeightRatio = 0.6

var (
	// ErrImageLoad means the base image could not be decoded. The caller must
	// not proceed to draw and may retry Load.
	ErrImageLoad = errors.New("canvas: base image could not be decoded")

	// ErrNotLoaded means a drawing or export call arrived before Load
	// completed. That is a caller bug, not a recoverable state.
	ErrNotLoaded = errors.New("canvas: no base image loaded")
)

type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

// Canvas is single-goroutine by contract: stroke calls are ordered by input
// event arrival and never race.
type Canvas struct {
	surface *image.RGBA // composited result, native resolution
	base    *image.RGBA // pristine copy of the decoded image, for Reset

	displayW float64
	displayH float64

	tool      Tool
	color     color.RGBA
	lineWidth float64 // display-pixel units

	drawing bool
	lastX   float64
	lastY   float64
}

// New returns an empty canvas. Load must succeed before any drawing call.
func New() *Canvas {
	return &Canvas{
		tool:      ToolPen,
		color:     color.RGBA{R: 0xFF, A: 0xFF}, // red, the editor default
		lineWidth: 3,
	}
}

// Load decodes the base image and initializes the surface at the image's
// native pixel dimensions, so strokes are independent of the viewport scale.
// Until FitDisplay is called the display size equals the native size.
func (c *Canvas) Load(r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	b := img.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), img, b.Min, draw.Src)

	surface := image.NewRGBA(base.Bounds())
	copy(surface.Pix, base.Pix)

	c.base = base
	c.surface = surface
	c.displayW = float64(b.Dx())
	c.displayH = float64(b.Dy())
	c.drawing = false
	return nil
}

// Loaded reports whether Load has completed successfully.
func (c *Canvas) Loaded() bool { return c.surface != nil }

// NativeSize returns the base image's pixel dimensions.
func (c *Canvas) NativeSize() (w, h int) {
	if c.surface == nil {
		return 0, 0
	}
	b := c.surface.Bounds()
	return b.Dx(), b.Dy()
}

// FitDisplay computes and records the on-screen size: width capped at the
// container width, height at 60% of the viewport height, aspect preserved.
// The recorded size is what display coordinates are measured against.
func (c *Canvas) FitDisplay(containerW, viewportH float64) (w, h float64, err error) {
	if c.surface == nil {
		return 0, 0, ErrNotLoaded
	}
	nw, nh := c.NativeSize()
	aspect := float64(nw) / float64(nh)

	w = containerW
	h = containerW / aspect
	if maxH := viewportH * MaxDisplayHeightRatio; h > maxH {
		h = maxH
		w = maxH * aspect
	}
	c.displayW, c.displayH = w, h
	return w, h, nil
}

// SetDisplaySize overrides the fitted display size, for callers that already
// know how large the canvas is rendered.
func (c *Canvas) SetDisplaySize(w, h float64) {
	if w > 0 && h > 0 {
		c.displayW, c.displayH = w, h
	}
}

func (c *Canvas) SetTool(t Tool)          { c.tool = t }
func (c *Canvas) SetColor(col color.RGBA) { c.color = col }

// SetLineWidth sets the stroke width in display-pixel units. It is scaled to
// native resolution at stamp time so visual thickness is viewport-independent.
func (c *Canvas) SetLineWidth(displayPx float64) {
	if displayPx > 0 {
		c.lineWidth = displayPx
	}
}

// scale returns the display→native conversion factors. Each axis uses its own
// ratio; they only differ when the container is non-uniformly scaled.
func (c *Canvas) scale() (sx, sy float64) {
	nw, nh := c.NativeSize()
	return float64(nw) / c.displayW, float64(nh) / c.displayH
}

// brushRadius is the stamp radius in native pixels for the current width.
func (c *Canvas) brushRadius() int {
	sx, _ := c.scale()
	r := int(c.lineWidth * sx / 2)
	if r < 1 {
		r = 1
	}
	return r
}

// StrokeStart begins a path at the given display coordinates and stamps the
// first dot immediately.
func (c *Canvas) StrokeStart(x, y float64) error {
	if c.surface == nil {
		return ErrNotLoaded
	}
	sx, sy := c.scale()
	nx, ny := x*sx, y*sy
	c.stamp(int(nx), int(ny))
	c.drawing = true
	c.lastX, c.lastY = nx, ny
	return nil
}

// StrokeMove extends the active path to the given display coordinates,
// rasterizing the segment immediately. A move without an active path is
// ignored, matching pointer events that wander in with the button up.
func (c *Canvas) StrokeMove(x, y float64) {
	if !c.drawing {
		return
	}
	sx, sy := c.scale()
	nx, ny := x*sx, y*sy
	c.segment(int(c.lastX), int(c.lastY), int(nx), int(ny))
	c.lastX, c.lastY = nx, ny
}

// StrokeEnd closes the active path. Pointer-up and pointer-leave both map
// here.
func (c *Canvas) StrokeEnd() {
	c.drawing = false
}

// Reset discards all strokes and restores the freshly-loaded base image.
func (c *Canvas) Reset() error {
	if c.surface == nil {
		return ErrNotLoaded
	}
	copy(c.surface.Pix, c.base.Pix)
	c.drawing = false
	return nil
}

// Export flattens the surface to PNG bytes at native resolution, base image
// and strokes composited in stroke order.
func (c *Canvas) Export() ([]byte, error) {
	if c.surface == nil {
		return nil, ErrNotLoaded
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.surface); err != nil {
		return nil, fmt.Errorf("encoding canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// Image exposes the live surface for inspection. Callers must not mutate it.
func (c *Canvas) Image() *image.RGBA { return c.surface }

// Thumbnail returns a PNG scaled down to at most maxW pixels wide, for list
// previews. The full-resolution surface is untouched.
func (c *Canvas) Thumbnail(maxW int) ([]byte, error) {
	if c.surface == nil {
		return nil, ErrNotLoaded
	}
	nw, nh := c.NativeSize()
	if nw <= maxW {
		return c.Export()
	}
	th := nh * maxW / nw
	if th < 1 {
		th = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.surface, c.surface.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
