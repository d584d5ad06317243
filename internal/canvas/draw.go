package canvas

import (
	"image"
	"image/color"
	"math"
)

// stamp rasterizes one round brush dot at native coordinates. Pen composites
// the current color over the surface; eraser punches transparency through
// everything beneath, base image included.
func (c *Canvas) stamp(x, y int) {
	r := c.brushRadius()
	switch c.tool {
	case ToolEraser:
		fillCircle(c.surface, x, y, r, color.RGBA{}, true)
	default:
		fillCircle(c.surface, x, y, r, c.color, false)
	}
}

// segment stamps dots along the Bresenham line between two native points,
// which yields round caps and joins for free.
func (c *Canvas) segment(x0, y0, x1, y1 int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.stamp(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// fillCircle writes a filled disc into img. With clear set, pixels are
// overwritten with col as-is (used to punch transparency); otherwise col is
// composited source-over.
func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA, clear bool) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			px, py := cx+dx, cy+dy
			if !(image.Pt(px, py).In(img.Bounds())) {
				continue
			}
			if clear {
				img.SetRGBA(px, py, col)
				continue
			}
			blendOver(img, px, py, col)
		}
	}
}

// blendOver composites col over the existing pixel. Fully opaque colors take
// the fast path of a straight write.
func blendOver(img *image.RGBA, x, y int, col color.RGBA) {
	if col.A == 0xFF {
		img.SetRGBA(x, y, col)
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(col.A)
	ia := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(dst.R)*ia) / 255),
		G: uint8((uint32(col.G)*a + uint32(dst.G)*ia) / 255),
		B: uint8((uint32(col.B)*a + uint32(dst.B)*ia) / 255),
		A: uint8(a + uint32(dst.A)*ia/255),
	})
}
