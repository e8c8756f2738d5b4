package starfield

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// Raster draws frames into an in-memory RGBA image, for offline rendering.
type Raster struct {
	img        *image.RGBA
	Background color.NRGBA
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		Background: color.NRGBA{R: 2, G: 6, B: 23, A: 255},
	}
}

func (r *Raster) Resize(width, height int) {
	if b := r.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Clear() {
	bg := premultiply(r.Background, 1)
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.img.SetRGBA(x, y, bg)
		}
	}
}

func (r *Raster) FillRadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA) {
	b := r.img.Bounds()
	span := r1 - r0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			t := 1.0
			if span > 0 {
				t = clamp01((d - r0) / span)
			}
			r.blend(x, y, lerp(inner, outer, t), 1)
		}
	}
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	b := r.img.Bounds()
	minX := max(int(math.Floor(cx-radius)), b.Min.X)
	maxX := min(int(math.Ceil(cx+radius)), b.Max.X-1)
	minY := max(int(math.Floor(cy-radius)), b.Min.Y)
	maxY := min(int(math.Ceil(cy+radius)), b.Max.Y-1)

	hit := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= radius {
				r.blend(x, y, c, alpha)
				hit = true
			}
		}
	}
	// Sub-pixel stars cover no pixel centre; plot them with alpha scaled by area.
	if !hit {
		x, y := int(cx), int(cy)
		if image.Pt(x, y).In(b) {
			r.blend(x, y, c, alpha*math.Min(1, math.Pi*radius*radius))
		}
	}
}

// blend composites c at opacity alpha over the pixel (source-over).
func (r *Raster) blend(x, y int, c color.NRGBA, alpha float64) {
	src := premultiply(c, alpha)
	dst := r.img.RGBAAt(x, y)
	inv := 1 - float64(src.A)/255
	r.img.SetRGBA(x, y, color.RGBA{
		R: src.R + uint8(float64(dst.R)*inv),
		G: src.G + uint8(float64(dst.G)*inv),
		B: src.B + uint8(float64(dst.B)*inv),
		A: src.A + uint8(float64(dst.A)*inv),
	})
}

// WritePNG encodes the current image.
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func premultiply(c color.NRGBA, alpha float64) color.RGBA {
	a := float64(c.A) / 255 * clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(a * 255),
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
