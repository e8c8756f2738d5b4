package starfield

import (
	"fmt"
	"image/color"
)

// Surface is anything a frame can be drawn on. Alpha arguments multiply the
// colour's own alpha.
type Surface interface {
	Resize(width, height int)
	Clear()
	FillRadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA, alpha float64)
}

// Gradient is a recorded radial gradient fill covering the whole surface.
type Gradient struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R0    float64 `json:"r0"`
	R1    float64 `json:"r1"`
	Inner string  `json:"inner"`
	Outer string  `json:"outer"`
}

// Circle is a recorded filled circle.
type Circle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Fill  string  `json:"f"`
	Alpha float64 `json:"a"`
}

// Frame is everything drawn since the last Clear.
type Frame struct {
	Seq      uint64    `json:"seq"`
	Width    int       `json:"w"`
	Height   int       `json:"h"`
	Vignette *Gradient `json:"v,omitempty"`
	Circles  []Circle  `json:"c"`
}

// DrawList records draw calls instead of rasterizing them. The websocket
// stream sends its frames to a browser canvas.
type DrawList struct {
	frame Frame
}

func NewDrawList(width, height int) *DrawList {
	return &DrawList{frame: Frame{Width: width, Height: height}}
}

func (d *DrawList) Resize(width, height int) {
	d.frame.Width = width
	d.frame.Height = height
}

func (d *DrawList) Clear() {
	d.frame.Seq++
	d.frame.Vignette = nil
	d.frame.Circles = d.frame.Circles[:0]
}

func (d *DrawList) FillRadialGradient(cx, cy, r0, r1 float64, inner, outer color.NRGBA) {
	d.frame.Vignette = &Gradient{CX: cx, CY: cy, R0: r0, R1: r1, Inner: CSS(inner), Outer: CSS(outer)}
}

func (d *DrawList) FillCircle(x, y, r float64, c color.NRGBA, alpha float64) {
	d.frame.Circles = append(d.frame.Circles, Circle{X: x, Y: y, R: r, Fill: CSS(c), Alpha: alpha})
}

// Frame returns a copy of the recorded frame.
func (d *DrawList) Frame() Frame {
	f := d.frame
	f.Circles = append([]Circle(nil), d.frame.Circles...)
	if d.frame.Vignette != nil {
		v := *d.frame.Vignette
		f.Vignette = &v
	}
	return f
}

// CSS formats c as a CSS rgba() colour.
func CSS(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
