// Package starfield simulates the decorative parallax background: a fixed
// population of points flying toward the viewer, projected with a simple
// pinhole camera and drawn onto a Surface.
package starfield

import (
	"image/color"
	"math/rand/v2"
)

// Particle is one star. Depth stays positive while the particle is alive;
// a particle that reaches zero is reinitialized in place.
type Particle struct {
	X, Y   float64
	Depth  float64
	Radius float64
	Color  color.NRGBA
}

// Config holds the tunables of the field.
type Config struct {
	Count       int
	FocalLength float64
	MaxDepth    float64
	// Speed is the depth decrement per tick.
	Speed       float64
	MaxRadius   float64
	RadiusScale float64

	VignetteInner color.NRGBA
	VignetteOuter color.NRGBA
}

func DefaultConfig() Config {
	return Config{
		Count:         200,
		FocalLength:   1000,
		MaxDepth:      2000,
		Speed:         1.5,
		MaxRadius:     2,
		RadiusScale:   1.5,
		VignetteInner: color.NRGBA{R: 15, G: 23, B: 42, A: 0},
		VignetteOuter: color.NRGBA{R: 15, G: 23, B: 42, A: 204},
	}
}

// Field owns the particles. It is not safe for concurrent use; the Loop
// is its only driver while running.
type Field struct {
	cfg       Config
	rng       *rand.Rand
	width     float64
	height    float64
	particles []Particle
}

// NewField seeds cfg.Count particles for a width x height surface. A nil rng
// gets a randomly seeded one.
func NewField(cfg Config, width, height int, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		cfg:       cfg,
		rng:       rng,
		width:     float64(width),
		height:    float64(height),
		particles: make([]Particle, cfg.Count),
	}
	for i := range f.particles {
		f.reset(&f.particles[i])
	}
	return f
}

func (f *Field) reset(p *Particle) {
	p.X = (f.rng.Float64()*2 - 1) * f.width
	p.Y = (f.rng.Float64()*2 - 1) * f.height
	// Float64 is in [0,1); keep the depth strictly positive.
	p.Depth = f.cfg.MaxDepth * (1 - f.rng.Float64())
	p.Radius = f.rng.Float64() * f.cfg.MaxRadius
	p.Color = color.NRGBA{
		R: uint8(150 + f.rng.IntN(100)),
		G: uint8(150 + f.rng.IntN(100)),
		B: 255,
		A: uint8(f.rng.IntN(256)),
	}
}

// Resize sets the surface dimensions used by the next projection.
func (f *Field) Resize(width, height int) {
	f.width = float64(width)
	f.height = float64(height)
}

func (f *Field) Size() (width, height int) {
	return int(f.width), int(f.height)
}

// Tick advances every particle toward the camera and recycles the ones that
// passed it.
func (f *Field) Tick() {
	for i := range f.particles {
		p := &f.particles[i]
		p.Depth -= f.cfg.Speed
		if p.Depth <= 0 {
			f.reset(p)
		}
	}
}

// Project maps p to surface coordinates. visible is false when the point
// falls outside [0,width] x [0,height].
func (f *Field) Project(p Particle) (x, y, scale float64, visible bool) {
	scale = f.cfg.FocalLength / (f.cfg.FocalLength + p.Depth)
	cx, cy := f.width/2, f.height/2
	x = (p.X-cx)*scale + cx
	y = (p.Y-cy)*scale + cy
	visible = x >= 0 && x <= f.width && y >= 0 && y <= f.height
	return x, y, scale, visible
}

// Render draws one frame: clear, vignette, then every visible particle with
// radius and opacity scaled by its depth.
func (f *Field) Render(s Surface) {
	s.Clear()
	if f.width <= 0 || f.height <= 0 {
		return
	}
	cx, cy := f.width/2, f.height/2
	s.FillRadialGradient(cx, cy, 0, f.width, f.cfg.VignetteInner, f.cfg.VignetteOuter)

	for _, p := range f.particles {
		x, y, scale, ok := f.Project(p)
		if !ok {
			continue
		}
		s.FillCircle(x, y, p.Radius*scale*f.cfg.RadiusScale, p.Color, scale)
	}
}

// Len is the particle population, constant for the field's lifetime.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}
