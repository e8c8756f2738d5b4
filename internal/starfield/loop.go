package starfield

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Size is a viewport size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport fans resize notifications out to its listeners. A slow listener
// only ever sees the latest size.
type Viewport struct {
	mu        sync.Mutex
	current   Size
	nextID    int
	listeners map[int]chan Size
}

func NewViewport(initial Size) *Viewport {
	return &Viewport{current: initial, listeners: make(map[int]chan Size)}
}

func (v *Viewport) Size() Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Subscribe registers a listener. The returned channel is closed by Unsubscribe.
func (v *Viewport) Subscribe() (int, <-chan Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	ch := make(chan Size, 1)
	v.listeners[v.nextID] = ch
	return v.nextID, ch
}

func (v *Viewport) Unsubscribe(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ch, ok := v.listeners[id]; ok {
		delete(v.listeners, id)
		close(ch)
	}
}

// Publish records the new size and notifies every listener.
func (v *Viewport) Publish(s Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = s
	for _, ch := range v.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

// FrameClock paces the loop, one receive per frame.
type FrameClock interface {
	C() <-chan time.Time
	Stop()
}

type tickerClock struct {
	t *time.Ticker
}

func (c tickerClock) C() <-chan time.Time { return c.t.C }
func (c tickerClock) Stop()               { c.t.Stop() }

// NewTickerClock returns a FrameClock firing fps times per second.
func NewTickerClock(fps int) FrameClock {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return tickerClock{t: time.NewTicker(time.Second / time.Duration(fps))}
}

const DefaultFrameRate = 30

var ErrRunning = errors.New("starfield: loop already running")

// Loop drives a Field: each frame it ticks, renders onto the surface and
// hands the frame to the presenter. Start acquires the frame clock and the
// resize subscription; Stop releases both.
type Loop struct {
	field    *Field
	surface  Surface
	viewport *Viewport
	newClock func() FrameClock
	present  func(ctx context.Context) error

	paused atomic.Bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	running bool
}

type LoopOption func(*Loop)

// WithFrameClock overrides the ticker-based frame clock.
func WithFrameClock(f func() FrameClock) LoopOption {
	return func(l *Loop) { l.newClock = f }
}

func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) { l.newClock = func() FrameClock { return NewTickerClock(fps) } }
}

// WithPresenter is called after every rendered frame. An error stops the loop.
func WithPresenter(f func(ctx context.Context) error) LoopOption {
	return func(l *Loop) { l.present = f }
}

func NewLoop(field *Field, surface Surface, viewport *Viewport, opts ...LoopOption) *Loop {
	l := &Loop{
		field:    field,
		surface:  surface,
		viewport: viewport,
		newClock: func() FrameClock { return NewTickerClock(DefaultFrameRate) },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the loop goroutine. It returns ErrRunning if the loop has
// not been stopped since the previous Start.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrRunning
	}

	id, sizes := l.viewport.Subscribe()
	if s := l.viewport.Size(); s.Width > 0 && s.Height > 0 {
		l.resize(s)
	}
	clock := l.newClock()

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.err = nil
	l.running = true

	go l.run(ctx, id, sizes, clock, l.done)
	return nil
}

func (l *Loop) run(ctx context.Context, id int, sizes <-chan Size, clock FrameClock, done chan struct{}) {
	var err error
	defer func() {
		clock.Stop()
		l.viewport.Unsubscribe(id)
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sizes:
			l.resize(s)
		case <-clock.C():
			// A resize that raced the tick still applies to this frame.
			select {
			case s := <-sizes:
				l.resize(s)
			default:
			}
			if l.paused.Load() {
				continue
			}
			l.field.Tick()
			l.field.Render(l.surface)
			if l.present != nil {
				if err = l.present(ctx); err != nil {
					return
				}
			}
		}
	}
}

func (l *Loop) resize(s Size) {
	l.field.Resize(s.Width, s.Height)
	l.surface.Resize(s.Width, s.Height)
}

// SetPaused freezes the field while the viewer can't see it. Paused frames
// are neither advanced, rendered nor presented; resizes still apply.
func (l *Loop) SetPaused(paused bool) {
	l.paused.Store(paused)
}

// Stop cancels the loop and waits for it to release its resources. Calling
// Stop on a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	cancel, done := l.cancel, l.done
	l.running = false
	l.mu.Unlock()

	cancel()
	<-done
}

// Done is closed when the loop goroutine exits, whether by Stop, context
// cancellation or a presenter error.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Err returns the presenter error that ended the loop, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
