// Package typewriter cycles through a list of words, typing each one out,
// holding it, then deleting it, like the hero banner of the page.
package typewriter

import "time"

const (
	TypeDelay   = 100 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	HoldDelay   = 3000 * time.Millisecond
	BlinkPeriod = 500 * time.Millisecond
)

type Typewriter struct {
	words   [][]rune
	index   int
	sub     int
	reverse bool
	Hold    time.Duration
}

func New(words []string) *Typewriter {
	tw := &Typewriter{Hold: HoldDelay}
	for _, w := range words {
		tw.words = append(tw.words, []rune(w))
	}
	return tw
}

// Text is the currently visible prefix of the current word.
func (tw *Typewriter) Text() string {
	if len(tw.words) == 0 {
		return ""
	}
	return string(tw.words[tw.index][:tw.sub])
}

// Word is the index of the word being typed or deleted.
func (tw *Typewriter) Word() int {
	return tw.index
}

// Advance moves to the next state and returns how long the previous state
// should stay on screen before the new Text is shown.
func (tw *Typewriter) Advance() time.Duration {
	if len(tw.words) == 0 {
		return tw.Hold
	}
	word := tw.words[tw.index]

	switch {
	case !tw.reverse && tw.sub < len(word):
		tw.sub++
		return TypeDelay
	case !tw.reverse:
		tw.reverse = true
		return tw.Hold
	case tw.sub > 0:
		tw.sub--
		return DeleteDelay
	default:
		tw.reverse = false
		tw.index = (tw.index + 1) % len(tw.words)
		tw.sub = min(1, len(tw.words[tw.index]))
		return TypeDelay
	}
}

// CursorVisible reports whether the blinking cursor shows after elapsed time.
func CursorVisible(elapsed time.Duration) bool {
	return (elapsed/BlinkPeriod)%2 == 0
}
