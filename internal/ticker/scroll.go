// Package ticker holds the scroll timing math and ticker content building
// for the sign's alert tickers. All offset functions are pure functions of
// wall-clock elapsed time so scrolling stays smooth regardless of how often
// the caller renders: two calls at the same instant produce the same
// offset, and a dropped frame never causes a jump in scroll speed.
package ticker

import "time"

// State describes one ticker's scroll geometry and start instant. It is
// built when ticker content is (re)built and read-only afterwards; frame
// rendering derives offsets from it without mutating it.
type State struct {
	ContentWidth int       // pixel width of the rendered content strip
	Gap          int       // pixels between looping copies
	Speed        float64   // scroll speed in pixels per second
	Start        time.Time // instant the scroll began
}

// LoopWidth is the period of a seamless looping scroll: content plus gap.
func (s State) LoopWidth() int {
	return s.ContentWidth + s.Gap
}

// LoopOffset returns the x position of the primary content copy for a
// looping ticker at the given instant. The offset is always in
// (-LoopWidth, 0], so drawing copies at offset, offset+LoopWidth and
// offset+2*LoopWidth tiles any screen narrower than 2*LoopWidth with no
// gap and no jitter on wraparound.
func (s State) LoopOffset(now time.Time) int {
	lw := s.LoopWidth()
	if lw <= 0 {
		return 0
	}
	elapsed := now.Sub(s.Start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return -(int(elapsed*s.Speed) % lw)
}

// OneShotOffset returns the x position of a one-shot ticker at the given
// instant: content enters from the right screen edge and travels left.
func (s State) OneShotOffset(now time.Time, screenWidth int) int {
	elapsed := now.Sub(s.Start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return screenWidth - int(elapsed*s.Speed)
}

// OneShotDone reports whether the one-shot content has fully exited the
// visible area on the left. Content narrower than the screen is not
// special-cased; it still traverses the full enter-to-exit distance so
// completion detection stays uniform.
func (s State) OneShotDone(now time.Time, screenWidth int) bool {
	return s.OneShotOffset(now, screenWidth)+s.ContentWidth < 0
}
