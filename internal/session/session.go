// Package session holds the presentation state of a teleprompter run: which
// section is showing, the section and overall stopwatches, and text style.
package session

import (
	"fmt"
	"time"

	"github.com/faizmokh/prompter/internal/script"
)

// Session tracks navigation and timing over a parsed script. It is not safe
// for concurrent use; the UI owns it.
type Session struct {
	sections []script.Section
	index    int

	now          func() time.Time
	running      bool
	overallStart time.Time
	sectionStart time.Time
	pauseStart   time.Time
	pausedTotal  time.Duration
	// pause time that fell inside the current section
	sectionPaused time.Duration

	autoAdvance bool
	style       Style
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithStyle sets the initial text style.
func WithStyle(style Style) Option {
	return func(s *Session) {
		s.style = style.normalized()
	}
}

// WithAutoAdvance enables moving to the next section once its time budget is spent.
func WithAutoAdvance(enabled bool) Option {
	return func(s *Session) {
		s.autoAdvance = enabled
	}
}

// New builds a Session and loads sections into it.
func New(sections []script.Section, opts ...Option) *Session {
	s := &Session{
		now:   time.Now,
		style: DefaultStyle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(sections)
	return s
}

// Load swaps in a new script, rewinds to the first section and restarts both timers.
func (s *Session) Load(sections []script.Section) {
	s.sections = sections
	s.index = 0
	s.Reset()
}

// Len reports the number of sections.
func (s *Session) Len() int {
	return len(s.sections)
}

// Index returns the zero-based index of the current section.
func (s *Session) Index() int {
	return s.index
}

// Current returns the section being shown, or false when nothing is loaded.
func (s *Session) Current() (script.Section, bool) {
	if s.index < 0 || s.index >= len(s.sections) {
		return script.Section{}, false
	}
	return s.sections[s.index], true
}

// Progress returns the fraction of the script reached, counting the current section.
func (s *Session) Progress() float64 {
	switch n := len(s.sections); {
	case n == 0:
		return 0
	case n == 1:
		return 1
	default:
		return float64(s.index+1) / float64(n)
	}
}

// Next advances one section. It reports false at the last section.
func (s *Session) Next() bool {
	return s.Jump(s.index + 1)
}

// Prev goes back one section. It reports false at the first section.
func (s *Session) Prev() bool {
	return s.Jump(s.index - 1)
}

// Jump moves to index i clamped to the script bounds and reports whether the
// current section changed. Changing section restarts the section timer.
func (s *Session) Jump(i int) bool {
	if len(s.sections) == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.sections)-1 {
		i = len(s.sections) - 1
	}
	if i == s.index {
		return false
	}
	s.index = i
	s.sectionStart = s.now()
	s.sectionPaused = 0
	return true
}

// Start resumes the stopwatches after a pause. Time spent paused is excluded
// from the elapsed totals.
func (s *Session) Start() {
	if s.running {
		return
	}
	now := s.now()
	s.pausedTotal += now.Sub(s.pauseStart)
	s.sectionPaused += now.Sub(latest(s.pauseStart, s.sectionStart))
	s.running = true
}

// Pause freezes the stopwatches.
func (s *Session) Pause() {
	if !s.running {
		return
	}
	s.pauseStart = s.now()
	s.running = false
}

// Toggle flips between running and paused.
func (s *Session) Toggle() {
	if s.running {
		s.Pause()
		return
	}
	s.Start()
}

// Reset restarts both stopwatches and leaves them running.
func (s *Session) Reset() {
	now := s.now()
	s.overallStart = now
	s.sectionStart = now
	s.pauseStart = time.Time{}
	s.pausedTotal = 0
	s.sectionPaused = 0
	s.running = true
}

// Running reports whether the stopwatches are ticking.
func (s *Session) Running() bool {
	return s.running
}

// OverallElapsed is the time since the last Load or Reset minus paused time.
func (s *Session) OverallElapsed() time.Duration {
	ref := s.now()
	if !s.running {
		ref = s.pauseStart
	}
	return clampZero(ref.Sub(s.overallStart) - s.pausedTotal)
}

// SectionElapsed is the time spent on the current section minus paused time.
func (s *Session) SectionElapsed() time.Duration {
	ref := s.now()
	if !s.running {
		ref = latest(s.pauseStart, s.sectionStart)
	}
	return clampZero(ref.Sub(s.sectionStart) - s.sectionPaused)
}

// Remaining is the unspent part of the current section's time budget. It
// reports false when the section has no budget.
func (s *Session) Remaining() (time.Duration, bool) {
	current, ok := s.Current()
	if !ok || current.SectionTimeSeconds <= 0 {
		return 0, false
	}
	return current.Duration() - s.SectionElapsed(), true
}

// AutoAdvanceEnabled reports whether budgets move the script forward.
func (s *Session) AutoAdvanceEnabled() bool {
	return s.autoAdvance
}

// SetAutoAdvance turns budget-driven advancing on or off.
func (s *Session) SetAutoAdvance(enabled bool) {
	s.autoAdvance = enabled
}

// AutoAdvance moves to the next section when auto-advance is on, the clock is
// running and the current section's budget is spent. It reports whether it moved.
func (s *Session) AutoAdvance() bool {
	if !s.autoAdvance || !s.running {
		return false
	}
	remaining, ok := s.Remaining()
	if !ok || remaining > 0 {
		return false
	}
	return s.Next()
}

// Style returns the current text style.
func (s *Session) Style() Style {
	return s.style
}

// Grow enlarges the text by one step.
func (s *Session) Grow() {
	s.style.FontSize = clampFont(s.style.FontSize + FontStep)
}

// Shrink reduces the text by one step.
func (s *Session) Shrink() {
	s.style.FontSize = clampFont(s.style.FontSize - FontStep)
}

// FormatElapsed renders d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	total := int64(d / time.Second)
	out := fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
	if neg {
		return "-" + out
	}
	return out
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
