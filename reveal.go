package smartnurse

import (
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// Animator advances a target string's visible prefix on a fixed cadence,
// one grapheme cluster at a time, until fully shown. Segmenting by grapheme
// clusters rather than bytes keeps emoji and accented text intact mid-reveal.
//
// Only one animation may run per Animator at a time; starting a second one
// while another is active fails with ErrConcurrentReveal. The session
// controller's locked guard keeps that from ever happening in practice.
type Animator struct {
	mu       sync.Mutex
	active   bool
	cancelCh chan struct{}
}

// NewAnimator creates an Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Start reveals target one grapheme per interval, calling onTick with each
// strictly-growing prefix and onDone once the prefix equals the full string.
// It blocks until the reveal completes or is cancelled. An empty target
// completes immediately via onDone without emitting a tick. An interval of
// zero or less ticks without delay.
func (a *Animator) Start(target string, interval time.Duration, onTick func(prefix string), onDone func()) error {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return ErrConcurrentReveal
	}
	a.active = true
	cancel := make(chan struct{})
	a.cancelCh = cancel
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.active = false
		a.cancelCh = nil
		a.mu.Unlock()
	}()

	if target == "" {
		if onDone != nil {
			onDone()
		}
		return nil
	}

	var prefix strings.Builder
	gr := uniseg.NewGraphemes(target)
	for gr.Next() {
		if interval > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-timer.C:
			case <-cancel:
				timer.Stop()
				return ErrRevealCancelled
			}
		} else {
			select {
			case <-cancel:
				return ErrRevealCancelled
			default:
			}
		}
		prefix.WriteString(gr.Str())
		if onTick != nil {
			onTick(prefix.String())
		}
	}

	if onDone != nil {
		onDone()
	}
	return nil
}

// Cancel stops future ticks of the running animation, if any. Already
// applied ticks are not rolled back. Reserved for teardown; the controller
// never clears a session mid-reveal.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancelCh != nil {
		close(a.cancelCh)
		a.cancelCh = nil
	}
}

// Active reports whether an animation is currently running.
func (a *Animator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}
