package tui

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// SoftDropHold is how long a soft drop stays active after the last press of
// its key. Terminals only report presses, so this must outlast the delay
// before a held key starts repeating.
const SoftDropHold = 600 * time.Millisecond

// softDropTracker turns repeated soft drop presses into a held state and
// emits a release once the presses stop.
type softDropTracker struct {
	hold int
	left map[core.PlayerID]int
}

func newSoftDropTracker(tickRate int) *softDropTracker {
	frames := int(SoftDropHold / frameDuration(tickRate))
	return &softDropTracker{
		hold: max(frames, 1),
		left: make(map[core.PlayerID]int),
	}
}

// Observe is called once per frame before the frame is simulated.
func (t *softDropTracker) Observe(frame *core.MultiInputFrame) {
	for p, f := range frame.ByPlayer {
		if f.Has(core.ActionSoftDrop) {
			t.left[p] = t.hold + 1
		}
	}
	for p, n := range t.left {
		n--
		if n > 0 {
			t.left[p] = n
			continue
		}
		delete(t.left, p)
		frame.Set(p, core.ActionSoftDropRelease)
	}
}

// Held reports whether a player's soft drop is still active.
func (t *softDropTracker) Held(p core.PlayerID) bool {
	return t.left[p] > 0
}

// Reset forgets every held key.
func (t *softDropTracker) Reset() {
	clear(t.left)
}
