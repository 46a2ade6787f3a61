package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// HandleInput applies one frame of player actions in a fixed order:
// soft drop changes, shifts, rotation, then hard drop. Actions that cannot
// be applied are ignored.
func (s *Session) HandleInput(in core.InputFrame) {
	if s.gameOver || in.Empty() {
		return
	}
	if in.Has(core.ActionSoftDrop) {
		s.SetSoftDrop(true)
	}
	if in.Has(core.ActionSoftDropRelease) {
		s.SetSoftDrop(false)
	}
	if in.Has(core.ActionLeft) {
		s.Move(Left)
	}
	if in.Has(core.ActionRight) {
		s.Move(Right)
	}
	if in.Has(core.ActionRotate) {
		s.Rotate()
	}
	if in.Has(core.ActionHardDrop) {
		s.HardDrop()
	}
}
