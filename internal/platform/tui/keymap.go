package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// binding routes one key to a player's action.
type binding struct {
	player core.PlayerID
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys map[string]binding
}

// NewKeyMapper creates the solo key map: arrows or WASD to move, space to
// hard drop.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: make(map[string]binding)}
	km.bind(core.Player1, map[string]core.Action{
		"left": core.ActionLeft, "a": core.ActionLeft,
		"right": core.ActionRight, "d": core.ActionRight,
		"up": core.ActionRotate, "w": core.ActionRotate,
		"down": core.ActionSoftDrop, "s": core.ActionSoftDrop,
		" ": core.ActionHardDrop,
	})
	km.bindCommon()
	return km
}

// NewVersusKeyMapper creates the shared keyboard map of a local match:
// player 1 on WASD, player 2 on IJKL, player 3 on the arrows.
func NewVersusKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: make(map[string]binding)}
	km.bind(core.Player1, map[string]core.Action{
		"a": core.ActionLeft, "d": core.ActionRight, "w": core.ActionRotate, "s": core.ActionSoftDrop,
	})
	km.bind(core.Player2, map[string]core.Action{
		"j": core.ActionLeft, "l": core.ActionRight, "i": core.ActionRotate, "k": core.ActionSoftDrop,
	})
	km.bind(core.Player3, map[string]core.Action{
		"left": core.ActionLeft, "right": core.ActionRight, "up": core.ActionRotate, "down": core.ActionSoftDrop,
	})
	km.bindCommon()
	return km
}

func (km *KeyMapper) bind(p core.PlayerID, keys map[string]core.Action) {
	for k, a := range keys {
		km.keys[k] = binding{player: p, action: a}
	}
}

// bindCommon adds the platform keys, which always belong to Player1.
func (km *KeyMapper) bindCommon() {
	km.bind(core.Player1, map[string]core.Action{
		"p":   core.ActionPause,
		"r":   core.ActionRestart,
		"b":   core.ActionBack,
		"esc": core.ActionBack,
	})
}

// MapKey translates a key message to a player and action.
// Returns ActionNone for unbound keys and isQuit for quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	// Global quit keys
	switch msg.String() {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	}

	b, ok := km.keys[msg.String()]
	if !ok {
		return core.Player1, core.ActionNone, false
	}
	return b.player, b.action, false
}

// MapKeyToFrame updates an input frame based on a key message, ignoring
// keys of other players. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && player == core.Player1 {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
