package tui

import "github.com/gdamore/tcell/v2"

// Action is what a key press asks the app to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextPage
	ActionPrevPage
	ActionJumpPage
	ActionPageUp
	ActionPageDown
	ActionLineUp
	ActionLineDown
	ActionSubmit
	ActionEdit
)

// ActionFor maps a key to an Action. For ActionJumpPage the second result
// is the zero-based page index. Up and Down only scroll while the input is
// empty; any other unbound key is ActionEdit.
func ActionFor(ev *tcell.EventKey, inputEmpty bool) (Action, int) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return ActionQuit, 0
	case tcell.KeyTab, tcell.KeyCtrlN:
		return ActionNextPage, 0
	case tcell.KeyBacktab, tcell.KeyCtrlP:
		return ActionPrevPage, 0
	case tcell.KeyPgUp:
		return ActionPageUp, 0
	case tcell.KeyPgDn:
		return ActionPageDown, 0
	case tcell.KeyCtrlU:
		return ActionLineUp, 0
	case tcell.KeyCtrlD:
		return ActionLineDown, 0
	case tcell.KeyUp:
		if inputEmpty {
			return ActionLineUp, 0
		}
		return ActionNone, 0
	case tcell.KeyDown:
		if inputEmpty {
			return ActionLineDown, 0
		}
		return ActionNone, 0
	case tcell.KeyEnter:
		return ActionSubmit, 0
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if r := ev.Rune(); r >= '1' && r <= '9' {
				return ActionJumpPage, int(r - '1')
			}
			return ActionNone, 0
		}
	}
	return ActionEdit, 0
}

// editInput applies an editing key to the input field.
func editInput(input InputField, ev *tcell.EventKey) InputField {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.InsertRune(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.DeleteBackward()
	case tcell.KeyDelete:
		return input.DeleteForward()
	case tcell.KeyLeft:
		return input.MoveLeft()
	case tcell.KeyRight:
		return input.MoveRight()
	case tcell.KeyHome, tcell.KeyCtrlA:
		return input.Home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return input.End()
	case tcell.KeyCtrlK:
		runes := []rune(input.Content)
		return input.WithContent(string(runes[:min(max(input.Cursor, 0), len(runes))]))
	}
	return input
}
