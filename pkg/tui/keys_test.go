package tui_test

import (
	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/tui"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ActionFor", func() {
	key := func(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
		return tcell.NewEventKey(k, r, mod)
	}

	DescribeTable("key bindings",
		func(ev *tcell.EventKey, inputEmpty bool, expected tui.Action) {
			action, _ := tui.ActionFor(ev, inputEmpty)
			Expect(action).To(Equal(expected))
		},
		Entry("Ctrl-C quits", key(tcell.KeyCtrlC, 0, tcell.ModCtrl), true, tui.ActionQuit),
		Entry("Esc quits", key(tcell.KeyEscape, 0, tcell.ModNone), true, tui.ActionQuit),
		Entry("Tab goes forward", key(tcell.KeyTab, 0, tcell.ModNone), true, tui.ActionNextPage),
		Entry("Ctrl-N goes forward", key(tcell.KeyCtrlN, 0, tcell.ModCtrl), true, tui.ActionNextPage),
		Entry("Shift-Tab goes back", key(tcell.KeyBacktab, 0, tcell.ModShift), true, tui.ActionPrevPage),
		Entry("Ctrl-P goes back", key(tcell.KeyCtrlP, 0, tcell.ModCtrl), true, tui.ActionPrevPage),
		Entry("PgUp pages up", key(tcell.KeyPgUp, 0, tcell.ModNone), false, tui.ActionPageUp),
		Entry("PgDn pages down", key(tcell.KeyPgDn, 0, tcell.ModNone), false, tui.ActionPageDown),
		Entry("Ctrl-U scrolls up", key(tcell.KeyCtrlU, 0, tcell.ModCtrl), false, tui.ActionLineUp),
		Entry("Ctrl-D scrolls down", key(tcell.KeyCtrlD, 0, tcell.ModCtrl), false, tui.ActionLineDown),
		Entry("Up scrolls with empty input", key(tcell.KeyUp, 0, tcell.ModNone), true, tui.ActionLineUp),
		Entry("Up is ignored while typing", key(tcell.KeyUp, 0, tcell.ModNone), false, tui.ActionNone),
		Entry("Down scrolls with empty input", key(tcell.KeyDown, 0, tcell.ModNone), true, tui.ActionLineDown),
		Entry("Enter submits", key(tcell.KeyEnter, 0, tcell.ModNone), false, tui.ActionSubmit),
		Entry("runes edit", key(tcell.KeyRune, 'x', tcell.ModNone), true, tui.ActionEdit),
		Entry("Alt-letter is ignored", key(tcell.KeyRune, 'x', tcell.ModAlt), true, tui.ActionNone),
	)

	It("should map Alt-digit to a zero-based page index", func() {
		action, index := tui.ActionFor(key(tcell.KeyRune, '3', tcell.ModAlt), true)
		Expect(action).To(Equal(tui.ActionJumpPage))
		Expect(index).To(Equal(2))
	})
})
