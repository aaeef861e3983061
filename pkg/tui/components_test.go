package tui_test

import (
	"github.com/killallgit/parley/pkg/tui"
	"github.com/mattn/go-runewidth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("InputField", func() {
	var input tui.InputField

	BeforeEach(func() {
		input = tui.NewInputField(40)
	})

	It("should start empty", func() {
		Expect(input.IsEmpty()).To(BeTrue())
		Expect(input.Cursor).To(Equal(0))
	})

	It("should insert at the cursor", func() {
		input = input.InsertRune('a').InsertRune('c').MoveLeft().InsertRune('b')
		Expect(input.Content).To(Equal("abc"))
		Expect(input.Cursor).To(Equal(2))
	})

	It("should count the cursor in runes", func() {
		input = input.WithContent("héllo").End()
		Expect(input.Cursor).To(Equal(5))

		input = input.DeleteBackward()
		Expect(input.Content).To(Equal("héll"))

		input = input.Home().MoveRight().DeleteForward()
		Expect(input.Content).To(Equal("hll"))
	})

	It("should not move past either end", func() {
		input = input.WithContent("ab")
		Expect(input.Home().MoveLeft().Cursor).To(Equal(0))
		Expect(input.End().MoveRight().Cursor).To(Equal(2))
		Expect(input.WithCursor(99).Cursor).To(Equal(2))
	})

	It("should ignore deletes at the edges", func() {
		input = input.WithContent("ab")
		Expect(input.Home().DeleteBackward().Content).To(Equal("ab"))
		Expect(input.End().DeleteForward().Content).To(Equal("ab"))
	})

	It("should leave the receiver untouched", func() {
		before := input.WithContent("keep")
		_ = before.InsertRune('!').Clear()
		Expect(before.Content).To(Equal("keep"))
	})

	It("should clear content and cursor", func() {
		input = input.WithContent("text").End().Clear()
		Expect(input.IsEmpty()).To(BeTrue())
		Expect(input.Cursor).To(Equal(0))
		Expect(input.Width).To(Equal(40))
	})
})

var _ = Describe("TabBar", func() {
	It("should number labels from one", func() {
		bar := tui.NewTabBar(80).WithTabs([]tui.Tab{{Name: "status"}, {Name: "#general"}})
		Expect(bar.Label(0)).To(Equal(" 1:status "))
		Expect(bar.Label(1)).To(Equal(" 2:#general "))
	})

	It("should truncate long names", func() {
		bar := tui.NewTabBar(80).WithTabs([]tui.Tab{{Name: "#a-chat-with-an-unreasonably-long-name"}})
		label := bar.Label(0)
		Expect(runewidth.StringWidth(label)).To(BeNumerically("<=", 24))
		Expect(label).To(ContainSubstring("…"))
	})

	It("should scroll so the active tab is visible", func() {
		tabs := make([]tui.Tab, 9)
		for i := range tabs {
			tabs[i] = tui.Tab{Name: "#channel"}
		}
		tabs[8].Active = true
		bar := tui.NewTabBar(30).WithTabs(tabs)

		Expect(bar.FirstVisible()).To(BeNumerically(">", 0))

		tabs[8].Active = false
		tabs[0].Active = true
		Expect(bar.WithTabs(tabs).FirstVisible()).To(Equal(0))
	})
})

var _ = Describe("StatusBar", func() {
	It("should summarize the current page", func() {
		bar := tui.NewStatusBar(80).WithPage("#general", 2, 3)
		Expect(bar.Left()).To(Equal(" #general [3/3]"))
		Expect(bar.Right()).To(BeEmpty())
	})

	It("should show the scroll offset", func() {
		bar := tui.NewStatusBar(80).WithScrollback(5)
		Expect(bar.Right()).To(ContainSubstring("scrolled 5"))
	})
})
