package tui_test

import (
	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/page"
	"github.com/killallgit/parley/pkg/tui"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rendering", func() {
	var screen *tui.TestScreen

	BeforeEach(func() {
		var err error
		screen, err = tui.NewTestScreen(20, 6)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(screen.Fini)
	})

	Describe("RenderLine", func() {
		It("should strip escapes and apply their styles", func() {
			end := tui.RenderLine(screen, 0, 0, 20, "\x1b[1;33mhi\x1b[0m there", tcell.StyleDefault)

			Expect(end).To(Equal(8))
			Expect(screen.Row(0)).To(Equal("hi there"))

			fg, _, attrs := screen.StyleAt(0, 0).Decompose()
			Expect(fg).To(Equal(tcell.PaletteColor(3)))
			Expect(attrs & tcell.AttrBold).NotTo(BeZero())

			fg, _, attrs = screen.StyleAt(3, 0).Decompose()
			Expect(fg).To(Equal(tcell.ColorDefault))
			Expect(attrs & tcell.AttrBold).To(BeZero())
		})

		It("should decode 256-color and true-color foregrounds", func() {
			tui.RenderLine(screen, 0, 0, 20, "\x1b[38;5;208ma\x1b[38;2;10;20;30mb", tcell.StyleDefault)

			fg, _, _ := screen.StyleAt(0, 0).Decompose()
			Expect(fg).To(Equal(tcell.PaletteColor(208)))
			fg, _, _ = screen.StyleAt(1, 0).Decompose()
			Expect(fg).To(Equal(tcell.NewRGBColor(10, 20, 30)))
		})

		It("should map bright colors onto the upper palette", func() {
			tui.RenderLine(screen, 0, 0, 20, "\x1b[92mx", tcell.StyleDefault)

			fg, _, _ := screen.StyleAt(0, 0).Decompose()
			Expect(fg).To(Equal(tcell.PaletteColor(10)))
		})

		It("should stop at the right edge", func() {
			end := tui.RenderLine(screen, 0, 0, 5, "abcdefgh", tcell.StyleDefault)
			Expect(end).To(Equal(5))
			Expect(screen.Row(0)).To(Equal("abcde"))
		})

		It("should not split wide runes at the edge", func() {
			end := tui.RenderLine(screen, 0, 0, 3, "日本", tcell.StyleDefault)
			Expect(end).To(Equal(2))
		})

		It("should decode backgrounds and restore the base style on reset", func() {
			base := tcell.StyleDefault.Foreground(tcell.ColorRed)
			tui.RenderLine(screen, 0, 0, 20, "\x1b[48;5;17;7ma\x1b[39mb\x1b[mc", base)

			fg, bg, attrs := screen.StyleAt(0, 0).Decompose()
			Expect(fg).To(Equal(tcell.ColorRed))
			Expect(bg).To(Equal(tcell.PaletteColor(17)))
			Expect(attrs & tcell.AttrReverse).NotTo(BeZero())

			fg, bg, _ = screen.StyleAt(1, 0).Decompose()
			Expect(fg).To(Equal(tcell.ColorRed))
			Expect(bg).To(Equal(tcell.PaletteColor(17)))

			Expect(screen.StyleAt(2, 0)).To(Equal(base))
		})

		It("should keep a grapheme cluster in one cell", func() {
			end := tui.RenderLine(screen, 0, 0, 20, "e\u0301x", tcell.StyleDefault)
			Expect(end).To(Equal(2))

			mainc, combc, _, _ := screen.GetContent(0, 0)
			Expect(mainc).To(Equal('e'))
			Expect(combc).To(Equal([]rune{'\u0301'}))
			Expect(screen.Row(0)).To(Equal("ex"))
		})

		It("should skip non-SGR sequences", func() {
			tui.RenderLine(screen, 0, 0, 20, "a\x1b[2Kb\x1b]0;title\x07c", tcell.StyleDefault)
			Expect(screen.Row(0)).To(Equal("abc"))
		})
	})

	Describe("RenderPage", func() {
		It("should draw the bottom of the page into the area", func() {
			p := page.NewStatus()
			for _, l := range []string{"one", "two", "three", "four"} {
				p.AppendLine(l)
			}

			tui.RenderPage(screen, p, tui.NewRect(0, 1, 20, 3))

			Expect(screen.Row(0)).To(BeEmpty())
			Expect(screen.Row(1)).To(Equal("two"))
			Expect(screen.Row(3)).To(Equal("four"))
		})
	})

	Describe("RenderInput", func() {
		It("should draw the prompt and place the cursor", func() {
			input := tui.NewInputField(20).WithContent("hey").End()
			tui.RenderInput(screen, input, tui.NewRect(0, 4, 20, 1))

			Expect(screen.Row(4)).To(Equal("> hey"))
			x, y, visible := screen.GetCursor()
			Expect([]int{x, y}).To(Equal([]int{5, 4}))
			Expect(visible).To(BeTrue())
		})

		It("should scroll long input to keep the cursor visible", func() {
			input := tui.NewInputField(10).WithContent("abcdefghijkl").End()
			tui.RenderInput(screen, input, tui.NewRect(0, 0, 10, 1))

			Expect(screen.Row(0)).To(Equal("> fghijkl"))
			x, _, _ := screen.GetCursor()
			Expect(x).To(Equal(9))
		})
	})

	Describe("RenderTabs and RenderStatus", func() {
		It("should draw the tab labels", func() {
			bar := tui.NewTabBar(20).WithTabs([]tui.Tab{{Name: "status", Active: true}, {Name: "#a"}})
			tui.RenderTabs(screen, bar, tui.NewRect(0, 0, 20, 1))

			Expect(screen.Row(0)).To(Equal(" 1:status  2:#a"))
		})

		It("should draw the page summary and the scroll marker", func() {
			bar := tui.NewStatusBar(40).WithPage("status", 0, 2).WithScrollback(3)
			wide, err := tui.NewTestScreen(40, 1)
			Expect(err).NotTo(HaveOccurred())
			defer wide.Fini()

			tui.RenderStatus(wide, bar, tui.NewRect(0, 0, 40, 1))

			Expect(wide.Row(0)).To(HavePrefix(" status [1/2]"))
			Expect(wide.Row(0)).To(ContainSubstring("scrolled 3"))
		})
	})
})
