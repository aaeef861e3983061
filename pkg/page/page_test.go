package page_test

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/killallgit/parley/pkg/events"
	"github.com/killallgit/parley/pkg/page"
	"github.com/killallgit/parley/pkg/testutil"
	"github.com/killallgit/parley/pkg/wrap"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func numbered(p *page.Page, n int) {
	for i := 0; i < n; i++ {
		p.AppendLine(fmt.Sprintf("line %d", i))
	}
}

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

var _ = Describe("Page", func() {
	var p *page.Page

	BeforeEach(func() {
		p = page.NewStatus()
	})

	Describe("Render", func() {
		It("should always return exactly height lines", func() {
			for _, n := range []int{0, 2, 50} {
				pg := page.NewStatus()
				numbered(pg, n)
				for _, h := range []int{1, 5, 10} {
					Expect(pg.Render(30, h)).To(HaveLen(h), "lines=%d height=%d", n, h)
				}
			}
		})

		It("should top-anchor short content and pad below", func() {
			numbered(p, 2)
			Expect(p.Render(30, 4)).To(Equal([]string{"line 0", "line 1", "", ""}))
		})

		It("should show the bottom of long content", func() {
			numbered(p, 10)
			Expect(p.Render(30, 3)).To(Equal([]string{"line 7", "line 8", "line 9"}))
		})

		It("should wrap long lines at the given width", func() {
			p.AppendLine("hello")
			p.AppendLine("a very long line that needs wrapping across multiple physical rows")

			lines := p.Render(20, 3)
			Expect(lines).To(HaveLen(3))
			for _, l := range lines {
				Expect(wrap.Width(l)).To(BeNumerically("<=", 20))
			}
			Expect(lines[2]).To(ContainSubstring("rows"))
		})

		It("should return an empty slice for a zero height", func() {
			numbered(p, 3)
			Expect(p.Render(10, 0)).To(BeEmpty())
		})
	})

	Describe("scrolling", func() {
		BeforeEach(func() {
			numbered(p, 10)
		})

		It("should ignore PageUp before the first render", func() {
			p.PageUp()
			Expect(p.Scrollback()).To(Equal(0))
		})

		It("should ignore PageUp when the content fits", func() {
			short := page.NewStatus()
			numbered(short, 2)
			short.Render(20, 5)
			short.PageUp()
			Expect(short.Scrollback()).To(Equal(0))
		})

		It("should saturate at the amount of hidden history", func() {
			p.Render(30, 3)
			for i := 0; i < 20; i++ {
				p.PageUp()
			}
			Expect(p.Scrollback()).To(Equal(7))
			Expect(p.Render(30, 3)).To(Equal([]string{"line 0", "line 1", "line 2"}))

			p.PageUp()
			Expect(p.Scrollback()).To(Equal(7))
		})

		It("should return to exactly zero on repeated PageDown", func() {
			p.Render(30, 3)
			p.PageUpBy(5)
			for i := 0; i < 20; i++ {
				p.PageDown()
			}
			Expect(p.Scrollback()).To(Equal(0))
			Expect(p.Render(30, 3)).To(Equal([]string{"line 7", "line 8", "line 9"}))
		})

		It("should move a whole viewport with PageUpBy and PageDownBy", func() {
			p.Render(30, 3)
			p.PageUpBy(3)
			Expect(p.Render(30, 3)).To(Equal([]string{"line 4", "line 5", "line 6"}))
			p.PageDownBy(3)
			Expect(p.Scrollback()).To(Equal(0))
		})

		It("should clamp against the geometry of the last render", func() {
			p.Render(30, 8)
			p.PageUpBy(5)
			Expect(p.Scrollback()).To(Equal(2))
		})

		Context("when content arrives while scrolled back", func() {
			BeforeEach(func() {
				p.Render(30, 3)
				p.PageUpBy(2)
				Expect(p.Render(30, 3)).To(Equal([]string{"line 5", "line 6", "line 7"}))
				p.AppendLine("new 0")
				p.AppendLine("new 1\nnew 2")
			})

			It("should keep the visible window", func() {
				Expect(p.Scrollback()).To(Equal(2))
				Expect(p.Render(30, 3)).To(Equal([]string{"line 5", "line 6", "line 7"}))
			})

			It("should keep scrolling relative to the old content", func() {
				p.Render(30, 3)
				p.PageUp()
				Expect(p.Render(30, 3)).To(Equal([]string{"line 4", "line 5", "line 6"}))

				p.PageDownBy(2)
				Expect(p.Render(30, 3)).To(Equal([]string{"line 6", "line 7", "line 8"}))
			})

			It("should reveal the new content once back at the bottom", func() {
				p.Render(30, 3)
				p.PageDownBy(2)
				Expect(p.Render(30, 3)).To(Equal([]string{"new 0", "new 1", "new 2"}))
			})

			It("should not scroll past the oldest line", func() {
				p.Render(30, 3)
				p.PageUpBy(100)
				Expect(p.Render(30, 3)).To(Equal([]string{"line 0", "line 1", "line 2"}))
			})
		})
	})

	Describe("Append", func() {
		It("should split multi-line text into separate entries", func() {
			p.Append(page.PlainLine("a\nb\nc"))
			Expect(p.Len()).To(Equal(3))
			Expect(p.Render(10, 3)).To(Equal([]string{"a", "b", "c"}))
		})

		It("should keep other entries whole", func() {
			p.Append(page.MessageRef{ID: 1})
			Expect(p.Len()).To(Equal(1))
		})
	})
})

var _ = Describe("Debug page", func() {
	It("should be named debug", func() {
		p := page.NewDebug()
		Expect(p.Name()).To(Equal("debug"))
		Expect(p.Kind()).To(Equal(page.KindDebug))
	})

	It("should format known events", func() {
		p := page.NewDebug()
		p.AppendEvent(events.IncomingMsg, 12, 7)
		Expect(plain(p.Render(80, 1))).To(Equal([]string{"DC_EVENT_INCOMING_MSG (2005) 12 7"}))
	})

	It("should use the placeholder for unknown codes", func() {
		p := page.NewDebug()
		Expect(func() { p.AppendEvent(9999, "a", "b") }).NotTo(Panic())
		Expect(plain(p.Render(80, 1))).To(Equal([]string{"<unknown-event> (9999) a b"}))
	})
})

var _ = Describe("Conversation page", func() {
	var (
		store *testutil.FakeStore
		p     *page.Page
	)

	BeforeEach(func() {
		store = testutil.NewFakeStore()
		store.AddChat(42, "general")
		p = page.NewConversation(42, store)
	})

	It("should carry its chat id", func() {
		Expect(p.Kind()).To(Equal(page.KindConversation))
		Expect(p.ChatID()).To(BeEquivalentTo(42))
	})

	It("should look the name up on every call", func() {
		Expect(p.Name()).To(Equal("#general"))
		store.RenameChat(42, "lobby")
		Expect(p.Name()).To(Equal("#lobby"))
	})

	It("should fall back to the chat id when the chat is unknown", func() {
		Expect(page.NewConversation(77, store).Name()).To(Equal("#77"))
	})

	It("should render messages as timestamp, sender and text", func() {
		id := store.AddMessage(42, 2, "hello")
		p.AppendMessage(id)
		Expect(plain(p.Render(80, 1))).To(Equal([]string{"2024-01-02 03:04:05:[2] > hello"}))
	})

	It("should strip newlines from message text", func() {
		p.AppendMessage(store.AddMessage(42, 2, "multi\nline\r\ntext"))
		Expect(plain(p.Render(80, 1))[0]).To(HaveSuffix("> multilinetext"))
	})

	It("should resolve the message again on every render", func() {
		id := store.AddMessage(42, 2, "first")
		p.AppendMessage(id)
		Expect(plain(p.Render(80, 1))[0]).To(HaveSuffix("first"))

		store.EditMessage(id, "second")
		Expect(plain(p.Render(80, 1))[0]).To(HaveSuffix("second"))
	})

	It("should render a placeholder for a missing message", func() {
		id := store.AddMessage(42, 2, "soon gone")
		p.AppendMessage(id)
		store.DeleteMessage(id)

		var lines []string
		Expect(func() { lines = p.Render(80, 1) }).NotTo(Panic())
		Expect(plain(lines)).To(Equal([]string{fmt.Sprintf("[message %d unavailable]", id)}))
	})

	It("should render a placeholder when no store is attached", func() {
		Expect(ansi.Strip(page.MessageRef{ID: 3}.Text())).To(Equal("[message 3 unavailable]"))
	})
})
