// Package page holds the scrollable content streams shown by the TUI and
// lays them out into a fixed viewport.
package page

import (
	"fmt"
	"strings"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/events"
	"github.com/killallgit/parley/pkg/tui/theme"
	"github.com/killallgit/parley/pkg/wrap"
)

// Kind tags the page variant.
type Kind int

const (
	KindDebug Kind = iota
	KindStatus
	KindConversation
)

func (k Kind) String() string {
	switch k {
	case KindDebug:
		return "debug"
	case KindStatus:
		return "status"
	case KindConversation:
		return "conversation"
	default:
		return "unknown"
	}
}

// Resolver is the part of the backend a conversation page reads from.
type Resolver interface {
	MessageGetter
	GetChat(id backend.ChatID) (backend.Chat, error)
}

// Page is an append-only list of entries with a scrollback offset.
//
// Scrolling clamps against the geometry of the last Render call, not the
// current terminal size, so a resize only takes effect after the next frame.
type Page struct {
	kind     Kind
	name     string
	chatID   backend.ChatID
	resolver Resolver

	entries []Entry

	// state of the last Render
	wrapped         []string
	lastHeight      int
	lastHidden      int
	renderedEntries int
	rendered        bool

	scrollback int
	// anchor is the entry count at the moment the user left the bottom.
	// Entries at or past it stay below the window until scrollback is 0
	// again. -1 when not scrolled.
	anchor int
}

func newPage(kind Kind, name string) *Page {
	return &Page{kind: kind, name: name, anchor: -1}
}

// NewDebug creates the event log page.
func NewDebug() *Page {
	return newPage(KindDebug, "debug")
}

// NewStatus creates the status log page.
func NewStatus() *Page {
	return newPage(KindStatus, "status")
}

// NewConversation creates the page for one chat.
func NewConversation(chatID backend.ChatID, r Resolver) *Page {
	p := newPage(KindConversation, "")
	p.chatID = chatID
	p.resolver = r
	return p
}

func (p *Page) Kind() Kind { return p.kind }

// ChatID is meaningful only for KindConversation pages.
func (p *Page) ChatID() backend.ChatID { return p.chatID }

// Name returns the tab label. Conversation names are read from the backend
// on every call.
func (p *Page) Name() string {
	if p.kind != KindConversation {
		return p.name
	}
	if p.resolver != nil {
		chat, err := p.resolver.GetChat(p.chatID)
		if err == nil {
			return "#" + chat.Name
		}
		entryLog.Debug("Chat name lookup failed", "chat_id", p.chatID, "error", err)
	}
	return fmt.Sprintf("#%d", p.chatID)
}

// Len is the number of logical lines.
func (p *Page) Len() int { return len(p.entries) }

// Scrollback is how many physical lines the window is held up from the bottom.
func (p *Page) Scrollback() int { return p.scrollback }

// Render lays the page out at width and returns exactly height lines.
func (p *Page) Render(width, height int) []string {
	if height < 0 {
		height = 0
	}

	all := make([]string, 0, len(p.entries))
	hidden := 0
	for i, e := range p.entries {
		lines := wrap.Lines(e.Text(), width)
		if p.anchor >= 0 && i >= p.anchor {
			hidden += len(lines)
		}
		all = append(all, lines...)
	}

	p.wrapped = all
	p.lastHeight = height
	p.lastHidden = hidden
	p.renderedEntries = len(p.entries)
	p.rendered = true

	out := make([]string, height)
	if len(all) < height {
		copy(out, all)
		return out
	}

	eff := min(p.scrollback+hidden, len(all)-height)
	start := len(all) - height - eff
	copy(out, all[start:start+height])
	return out
}

// PageUp scrolls one physical line toward older content.
func (p *Page) PageUp() { p.PageUpBy(1) }

// PageUpBy scrolls n physical lines toward older content. It does nothing
// before the first Render or when the content fits the viewport.
func (p *Page) PageUpBy(n int) {
	if !p.rendered || n < 1 {
		return
	}
	rest := len(p.wrapped) - p.lastHeight - p.lastHidden
	if rest <= 0 {
		return
	}
	if p.scrollback == 0 {
		p.anchor = p.renderedEntries
	}
	p.scrollback = min(p.scrollback+n, rest)
}

// PageDown scrolls one physical line toward newer content.
func (p *Page) PageDown() { p.PageDownBy(1) }

// PageDownBy scrolls n physical lines toward newer content. Reaching the
// bottom releases everything appended while scrolled back.
func (p *Page) PageDownBy(n int) {
	if n < 1 {
		return
	}
	p.scrollback = max(0, p.scrollback-n)
	if p.scrollback == 0 {
		p.anchor = -1
	}
}

// Append adds an entry. A PlainLine holding newlines becomes one entry per line.
func (p *Page) Append(e Entry) {
	if line, ok := e.(PlainLine); ok && strings.Contains(string(line), "\n") {
		for _, part := range strings.Split(string(line), "\n") {
			p.entries = append(p.entries, PlainLine(part))
		}
		return
	}
	p.entries = append(p.entries, e)
}

// AppendLine appends text as plain content.
func (p *Page) AppendLine(text string) {
	p.Append(PlainLine(text))
}

// AppendEvent appends a formatted backend event. Codes missing from the
// event table are shown as <unknown-event>.
func (p *Page) AppendEvent(code events.Code, data1, data2 any) {
	p.AppendLine(fmt.Sprintf("%s (%s) %v %v",
		theme.EventName(events.NameOrUnknown(code)), theme.EventCode(int(code)), data1, data2))
}

// AppendMessage appends a reference to a stored message.
func (p *Page) AppendMessage(id backend.MessageID) {
	p.Append(MessageRef{ID: id, Store: p.resolver})
}
