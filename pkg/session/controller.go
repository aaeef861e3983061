// Package session owns the set of pages shown by the TUI, the active page
// and the routing of messages and input between them.
//
// A Controller is not safe for concurrent use. It belongs to the UI
// goroutine; only Send may be called from elsewhere.
package session

import (
	"context"
	"fmt"
	"math"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/events"
	"github.com/killallgit/parley/pkg/logger"
	"github.com/killallgit/parley/pkg/page"
)

// Options configures a Controller.
type Options struct {
	// Debug adds the event log page in front of the status page.
	Debug bool
}

// Outgoing is a line of input bound for a chat.
type Outgoing struct {
	ChatID backend.ChatID
	Text   string
}

// Controller holds the ordered pages and the active index. The page list
// is never empty and the active index is always valid.
type Controller struct {
	store backend.Store
	opts  Options

	pages  []*page.Page
	chats  map[backend.ChatID]*page.Page
	active int

	debug  *page.Page
	status *page.Page

	log *logger.Logger
}

// New creates a controller with its fixed pages.
func New(store backend.Store, opts Options) *Controller {
	c := &Controller{
		store: store,
		opts:  opts,
		chats: make(map[backend.ChatID]*page.Page),
		log:   logger.WithComponent("session"),
	}
	if opts.Debug {
		c.debug = page.NewDebug()
		c.pages = append(c.pages, c.debug)
	}
	c.status = page.NewStatus()
	c.pages = append(c.pages, c.status)
	return c
}

// Pages returns the pages in display order. The slice must not be modified.
func (c *Controller) Pages() []*page.Page { return c.pages }

func (c *Controller) Current() *page.Page { return c.pages[c.active] }

func (c *Controller) ActiveIndex() int { return c.active }

// Status returns the status page.
func (c *Controller) Status() *page.Page { return c.status }

// Debug returns the event log page, or nil when debug mode is off.
func (c *Controller) Debug() *page.Page { return c.debug }

// NextPage activates the following page, wrapping to the first.
func (c *Controller) NextPage() {
	c.active = (c.active + 1) % len(c.pages)
}

// PrevPage activates the preceding page, wrapping to the last.
func (c *Controller) PrevPage() {
	if c.active == 0 {
		c.active = len(c.pages) - 1
		return
	}
	c.active--
}

// SetActive activates page i, clamped into range.
func (c *Controller) SetActive(i int) {
	c.active = max(0, min(i, len(c.pages)-1))
}

// Page returns the conversation page for chatID, if one exists.
func (c *Controller) Page(chatID backend.ChatID) (*page.Page, bool) {
	p, ok := c.chats[chatID]
	return p, ok
}

func (c *Controller) chatPage(chatID backend.ChatID) *page.Page {
	if p, ok := c.chats[chatID]; ok {
		return p
	}
	p := page.NewConversation(chatID, c.store)
	c.chats[chatID] = p
	c.pages = append(c.pages, p)
	c.log.Debug("Conversation page created", "chat_id", chatID, "pages", len(c.pages))
	return p
}

// LoadChats appends the full history of every chat to its page. Calling it
// twice appends the history twice.
func (c *Controller) LoadChats() error {
	return c.LoadChatsThrough(math.MaxInt64)
}

// LoadChatsThrough is LoadChats restricted to message ids up to and
// including limit. Pairing it with the store's high-water mark keeps a
// message written during the load from showing up twice.
func (c *Controller) LoadChatsThrough(limit backend.MessageID) error {
	ids, err := c.store.ChatIDs()
	if err != nil {
		return fmt.Errorf("list chats: %w", err)
	}
	for _, chatID := range ids {
		msgs, err := c.store.ChatMessages(chatID, 0, 0)
		if err != nil {
			return fmt.Errorf("load history of chat %d: %w", chatID, err)
		}
		for _, msgID := range msgs {
			if msgID > limit {
				continue
			}
			c.RouteAppend(chatID, msgID)
		}
		// chats without history still get a page
		c.chatPage(chatID)
	}
	c.log.Info("Chats loaded", "chats", len(ids), "pages", len(c.pages))
	return nil
}

// RouteAppend appends msgID to the page of chatID, creating the page on
// first reference.
func (c *Controller) RouteAppend(chatID backend.ChatID, msgID backend.MessageID) {
	c.chatPage(chatID).AppendMessage(msgID)
}

// Submit turns a line of input into an outgoing message. It reports false
// when the current page is not a conversation; the input is then dropped.
func (c *Controller) Submit(line string) (Outgoing, bool) {
	p := c.Current()
	switch p.Kind() {
	case page.KindConversation:
		return Outgoing{ChatID: p.ChatID(), Text: line}, true
	default:
		c.log.Debug("Input dropped", "page", p.Name())
		return Outgoing{}, false
	}
}

// Send passes out to the backend. It touches no controller state and may
// run on any goroutine.
func (c *Controller) Send(ctx context.Context, out Outgoing) (backend.MessageID, error) {
	id, err := c.store.SendTextMessage(ctx, out.ChatID, out.Text)
	if err != nil {
		return 0, fmt.Errorf("send to chat %d: %w", out.ChatID, err)
	}
	return id, nil
}

// OnEnter sends line to the current conversation and returns the new
// message id. On other pages it does nothing and returns 0 and nil.
func (c *Controller) OnEnter(ctx context.Context, line string) (backend.MessageID, error) {
	out, ok := c.Submit(line)
	if !ok {
		return 0, nil
	}
	return c.Send(ctx, out)
}

// LogEvent appends an event to the debug page. It is a no-op when debug
// mode is off.
func (c *Controller) LogEvent(code events.Code, data1, data2 any) {
	if c.debug == nil {
		return
	}
	c.debug.AppendEvent(code, data1, data2)
}

// AppendStatus writes a line to the status page.
func (c *Controller) AppendStatus(line string) {
	c.status.AppendLine(line)
}
