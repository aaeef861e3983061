package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/logger"
	"github.com/killallgit/parley/pkg/tui/theme"
)

// Entry is one logical line of a page. Text is called on every render.
type Entry interface {
	Text() string
}

// PlainLine is literal page content.
type PlainLine string

func (l PlainLine) Text() string { return string(l) }

// MessageGetter resolves message ids.
type MessageGetter interface {
	GetMessage(id backend.MessageID) (backend.Message, error)
}

// MessageRef renders a stored message. It holds only the id and looks the
// message up again on every call, so edits, deletions and delivery state
// show up on the next frame.
type MessageRef struct {
	ID    backend.MessageID
	Store MessageGetter
}

var newlines = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

var entryLog = logger.WithComponent("page")

func (r MessageRef) Text() string {
	if r.Store == nil {
		return MissingMessage(r.ID)
	}
	msg, err := r.Store.GetMessage(r.ID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			entryLog.Debug("Message gone", "msg_id", r.ID)
		} else {
			entryLog.Debug("Message lookup failed", "msg_id", r.ID, "error", err)
		}
		return MissingMessage(r.ID)
	}

	line := theme.Timestamp(msg.Timestamp) + ":" + theme.Sender(msg.FromID) + " > " + newlines.Replace(msg.Text)
	switch msg.State {
	case backend.StatePending:
		line += " " + theme.Missing("(sending)")
	case backend.StateFailed:
		line += " " + theme.Missing("(failed)")
	}
	return line
}

// MissingMessage is what a MessageRef renders when its message cannot be loaded.
func MissingMessage(id backend.MessageID) string {
	return theme.Missing(fmt.Sprintf("[message %d unavailable]", id))
}
