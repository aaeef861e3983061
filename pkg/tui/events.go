package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/events"
)

// Custom event types delivered through the tcell event queue

// BackendEvent carries a store event to the UI goroutine
type BackendEvent struct {
	tcell.EventTime
	Event events.Event
}

// SendResultEvent is posted when a send issued by the UI completes
type SendResultEvent struct {
	tcell.EventTime
	ChatID backend.ChatID
	MsgID  backend.MessageID
	Err    error
}

// QuitEvent stops the event loop
type QuitEvent struct {
	tcell.EventTime
}

// NewBackendEvent creates a new backend event
func NewBackendEvent(ev events.Event) *BackendEvent {
	e := &BackendEvent{Event: ev}
	e.SetEventNow()
	return e
}

// NewSendResultEvent creates a new send result event
func NewSendResultEvent(chatID backend.ChatID, msgID backend.MessageID, err error) *SendResultEvent {
	e := &SendResultEvent{ChatID: chatID, MsgID: msgID, Err: err}
	e.SetEventNow()
	return e
}

func NewQuitEvent() *QuitEvent {
	e := &QuitEvent{}
	e.SetEventNow()
	return e
}

// eventIDs pulls a chat id and a message id out of an event's data fields.
func eventIDs(ev events.Event) (backend.ChatID, backend.MessageID, bool) {
	chatID, ok1 := asInt64(ev.Data1)
	msgID, ok2 := asInt64(ev.Data2)
	return backend.ChatID(chatID), backend.MessageID(msgID), ok1 && ok2
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case backend.ChatID:
		return int64(n), true
	case backend.MessageID:
		return int64(n), true
	default:
		return 0, false
	}
}
