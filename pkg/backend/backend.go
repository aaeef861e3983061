// Package backend describes the messaging service the UI renders from.
// Implementations live elsewhere (see pkg/store); this package only holds
// the shared types and the interface.
package backend

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned, possibly wrapped, when a chat or message does not exist.
var ErrNotFound = errors.New("not found")

type ChatID int64

type MessageID int64

// MessageState tracks delivery of a message.
type MessageState int

const (
	StatePending MessageState = iota
	StateDelivered
	StateFailed
	StateIncoming
)

func (s MessageState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	case StateIncoming:
		return "incoming"
	default:
		return "unknown"
	}
}

type Message struct {
	ID        MessageID
	ChatID    ChatID
	FromID    int64
	Text      string
	Timestamp time.Time
	State     MessageState
}

type Chat struct {
	ID   ChatID
	Name string
}

// Store is the read and send surface of the messaging service.
//
// ChatMessages returns message ids in display order. An offset and limit of
// 0, 0 selects the entire history.
type Store interface {
	GetMessage(id MessageID) (Message, error)
	GetChat(id ChatID) (Chat, error)
	ChatIDs() ([]ChatID, error)
	ChatMessages(id ChatID, offset, limit int) ([]MessageID, error)
	SendTextMessage(ctx context.Context, id ChatID, text string) (MessageID, error)
}
