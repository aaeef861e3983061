package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/killallgit/parley/pkg/backend"
)

// SentMessage records one SendTextMessage call.
type SentMessage struct {
	ChatID backend.ChatID
	Text   string
	ID     backend.MessageID
}

// FakeStore implements backend.Store in memory for testing
type FakeStore struct {
	mu       sync.Mutex
	chats    []backend.Chat
	messages map[backend.MessageID]backend.Message
	history  map[backend.ChatID][]backend.MessageID
	nextID   backend.MessageID
	sent     []SentMessage
	sendErr  error
	sendWait time.Duration

	selfID int64
	now    func() time.Time
}

var _ backend.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty fake store. Messages sent through it are
// attributed to sender 1 and stamped with a fixed time.
func NewFakeStore() *FakeStore {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &FakeStore{
		messages: make(map[backend.MessageID]backend.Message),
		history:  make(map[backend.ChatID][]backend.MessageID),
		selfID:   1,
		now:      func() time.Time { return fixed },
	}
}

// AddChat registers a chat. Chats are listed in the order they were added.
func (f *FakeStore) AddChat(id backend.ChatID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, backend.Chat{ID: id, Name: name})
}

// RenameChat changes a chat's name in place.
func (f *FakeStore) RenameChat(id backend.ChatID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.chats {
		if f.chats[i].ID == id {
			f.chats[i].Name = name
		}
	}
}

// AddMessage stores a message from fromID and returns its id.
func (f *FakeStore) AddMessage(chatID backend.ChatID, fromID int64, text string) backend.MessageID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(chatID, fromID, text, backend.StateIncoming)
}

func (f *FakeStore) addLocked(chatID backend.ChatID, fromID int64, text string, state backend.MessageState) backend.MessageID {
	f.nextID++
	id := f.nextID
	f.messages[id] = backend.Message{
		ID:        id,
		ChatID:    chatID,
		FromID:    fromID,
		Text:      text,
		Timestamp: f.now(),
		State:     state,
	}
	f.history[chatID] = append(f.history[chatID], id)
	return id
}

// EditMessage replaces the text of a stored message.
func (f *FakeStore) EditMessage(id backend.MessageID, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := f.messages[id]; ok {
		msg.Text = text
		f.messages[id] = msg
	}
}

// DeleteMessage removes a message; it stays in the chat history so
// references to it keep resolving to not-found.
func (f *FakeStore) DeleteMessage(id backend.MessageID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, id)
}

// SetSendError makes every following send fail with err. Pass nil to reset.
func (f *FakeStore) SetSendError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

// SetSendDelay simulates a slow backend.
func (f *FakeStore) SetSendDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendWait = d
}

// Sent returns a copy of every successful and failed send, in call order.
func (f *FakeStore) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *FakeStore) GetMessage(id backend.MessageID) (backend.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return backend.Message{}, fmt.Errorf("message %d: %w", id, backend.ErrNotFound)
	}
	return msg, nil
}

func (f *FakeStore) GetChat(id backend.ChatID) (backend.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.chats {
		if c.ID == id {
			return c, nil
		}
	}
	return backend.Chat{}, fmt.Errorf("chat %d: %w", id, backend.ErrNotFound)
}

func (f *FakeStore) ChatIDs() ([]backend.ChatID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]backend.ChatID, 0, len(f.chats))
	for _, c := range f.chats {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (f *FakeStore) ChatMessages(id backend.ChatID, offset, limit int) ([]backend.MessageID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid range offset=%d limit=%d", offset, limit)
	}
	all := f.history[id]
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]backend.MessageID, len(all))
	copy(out, all)
	return out, nil
}

func (f *FakeStore) SendTextMessage(ctx context.Context, id backend.ChatID, text string) (backend.MessageID, error) {
	f.mu.Lock()
	wait := f.sendWait
	f.mu.Unlock()
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		f.sent = append(f.sent, SentMessage{ChatID: id, Text: text})
		return 0, f.sendErr
	}
	msgID := f.addLocked(id, f.selfID, text, backend.StateDelivered)
	f.sent = append(f.sent, SentMessage{ChatID: id, Text: text, ID: msgID})
	return msgID, nil
}
