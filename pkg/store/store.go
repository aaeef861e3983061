// Package store is a local message store backed by SQLite. Several parley
// processes may share one database file; each sees the others' messages
// through Watch.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/events"
	"github.com/killallgit/parley/pkg/logger"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id    INTEGER NOT NULL REFERENCES chats(id),
	from_id    INTEGER NOT NULL,
	text       TEXT    NOT NULL,
	timestamp  INTEGER NOT NULL,
	state      INTEGER NOT NULL,
	rfc724_mid TEXT    NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS messages_chat ON messages(chat_id, id);
`

// eventBuffer bounds how many undelivered events are kept before new ones are dropped.
const eventBuffer = 256

// Options configures a Store.
type Options struct {
	// SelfID is the sender id stamped on messages sent through this store.
	SelfID int64
	// SelfName is used in the Message-ID domain part and in logs.
	SelfName string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Store implements backend.Store on top of SQLite.
type Store struct {
	db     *sql.DB
	opts   Options
	events chan events.Event
	log    *logger.Logger

	mu        sync.Mutex
	highWater backend.MessageID
	closed    bool
}

var _ backend.Store = (*Store)(nil)

// Open opens or creates the database at path.
func Open(path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %q: %w", path, err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite db %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %q: %w", path, err)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SelfName == "" {
		opts.SelfName = "me"
	}

	s := &Store{
		db:     db,
		opts:   opts,
		events: make(chan events.Event, eventBuffer),
		log:    logger.WithComponent("store"),
	}

	// Messages already present at open time are history, not incoming.
	if err := db.QueryRow("SELECT COALESCE(MAX(id), 0) FROM messages").Scan(&s.highWater); err != nil {
		db.Close()
		return nil, fmt.Errorf("read high water mark: %w", err)
	}

	s.log.Info("Store opened", "path", path, "self_id", opts.SelfID, "high_water", s.highWater)
	return s, nil
}

// Close closes the database and the event channel.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.events)
	return s.db.Close()
}

// Events returns the channel store events are delivered on. It is closed by Close.
func (s *Store) Events() <-chan events.Event {
	return s.events
}

func (s *Store) emit(code events.Code, data1, data2 any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- events.New(code, data1, data2):
	default:
		s.log.Warn("Event dropped, buffer full", "code", int(code))
	}
}

// GetMessage looks up a message by id.
func (s *Store) GetMessage(id backend.MessageID) (backend.Message, error) {
	var (
		msg   backend.Message
		ts    int64
		state int
	)
	err := s.db.QueryRow(
		"SELECT id, chat_id, from_id, text, timestamp, state FROM messages WHERE id = ?", int64(id),
	).Scan(&msg.ID, &msg.ChatID, &msg.FromID, &msg.Text, &ts, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return backend.Message{}, fmt.Errorf("message %d: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return backend.Message{}, fmt.Errorf("query message %d: %w", id, err)
	}
	msg.Timestamp = time.Unix(ts, 0)
	msg.State = backend.MessageState(state)
	return msg, nil
}

// GetChat looks up a chat by id.
func (s *Store) GetChat(id backend.ChatID) (backend.Chat, error) {
	chat := backend.Chat{ID: id}
	err := s.db.QueryRow("SELECT name FROM chats WHERE id = ?", int64(id)).Scan(&chat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return backend.Chat{}, fmt.Errorf("chat %d: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return backend.Chat{}, fmt.Errorf("query chat %d: %w", id, err)
	}
	return chat, nil
}

// ChatIDs lists every chat in creation order.
func (s *Store) ChatIDs() ([]backend.ChatID, error) {
	rows, err := s.db.Query("SELECT id FROM chats ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query chats: %w", err)
	}
	defer rows.Close()

	var ids []backend.ChatID
	for rows.Next() {
		var id backend.ChatID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan chat id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}
	return ids, nil
}

// Chats lists every chat with its name.
func (s *Store) Chats() ([]backend.Chat, error) {
	rows, err := s.db.Query("SELECT id, name FROM chats ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query chats: %w", err)
	}
	defer rows.Close()

	var chats []backend.Chat
	for rows.Next() {
		var c backend.Chat
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}
	return chats, nil
}

// ChatMessages returns message ids of a chat, oldest first. A limit of 0
// means no limit.
func (s *Store) ChatMessages(id backend.ChatID, offset, limit int) ([]backend.MessageID, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid range offset=%d limit=%d", offset, limit)
	}
	sqlLimit := -1
	if limit > 0 {
		sqlLimit = limit
	}

	rows, err := s.db.Query(
		"SELECT id FROM messages WHERE chat_id = ? ORDER BY id LIMIT ? OFFSET ?",
		int64(id), sqlLimit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages of chat %d: %w", id, err)
	}
	defer rows.Close()

	var ids []backend.MessageID
	for rows.Next() {
		var mid backend.MessageID
		if err := rows.Scan(&mid); err != nil {
			return nil, fmt.Errorf("scan message id: %w", err)
		}
		ids = append(ids, mid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages of chat %d: %w", id, err)
	}
	return ids, nil
}

// SendTextMessage stores text as an outgoing message in chat id. The
// message is marked delivered once the row is committed.
func (s *Store) SendTextMessage(ctx context.Context, id backend.ChatID, text string) (backend.MessageID, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("send to chat %d: empty message", id)
	}
	if _, err := s.GetChat(id); err != nil {
		return 0, fmt.Errorf("send to chat %d: %w", id, err)
	}

	msgID, err := s.insert(ctx, id, s.opts.SelfID, text, backend.StateDelivered)
	if err != nil {
		s.emit(events.Error, int64(id), err.Error())
		return 0, fmt.Errorf("send to chat %d: %w", id, err)
	}

	s.emit(events.MsgsChanged, int64(id), int64(msgID))
	s.emit(events.SMTPMessageSent, int64(id), int64(msgID))
	return msgID, nil
}

// InsertIncoming stores a message from another sender. It does not emit an
// event; the watcher of every process, including this one, reports it.
func (s *Store) InsertIncoming(ctx context.Context, id backend.ChatID, fromID int64, text string) (backend.MessageID, error) {
	if _, err := s.GetChat(id); err != nil {
		return 0, fmt.Errorf("insert into chat %d: %w", id, err)
	}
	return s.insert(ctx, id, fromID, text, backend.StateIncoming)
}

func (s *Store) insert(ctx context.Context, id backend.ChatID, fromID int64, text string, state backend.MessageState) (backend.MessageID, error) {
	mid := fmt.Sprintf("<%s@%s.parley>", uuid.NewString(), s.opts.SelfName)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (chat_id, from_id, text, timestamp, state, rfc724_mid) VALUES (?, ?, ?, ?, ?, ?)",
		int64(id), fromID, text, s.opts.Now().Unix(), int(state), mid,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	last, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read message id: %w", err)
	}
	return backend.MessageID(last), nil
}

// CreateChat adds a chat and returns its id.
func (s *Store) CreateChat(ctx context.Context, name string) (backend.ChatID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("create chat: empty name")
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chats (name, created_at) VALUES (?, ?)", name, s.opts.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("create chat %q: %w", name, err)
	}
	last, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read chat id: %w", err)
	}
	s.emit(events.ChatModified, last, 0)
	return backend.ChatID(last), nil
}

// RenameChat changes the display name of a chat.
func (s *Store) RenameChat(ctx context.Context, id backend.ChatID, name string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE chats SET name = ? WHERE id = ?", name, int64(id))
	if err != nil {
		return fmt.Errorf("rename chat %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rename chat %d: %w", id, backend.ErrNotFound)
	}
	s.emit(events.ChatModified, int64(id), 0)
	return nil
}

// DeleteMessage removes a message. Pages holding a reference to it render
// a placeholder from then on.
func (s *Store) DeleteMessage(ctx context.Context, id backend.MessageID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", int64(id))
	if err != nil {
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete message %d: %w", id, backend.ErrNotFound)
	}
	s.emit(events.MsgsChanged, 0, int64(id))
	return nil
}

// SetState updates the delivery state of a message.
func (s *Store) SetState(ctx context.Context, id backend.MessageID, state backend.MessageState) error {
	res, err := s.db.ExecContext(ctx, "UPDATE messages SET state = ? WHERE id = ?", int(state), int64(id))
	if err != nil {
		return fmt.Errorf("update message %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update message %d: %w", id, backend.ErrNotFound)
	}

	code := events.MsgsChanged
	switch state {
	case backend.StateDelivered:
		code = events.MsgDelivered
	case backend.StateFailed:
		code = events.MsgFailed
	}
	s.emit(code, 0, int64(id))
	return nil
}
