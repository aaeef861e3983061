package store

import (
	"context"
	"fmt"
	"time"

	"github.com/killallgit/parley/pkg/backend"
	"github.com/killallgit/parley/pkg/events"
)

// Watch polls for messages written by other senders and emits an
// IncomingMsg event for each, in id order. It returns when ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch: interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Debug("Watching for incoming messages", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Poll(ctx); err != nil {
				s.log.Warn("Poll failed", "error", err)
				s.emit(events.Warning, 0, err.Error())
			}
		}
	}
}

// HighWater returns the highest message id already accounted for. At open
// time that is the newest message in the database; Poll advances it.
func (s *Store) HighWater() backend.MessageID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highWater
}

// Poll checks once for new incoming messages and returns how many were reported.
func (s *Store) Poll(ctx context.Context) (int, error) {
	s.mu.Lock()
	since := s.highWater
	s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, chat_id, from_id FROM messages WHERE id > ? ORDER BY id", int64(since),
	)
	if err != nil {
		return 0, fmt.Errorf("poll messages: %w", err)
	}

	type incoming struct {
		id     backend.MessageID
		chatID backend.ChatID
	}
	var found []incoming
	last := since
	for rows.Next() {
		var (
			in     incoming
			fromID int64
		)
		if err := rows.Scan(&in.id, &in.chatID, &fromID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan polled message: %w", err)
		}
		last = in.id
		if fromID != s.opts.SelfID {
			found = append(found, in)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate polled messages: %w", err)
	}
	rows.Close()

	s.mu.Lock()
	if last > s.highWater {
		s.highWater = last
	}
	s.mu.Unlock()

	for _, in := range found {
		s.emit(events.IncomingMsg, int64(in.chatID), int64(in.id))
	}
	return len(found), nil
}
