package chatlog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStoreClosed = errors.New("message store is closed")
	ErrCorruptLog  = errors.New("corrupt chat log")
)

// CancelFunc detaches a subscriber and closes its channel. Safe to call more
// than once.
type CancelFunc func()

// Store is an append-only ordered log of chat messages.
type Store interface {
	// Append adds msg to the end of the log, stamping ID and CreatedAt when
	// they are unset, and hands it to every subscriber in append order.
	Append(ctx context.Context, msg *Message) error

	// Subscribe returns a channel that first replays every existing message
	// in order, then carries live appends. The channel closes when the
	// returned CancelFunc runs, ctx is done, or the store closes.
	Subscribe(ctx context.Context) (<-chan Message, CancelFunc, error)

	// List returns a copy of all messages in append order.
	List(ctx context.Context) ([]Message, error)

	// Close releases the store. Subscriber channels are closed; queued but
	// undelivered messages are dropped.
	Close() error
}

func stamp(msg *Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
}
