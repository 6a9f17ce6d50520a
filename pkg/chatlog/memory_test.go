package chatlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj4mm/encryptest/pkg/keystream"
)

func collect(t *testing.T, ch <-chan Message, n int) []Message {
	t.Helper()
	out := make([]Message, 0, n)
	timeout := time.After(5 * time.Second)
	for len(out) < n {
		select {
		case msg, ok := <-ch:
			require.True(t, ok, "channel closed after %d of %d messages", len(out), n)
			out = append(out, msg)
		case <-timeout:
			t.Fatalf("timed out after %d of %d messages", len(out), n)
		}
	}
	return out
}

func TestMemoryStore_AppendStamps(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	msg := &Message{Sender: "alice", Text: "hello", Mode: ModeDecrypt}
	require.NoError(t, s.Append(ctx, msg))
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	// explicit values survive
	fixed := &Message{ID: "fixed", Sender: "bob", Text: "hi", Mode: ModeDecrypt, CreatedAt: time.Unix(42, 0).UTC()}
	require.NoError(t, s.Append(ctx, fixed))
	assert.Equal(t, "fixed", fixed.ID)
	assert.Equal(t, time.Unix(42, 0).UTC(), fixed.CreatedAt)

	msgs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "alice", msgs[0].Sender)
	assert.Equal(t, "bob", msgs[1].Sender)
}

func TestMemoryStore_SubscribeReplaysThenFollows(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, s.Append(ctx, &Message{Sender: "alice", Text: text, Mode: ModeDecrypt}), "append %d", i)
	}

	ch, cancel, err := s.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	backlog := collect(t, ch, 3)
	assert.Equal(t, "one", backlog[0].Text)
	assert.Equal(t, "two", backlog[1].Text)
	assert.Equal(t, "three", backlog[2].Text)

	require.NoError(t, s.Append(ctx, &Message{Sender: "bob", Text: "four", Mode: ModeDecrypt}))
	live := collect(t, ch, 1)
	assert.Equal(t, "four", live[0].Text)
	assert.Equal(t, "bob", live[0].Sender)
}

func TestMemoryStore_OrderPreservedPerSubscriber(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	chA, cancelA, err := s.Subscribe(ctx)
	require.NoError(t, err)
	defer cancelA()
	chB, cancelB, err := s.Subscribe(ctx)
	require.NoError(t, err)
	defer cancelB()

	const n = 50
	for i := 0; i < n; i++ {
		require.NoError(t, s.Append(ctx, &Message{Sender: "alice", Text: string(rune('a' + i%26)), Mode: ModeDecrypt}))
	}

	gotA := collect(t, chA, n)
	gotB := collect(t, chB, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, string(rune('a'+i%26)), gotA[i].Text)
		assert.Equal(t, gotA[i].ID, gotB[i].ID)
	}
}

func TestMemoryStore_Cancel(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	ch, cancel, err := s.Subscribe(ctx)
	require.NoError(t, err)
	cancel()
	cancel() // idempotent

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed channel")
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber channel not closed after cancel")
	}

	// appends after cancel still succeed
	require.NoError(t, s.Append(ctx, &Message{Sender: "alice", Text: "still here", Mode: ModeDecrypt}))
}

func TestMemoryStore_ContextCancelDetaches(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()

	subCtx, stop := context.WithCancel(context.Background())
	ch, _, err := s.Subscribe(subCtx)
	require.NoError(t, err)
	stop()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel not closed after context cancel")
		}
	}
}

func TestMemoryStore_Close(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch, _, err := s.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed channel")
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber channel not closed after store close")
	}

	err = s.Append(ctx, &Message{Sender: "alice", Text: "late", Mode: ModeDecrypt})
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, _, err = s.Subscribe(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMemoryStore_EncryptedRecordShape(t *testing.T) {
	s := NewMemoryStore()
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	salt, err := keystream.NewSalt()
	require.NoError(t, err)
	msg := &Message{
		Sender: "alice",
		Text:   "Q9E=",
		Mode:   ModeEncrypt,
		Scheme: keystream.SchemeScrypt,
		Salt:   salt,
	}
	require.NoError(t, s.Append(ctx, msg))

	msgs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, ModeEncrypt, msgs[0].Mode)
	assert.Equal(t, keystream.SchemeScrypt, msgs[0].Scheme)
	assert.Equal(t, salt, msgs[0].Salt)
}
