package chatlog

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	bin "github.com/saylorsolutions/binmap"

	"github.com/cj4mm/encryptest/internal/logging"
)

// "chatlog1" as big-endian bytes.
const logMagic uint64 = 0x636861746c6f6731

const logVersion uint8 = 1

type fileHeader struct {
	magic    uint64
	version  uint8
	reserved uint8
}

func (h *fileHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.magic),
		bin.Byte(&h.version),
		bin.Byte(&h.reserved),
	)
}

// FileStore is a Store backed by an append-only binary file. Records written
// through the same FileStore fan out to its subscribers; watching for
// appends made by other processes belongs to an external realtime layer.
type FileStore struct {
	mem    *MemoryStore
	logger logging.Logger

	mu   sync.Mutex
	file *os.File
}

var _ Store = (*FileStore)(nil)

// OpenFileStore opens or creates the chat log at path and replays it into
// memory. A torn final record, left by an interrupted append, is logged and
// truncated away; damage anywhere else fails with ErrCorruptLog. A nil
// logger discards log output.
func OpenFileStore(path string, logger logging.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With("path", path)

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading chat log: %w", err)
	}

	store := &FileStore{mem: NewMemoryStore(), logger: logger}

	if len(data) == 0 {
		var buf bytes.Buffer
		hdr := fileHeader{magic: logMagic, version: logVersion}
		if err := hdr.mapper().Write(&buf, binary.BigEndian); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			return nil, fmt.Errorf("initializing chat log: %w", err)
		}
	} else if err := store.replay(path, data); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening chat log for append: %w", err)
	}
	store.file = f
	return store, nil
}

func (s *FileStore) replay(path string, data []byte) error {
	r := bytes.NewReader(data)

	var hdr fileHeader
	if err := hdr.mapper().Read(r, binary.BigEndian); err != nil {
		return fmt.Errorf("%w: unreadable header", ErrCorruptLog)
	}
	if hdr.magic != logMagic {
		return fmt.Errorf("%w: not a chat log file", ErrCorruptLog)
	}
	if hdr.version != logVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrCorruptLog, hdr.version)
	}

	ctx := context.Background()
	goodLen := len(data) - r.Len()
	replayed := 0
	for r.Len() > 0 {
		msg, err := readRecord(r)
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Warn(ctx, "chat log ends mid-record, dropping the torn tail", "replayed", replayed)
				if err := os.Truncate(path, int64(goodLen)); err != nil {
					return fmt.Errorf("truncating torn chat log tail: %w", err)
				}
				break
			}
			return err
		}
		if err := s.mem.Append(ctx, msg); err != nil {
			return err
		}
		goodLen = len(data) - r.Len()
		replayed++
	}
	s.logger.Debug(ctx, "replayed chat log", "messages", replayed)
	return nil
}

func (s *FileStore) Append(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(msg)

	var buf bytes.Buffer
	if err := writeRecord(&buf, msg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ErrStoreClosed
	}
	if _, err := s.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("appending to chat log: %w", err)
	}
	// The record is durable now. The in-memory append must not fail on the
	// caller's context, or subscribers would miss a record that reappears on
	// reopen.
	return s.mem.Append(context.Background(), msg)
}

func (s *FileStore) Subscribe(ctx context.Context) (<-chan Message, CancelFunc, error) {
	return s.mem.Subscribe(ctx)
}

func (s *FileStore) List(ctx context.Context) ([]Message, error) {
	return s.mem.List(ctx)
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if memErr := s.mem.Close(); err == nil {
		err = memErr
	}
	return err
}
