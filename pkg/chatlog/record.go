package chatlog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cj4mm/encryptest/pkg/keystream"
)

// maxFieldLen bounds any single record field. Chat messages are short; a
// larger length in the file means the log is damaged.
const maxFieldLen = 1 << 20

// writeRecord frames msg as length-prefixed big-endian fields: six byte
// fields (id, sender, text, mode, scheme, salt) followed by the creation
// time in Unix nanoseconds.
func writeRecord(w io.Writer, msg *Message) error {
	endian := binary.BigEndian
	fields := [][]byte{
		[]byte(msg.ID),
		[]byte(msg.Sender),
		[]byte(msg.Text),
		[]byte(msg.Mode),
		[]byte(msg.Scheme),
		msg.Salt,
	}
	for _, field := range fields {
		if len(field) > maxFieldLen {
			return fmt.Errorf("record field of %d bytes exceeds the %d byte limit", len(field), maxFieldLen)
		}
		if err := binary.Write(w, endian, uint32(len(field))); err != nil {
			return err
		}
		if err := binary.Write(w, endian, field); err != nil {
			return err
		}
	}
	return binary.Write(w, endian, msg.CreatedAt.UnixNano())
}

// readRecord reverses writeRecord. io.EOF at a record boundary means a clean
// end of the log; io.ErrUnexpectedEOF means the last record is torn.
func readRecord(r io.Reader) (*Message, error) {
	endian := binary.BigEndian
	fields := make([][]byte, 6)
	for i := range fields {
		var n uint32
		if err := binary.Read(r, endian, &n); err != nil {
			if i == 0 {
				return nil, err
			}
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if n > maxFieldLen {
			return nil, fmt.Errorf("%w: field length %d", ErrCorruptLog, n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		fields[i] = buf
	}
	var createdAt int64
	if err := binary.Read(r, endian, &createdAt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	msg := &Message{
		ID:        string(fields[0]),
		Sender:    string(fields[1]),
		Text:      string(fields[2]),
		Mode:      Mode(fields[3]),
		Scheme:    keystream.Scheme(fields[4]),
		CreatedAt: time.Unix(0, createdAt).UTC(),
	}
	if len(fields[5]) > 0 {
		msg.Salt = keystream.Salt(fields[5])
	}
	return msg, nil
}
