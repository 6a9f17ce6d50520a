package xcipher

import (
	"bytes"
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and rewind the key position to its initial offset.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and rewind the key position to its initial offset.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	cur    *cursor
}

// NewReader constructs a Reader that XORs every byte read from r with the
// repeating key, starting at the optional offset.
func NewReader(r io.Reader, key []byte, offset ...int) (Reader, error) {
	cur, err := newCursor(key, offset...)
	if err != nil {
		return nil, err
	}
	return &reader{source: r, cur: cur}, nil
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	for i := 0; i < n; i++ {
		out[i] = r.cur.apply(out[i])
	}
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.cur.rewind()
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	cur    *cursor
}

// NewWriter constructs a Writer that XORs every byte written through it with
// the repeating key, starting at the optional offset.
func NewWriter(target io.Writer, key []byte, offset ...int) (Writer, error) {
	cur, err := newCursor(key, offset...)
	if err != nil {
		return nil, err
	}
	return &writer{target: target, cur: cur}, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	var buf bytes.Buffer
	for i := 0; i < len(in); i++ {
		buf.WriteByte(w.cur.apply(in[i]))
	}
	return w.target.Write(buf.Bytes())
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.cur.rewind()
}
