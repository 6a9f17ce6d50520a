package msgcrypt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidEncoding marks input that is not valid padded base64 and so
	// cannot be a ciphertext produced by this pipeline.
	ErrInvalidEncoding = errors.New("not valid base64 ciphertext")
	// ErrInvalidText marks transform output that is not valid UTF-8,
	// typically the result of a wrong password or a tampered ciphertext.
	ErrInvalidText = errors.New("decrypted bytes are not valid UTF-8")
)

// EncodeText renders cipher bytes as standard padded base64 (RFC 4648), the
// only representation ever persisted or transmitted for an encrypted message.
func EncodeText(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeText reverses EncodeText. Wrong length modulo 4, characters outside
// the standard alphabet, and misplaced padding all fail with
// ErrInvalidEncoding.
func DecodeText(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}

// DecodeUTF8 converts raw bytes back into a string, failing with
// ErrInvalidText when the bytes are not well-formed UTF-8.
func DecodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidText
	}
	return string(data), nil
}
