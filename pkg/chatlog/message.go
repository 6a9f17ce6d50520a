package chatlog

import (
	"time"

	"github.com/cj4mm/encryptest/pkg/keystream"
)

// Mode tags how a record's Text field is read.
type Mode string

const (
	// ModeEncrypt means Text holds base64 XOR-ciphertext.
	ModeEncrypt Mode = "encrypt"
	// ModeDecrypt means Text holds plain UTF-8, displayed unencrypted.
	ModeDecrypt Mode = "decrypt"
)

// Message is one record of the chat log. Passwords never appear here in any
// form; Salt is public derivation input stored beside the ciphertext, not a
// secret. Scheme is empty for plaintext records and for ciphertext written
// under the canonical digest derivation.
type Message struct {
	ID        string
	Sender    string
	Text      string
	Mode      Mode
	Scheme    keystream.Scheme
	Salt      keystream.Salt
	CreatedAt time.Time
}
