package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cj4mm/encryptest/pkg/keystream"
	"github.com/cj4mm/encryptest/pkg/msgcrypt"
	"github.com/cj4mm/encryptest/pkg/xcipher"
)

// result is what one invocation produces: the transformed text, plus the
// generated salt when the scrypt scheme mints one at encrypt time.
type result struct {
	text string
	salt keystream.Salt
}

func parseScheme(name string) (keystream.Scheme, error) {
	switch keystream.Scheme(name) {
	case keystream.SchemeDigest, keystream.SchemeLegacy, keystream.SchemeScrypt:
		return keystream.Scheme(name), nil
	case "":
		return keystream.SchemeDigest, nil
	default:
		return "", fmt.Errorf("%w: %q", keystream.ErrUnknownScheme, name)
	}
}

func parseSalt(saltHex string) (keystream.Salt, error) {
	if saltHex == "" {
		return nil, nil
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, fmt.Errorf("salt must be a hex string: %w", err)
	}
	return salt, nil
}

// transformText runs one encrypt or decrypt through the message pipeline.
// For scrypt encryption without a caller-supplied salt, a fresh one is
// generated and returned so the caller can store it with the ciphertext.
func transformText(decrypt bool, scheme keystream.Scheme, text, password string, salt keystream.Salt) (*result, error) {
	if decrypt {
		plain, err := msgcrypt.DecryptScheme(scheme, text, password, salt)
		if err != nil {
			return nil, err
		}
		return &result{text: plain}, nil
	}

	var err error
	if scheme == keystream.SchemeScrypt && len(salt) == 0 {
		salt, err = keystream.NewSalt()
		if err != nil {
			return nil, err
		}
	}
	encoded, err := msgcrypt.EncryptScheme(scheme, text, password, salt)
	if err != nil {
		return nil, err
	}
	res := &result{text: encoded}
	if scheme == keystream.SchemeScrypt {
		res.salt = salt
	}
	return res, nil
}

// screenStream copies in to out, screening every byte with the repeating key
// starting at offset. Raw bytes only, no base64 framing: running the same
// key and offset over the output restores the input, so one operation covers
// both directions.
func screenStream(in io.Reader, out io.Writer, key keystream.Key, offset int) (int64, error) {
	w, err := xcipher.NewWriter(out, key, offset)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, in)
}
