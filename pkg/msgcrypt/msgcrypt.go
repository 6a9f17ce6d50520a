package msgcrypt

import (
	"github.com/cj4mm/encryptest/pkg/keystream"
	"github.com/cj4mm/encryptest/pkg/xcipher"
)

// EncryptMessage screens plaintext under the canonical digest-derived key
// and returns the base64 text to store. It cannot fail for any plaintext and
// password; rejecting empty messages is the caller's job.
func EncryptMessage(plaintext, password string) (string, error) {
	return EncryptScheme(keystream.SchemeDigest, plaintext, password, nil)
}

// DecryptMessage reverses EncryptMessage. It fails with ErrInvalidEncoding
// when encoded is not valid padded base64, and with ErrInvalidText when the
// XOR result is not valid UTF-8. See the package doc for what a nil error
// does and does not mean.
func DecryptMessage(encoded, password string) (string, error) {
	return DecryptScheme(keystream.SchemeDigest, encoded, password, nil)
}

// EncryptScheme is EncryptMessage with an explicit key derivation scheme.
// SchemeScrypt requires a salt, which must be stored beside the ciphertext
// and passed back to DecryptScheme.
func EncryptScheme(scheme keystream.Scheme, plaintext, password string, salt keystream.Salt) (string, error) {
	key, err := keystream.ForScheme(scheme, password, salt)
	if err != nil {
		return "", err
	}
	cipherBytes, err := xcipher.Transform([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return EncodeText(cipherBytes), nil
}

// DecryptScheme is DecryptMessage with an explicit key derivation scheme.
func DecryptScheme(scheme keystream.Scheme, encoded, password string, salt keystream.Salt) (string, error) {
	key, err := keystream.ForScheme(scheme, password, salt)
	if err != nil {
		return "", err
	}
	cipherBytes, err := DecodeText(encoded)
	if err != nil {
		return "", err
	}
	plainBytes, err := xcipher.Transform(cipherBytes, key)
	if err != nil {
		return "", err
	}
	return DecodeUTF8(plainBytes)
}
