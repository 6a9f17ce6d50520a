package keystream

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	// KeySize is the length of keys produced by Derive and DeriveScrypt.
	KeySize = 32
	// SaltSize is the length of salts produced by NewSalt for SchemeScrypt.
	SaltSize = 32

	scryptIterations   = 1 << 17
	scryptRelBlockSize = 8
	scryptCPUCost      = 1
)

var (
	ErrUnknownScheme = errors.New("unknown key derivation scheme")
	ErrMissingSalt   = errors.New("derivation scheme requires a salt")
)

// Key is a keystream seed. The screening transform repeats it over the
// payload, so any non-empty Key is usable.
type Key []byte

// Salt is a slice of secure random bytes consumed by SchemeScrypt. It is
// stored in the clear next to the ciphertext.
type Salt []byte

// Scheme tags which derivation produced a key. The tag travels with the
// stored message record, never inside the encoded ciphertext itself.
type Scheme string

const (
	SchemeDigest Scheme = "sha256"
	SchemeLegacy Scheme = "legacy"
	SchemeScrypt Scheme = "scrypt"
)

// Derive returns the canonical key for a password: the SHA-256 digest of its
// exact UTF-8 bytes. Case- and whitespace-sensitive, no normalization, and
// total over all strings including the empty one.
func Derive(password string) Key {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// DeriveLegacy returns the single-byte key of the legacy rolling hash,
// h = (h*31 + codepoint) mod 256. Only 256 keys are possible; do not use it
// for anything but reading data the legacy tool wrote.
func DeriveLegacy(password string) Key {
	h := 0
	for _, r := range password {
		h = (h*31 + int(r)) % 256
	}
	return Key{byte(h)}
}

// DeriveScrypt stretches the password through scrypt with the given salt.
// The parameters are the interactive-delay set: cheap enough for per-message
// use, costly enough to slow bulk guessing.
func DeriveScrypt(password string, salt Salt) (Key, error) {
	if len(salt) == 0 {
		return nil, ErrMissingSalt
	}
	key, err := scrypt.Key([]byte(password), salt, scryptIterations, scryptRelBlockSize, scryptCPUCost, KeySize)
	if err != nil {
		return nil, fmt.Errorf("scrypt derivation: %w", err)
	}
	return key, nil
}

// NewSalt generates a fresh salt from the OS entropy pool.
func NewSalt() (Salt, error) {
	salt := make(Salt, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to read salt bytes: %w", err)
	}
	return salt, nil
}

// ForScheme derives a key for the given scheme tag. An empty tag means
// SchemeDigest, the canonical derivation. The salt is only consulted by
// SchemeScrypt.
func ForScheme(scheme Scheme, password string, salt Salt) (Key, error) {
	switch scheme {
	case SchemeDigest, "":
		return Derive(password), nil
	case SchemeLegacy:
		return DeriveLegacy(password), nil
	case SchemeScrypt:
		return DeriveScrypt(password, salt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
