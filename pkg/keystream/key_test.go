package keystream

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	key := Derive("secret")
	assert.Len(t, key, KeySize)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", hex.EncodeToString(key))

	// byte-identical on repeat calls
	assert.Equal(t, key, Derive("secret"))
	assert.NotEqual(t, key, Derive("Secret"))
	assert.NotEqual(t, key, Derive("secret "))
}

func TestDerive_EmptyPassword(t *testing.T) {
	key := Derive("")
	assert.Len(t, key, KeySize)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(key))
}

func TestDeriveLegacy(t *testing.T) {
	assert.Equal(t, Key{176}, DeriveLegacy("secret"))
	assert.Equal(t, Key{98}, DeriveLegacy("abc"))
	assert.Equal(t, Key{0}, DeriveLegacy(""))
	assert.Len(t, DeriveLegacy("a much longer password with spaces"), 1)
}

func TestDeriveScrypt(t *testing.T) {
	salt, err := NewSalt()
	assert.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	key, err := DeriveScrypt("a test password", salt)
	assert.NoError(t, err)
	assert.Len(t, key, KeySize)

	// same password and salt, same key
	key2, err := DeriveScrypt("a test password", salt)
	assert.NoError(t, err)
	assert.Equal(t, key, key2)

	// different salt, different key
	salt2, err := NewSalt()
	assert.NoError(t, err)
	key3, err := DeriveScrypt("a test password", salt2)
	assert.NoError(t, err)
	assert.NotEqual(t, key, key3)
}

func TestDeriveScrypt_Neg(t *testing.T) {
	_, err := DeriveScrypt("pass", nil)
	assert.ErrorIs(t, err, ErrMissingSalt)
	_, err = DeriveScrypt("pass", Salt{})
	assert.ErrorIs(t, err, ErrMissingSalt)
}

func TestForScheme(t *testing.T) {
	key, err := ForScheme(SchemeDigest, "secret", nil)
	assert.NoError(t, err)
	assert.Equal(t, Derive("secret"), key)

	// untagged records read as the canonical scheme
	key, err = ForScheme("", "secret", nil)
	assert.NoError(t, err)
	assert.Equal(t, Derive("secret"), key)

	key, err = ForScheme(SchemeLegacy, "secret", nil)
	assert.NoError(t, err)
	assert.Equal(t, DeriveLegacy("secret"), key)

	salt, err := NewSalt()
	assert.NoError(t, err)
	key, err = ForScheme(SchemeScrypt, "secret", salt)
	assert.NoError(t, err)
	assert.Len(t, key, KeySize)

	_, err = ForScheme(SchemeScrypt, "secret", nil)
	assert.ErrorIs(t, err, ErrMissingSalt)

	_, err = ForScheme("rot13", "secret", nil)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
