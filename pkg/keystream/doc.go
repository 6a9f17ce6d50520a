/*
Package keystream turns a shared password into the repeating key bytes used
to screen message text.

Note that none of this makes the downstream XOR transform encryption. The
derived key only decides how expensive it is to guess the password; the
transform itself stays trivially malleable either way.

# Schemes

Three derivations exist, tagged by Scheme so stored messages can say which
one produced their key:

  - SchemeDigest is the canonical derivation: the SHA-256 digest of the
    password's UTF-8 bytes. Deterministic, 32 bytes, never fails.
  - SchemeLegacy reproduces the single-byte rolling hash shipped by earlier
    versions of this tool. It admits only 256 distinct keys and exists solely
    to read data those versions wrote. New messages must never use it.
  - SchemeScrypt runs the password through scrypt with a per-message salt.
    The salt has to be stored next to the ciphertext and handed back at
    decrypt time.

Messages carrying no scheme tag are read as SchemeDigest. A reader must not
guess SchemeLegacy for untagged data.
*/
package keystream
