/*
Package xcipher applies a repeating-key XOR transform to message bytes.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category.
It prevents passive observation of plain text, nothing more: the transform is
malleable, carries no integrity check, and leaks plaintext structure to
anyone holding several ciphertexts under one key.

# How it works:

Every payload byte is XORed with the key byte at the payload position modulo
the key length, so the key repeats over the payload like a ring buffer. The
transform is an involution: applying it twice with the same key returns the
original bytes, which is why there is no separate decrypt operation.

Transform is the pure form and covers the message contract. Reader and
Writer screen bytes as they stream through, for callers moving data rather
than holding it; they accept an optional starting offset into the key, and
the same key and offset must be supplied to reverse the result.
*/
package xcipher
