/*
Package msgcrypt composes key derivation, the XOR transform, and text
framing into the message operations the rest of the application calls.

The pipeline is fixed: the plaintext is rendered as UTF-8 bytes, XORed with
the derived key, and encoded as standard padded base64. Decrypting runs the
same steps backwards. The base64 output is
plain ASCII and interoperable with any RFC 4648 decoder, so ciphertext
written by one client reads back in another.

Failures are sentinel errors matched with errors.Is. ErrInvalidEncoding
means the input was not valid padded base64, so it was never a ciphertext
from this pipeline; ErrInvalidText means the XOR result was not valid UTF-8,
which usually points at a wrong password or a corrupted ciphertext. The two
are distinct so callers can word their messages accordingly.

A wrong password does not reliably fail. Plenty of wrong keys still XOR into
valid UTF-8, and the scheme carries no integrity check that could tell. A nil
error from DecryptMessage means "the result was valid UTF-8", never "the
password was correct".
*/
package msgcrypt
