// Package padoracle implements a CBC padding-oracle attack engine.
//
// Given a ciphertext, the initialization vector (IV) it was encrypted with,
// and access to a black-box oracle that reports whether an arbitrary
// (IV, ciphertext) pair decrypts to correctly-padded plaintext, a Decryptor
// recovers the plaintext byte by byte without ever learning the encryption
// key.
//
// The package never performs decryption itself: it only manufactures
// candidate (IV, ciphertext) pairs ("options") and consumes the caller's
// verdict on each one. The block cipher, the transport to the victim, and
// the oracle's reliability are all the caller's concern.
package padoracle

// Status reports how far a Decryptor has progressed through an attack.
type Status int

const (
	// StatusNone means the decryptor is mid-block: call Step again with the
	// index of a good option to continue.
	StatusNone Status = iota

	// StatusNewBlock means the decryptor just finished recovering a block
	// and has moved on to the block preceding it.
	StatusNewBlock

	// StatusDone means the entire ciphertext has been recovered. Plaintext
	// holds the full padded plaintext; no further Step calls are valid.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusNewBlock:
		return "new-block"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// CipherDesc is an immutable (IV, ciphertext) pair: the two inputs a padding
// oracle takes.
type CipherDesc struct {
	IV         []byte
	Ciphertext []byte
}

// clone returns a deep copy of d, so that the result may be mutated, or
// handed to a concurrently-running oracle, without aliasing d's storage.
func (d CipherDesc) clone() CipherDesc {
	iv := make([]byte, len(d.IV))
	copy(iv, d.IV)

	ct := make([]byte, len(d.Ciphertext))
	copy(ct, d.Ciphertext)

	return CipherDesc{IV: iv, Ciphertext: ct}
}

// DecOption is one of the 256 candidates for the current target byte: the
// manipulated (IV, ciphertext) pair to submit to the oracle, together with
// an optional false-positive probe.
//
// FalsePosCheck is populated exactly when the current target byte is the
// last byte of the current target block. A byte value that produces valid
// padding "0x01" at the last position is ambiguous: the true plaintext might
// actually end in "... 0x02 0x02", which would also look like valid padding
// once the preceding byte happens to match. Querying FalsePosCheck --
// identical to Option except for one flipped bit in the byte immediately
// before the target -- and requiring it to also validate rules that out.
type DecOption struct {
	Index         byte
	Option        CipherDesc
	FalsePosCheck *CipherDesc
}

// PaddingFunc returns the byte a padding scheme requires at a given position
// when the padding run has the given total length.
//
// pos is 0-indexed from the *start of the padding run*, not from the start
// of the block: pos == 0 is the first padding byte, and pos == length-1 is
// always the last byte of the block, the one every standard scheme (PKCS#7,
// ANSI X.923, ISO 10126) singles out to hold the padding count. This
// reparametrization -- relative to the padding run rather than to the block
// -- describes exactly the same bytes the underlying invariant cares about,
// without requiring the function to know the block size.
//
// PaddingFunc must be deterministic and free of side effects: the decryptor
// calls it repeatedly and assumes identical answers for identical arguments.
type PaddingFunc func(pos, length int) byte
