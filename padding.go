package padoracle

// PKCS7Byte is the canonical PKCS#7 padding function: every padding byte,
// regardless of position, equals the padding length.
// For instance, "YELLOW SUBMARINE" (16 bytes) padded to 20 bytes is:
// "YELLOW SUBMARINE\x04\x04\x04\x04"
func PKCS7Byte(pos, length int) byte {
	_ = pos
	return byte(length)
}

// ANSIX923Byte implements ANSI X.923 padding: every padding byte is zero
// except the final one, which holds the padding length.
func ANSIX923Byte(pos, length int) byte {
	if pos == length-1 {
		return byte(length)
	}
	return 0
}

// ISO10126Byte implements ISO 10126 padding. The standard leaves all but the
// final padding byte unspecified (conventionally random); this
// implementation fills them with zero instead, since randomizing them would
// make option construction non-deterministic, which PaddingFunc's contract
// forbids. The oracle only ever depends on the final, length-holding byte,
// so this substitution is observationally identical for attack purposes.
func ISO10126Byte(pos, length int) byte {
	if pos == length-1 {
		return byte(length)
	}
	return 0
}
