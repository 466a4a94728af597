// Package victim implements a toy AES-CBC encryption service with a
// padding-oracle leak, for use by this module's demos and tests. It is
// deliberately not exported outside the module: a real attack target is
// whatever system the caller is pointed at, never code shipped alongside the
// attacker.
package victim

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"time"

	"github.com/alesforz/padoracle/ppbytes"
)

// ErrBadPadding is returned by DecryptCBC when the decrypted plaintext does
// not end in valid PKCS#7 padding.
var ErrBadPadding = errors.New("victim: invalid PKCS#7 padding")

// NewKey returns a random AES-256 key.
func NewKey() ([]byte, error) {
	key, err := ppbytes.Random(32)
	if err != nil {
		return nil, fmt.Errorf("victim: generating key: %w", err)
	}
	return key, nil
}

// NewIV returns a random initialization vector sized for AES's block size.
func NewIV() ([]byte, error) {
	iv, err := ppbytes.Random(aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("victim: generating iv: %w", err)
	}
	return iv, nil
}

// pkcs7Pad pads data to a multiple of aes.BlockSize by appending the count of
// padding bytes added, PKCS#7-style.
func pkcs7Pad(data []byte) []byte {
	pad := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

// pkcs7Unpad strips PKCS#7 padding from data, failing with ErrBadPadding if
// the padding is malformed.
func pkcs7Unpad(data []byte) ([]byte, error) {
	n := len(data)
	if n == 0 || n%aes.BlockSize != 0 {
		return nil, ErrBadPadding
	}

	pad := int(data[n-1])
	if pad == 0 || pad > aes.BlockSize || pad > n {
		return nil, ErrBadPadding
	}
	for _, b := range data[n-pad:] {
		if int(b) != pad {
			return nil, ErrBadPadding
		}
	}
	return data[:n-pad], nil
}

// EncryptCBC PKCS#7-pads plainText and encrypts it under key in CBC mode
// with the given iv. It does not modify its inputs.
func EncryptCBC(key, iv, plainText []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("victim: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("victim: iv length %d does not match block size %d", len(iv), block.BlockSize())
	}

	padded := pkcs7Pad(plainText)
	cipherText := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(cipherText, padded)
	return cipherText, nil
}

// DecryptCBC decrypts cipherText under key in CBC mode with the given iv and
// strips its PKCS#7 padding, returning ErrBadPadding if the padding is
// malformed. It does not modify its inputs.
func DecryptCBC(key, iv, cipherText []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("victim: %w", err)
	}
	if len(iv) != block.BlockSize() || len(cipherText) == 0 || len(cipherText)%block.BlockSize() != 0 {
		return nil, ErrBadPadding
	}

	plainText := make([]byte, len(cipherText))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plainText, cipherText)
	return pkcs7Unpad(plainText)
}

// Oracle returns a direct padding oracle bound to key: it reports whether
// (iv, cipherText) decrypts to validly-padded plaintext, with no side
// channel beyond that boolean.
func Oracle(key []byte) func(iv, cipherText []byte) bool {
	return func(iv, cipherText []byte) bool {
		_, err := DecryptCBC(key, iv, cipherText)
		return err == nil
	}
}

// TimingOracle returns an oracle bound to key that leaks validity through
// latency instead of a direct verdict: it always reports true, but sleeps
// for delay first whenever the padding is valid, so that a caller measuring
// round-trip time alone can still distinguish the two outcomes. It models a
// victim that swallows the padding error but whose bad-padding early-exit
// executes measurably faster than its full unpad-and-process path.
func TimingOracle(key []byte, delay time.Duration) func(iv, cipherText []byte) bool {
	direct := Oracle(key)
	return func(iv, cipherText []byte) bool {
		if direct(iv, cipherText) {
			time.Sleep(delay)
		}
		return true
	}
}
