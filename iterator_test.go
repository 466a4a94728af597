package padoracle

import (
	"bytes"
	"testing"
)

func newTestDecryptor(t *testing.T) *Decryptor {
	t.Helper()
	const blockSize = 16
	iv := bytes.Repeat([]byte{0x05}, blockSize)
	ct := bytes.Repeat([]byte{0x06}, blockSize)
	dec, err := NewDecryptor(iv, ct, PKCS7Byte)
	if err != nil {
		t.Fatalf("NewDecryptor: %s", err)
	}
	return dec
}

func TestOptionIteratorRange(t *testing.T) {
	dec := newTestDecryptor(t)

	count := 0
	for it := dec.Begin(); !it.Equal(dec.End()); it = it.Next() {
		if it.Index() != count {
			t.Fatalf("want index %d, got %d", count, it.Index())
		}
		count++
	}
	if count != 256 {
		t.Fatalf("want 256 options, got %d", count)
	}
}

func TestOptionIteratorReverse(t *testing.T) {
	dec := newTestDecryptor(t)

	it := dec.End().Prev()
	if it.Index() != 255 {
		t.Fatalf("want index 255, got %d", it.Index())
	}
	it = it.Prev()
	if it.Index() != 254 {
		t.Fatalf("want index 254, got %d", it.Index())
	}
}

func TestOptionIteratorSub(t *testing.T) {
	dec := newTestDecryptor(t)
	a := dec.Begin().Add(10)
	b := dec.Begin().Add(3)
	if got := a.Sub(b); got != 7 {
		t.Fatalf("want 7, got %d", got)
	}
}

func TestOptionIteratorOptionPanicsPastEnd(t *testing.T) {
	dec := newTestDecryptor(t)
	defer func() {
		if recover() == nil {
			t.Fatal("want panic calling Option on End()")
		}
	}()
	dec.End().Option()
}
