package ppbytes

import (
	"bytes"
	"testing"
)

func TestRandomLength(t *testing.T) {
	got, err := Random(16)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 16 {
		t.Fatalf("want 16 bytes, got %d", len(got))
	}
}

func TestRandomDiffersAcrossCalls(t *testing.T) {
	a, err := Random(32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	b, err := Random(32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("want two independent random draws to differ")
	}
}

func TestPrintBlocks(t *testing.T) {
	var buf bytes.Buffer
	PrintBlocks([]byte("aaaabbbb"), 4, &buf)

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 2 {
		t.Fatalf("want 2 lines for 2 blocks, got %d:\n%s", lines, buf.String())
	}
}

func TestPrintBlocksShortFinalBlock(t *testing.T) {
	var buf bytes.Buffer
	PrintBlocks([]byte("aaaabb"), 4, &buf)

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 2 {
		t.Fatalf("want 2 lines, got %d:\n%s", lines, buf.String())
	}
}
