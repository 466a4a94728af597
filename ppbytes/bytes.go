// Package ppbytes provides small byte-slice helpers shared by this module's
// demo commands: generating random keys and IVs, and formatting a byte
// slice as fixed-width blocks for inspection.
package ppbytes

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Random returns a slice of n cryptographically random bytes.
func Random(n uint) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("ppbytes: generating random bytes: %w", err)
	}
	return buf, nil
}

// PrintBlocks writes bb to out as successive blkSize-byte blocks, one per
// line, each block shown both as decimal byte values and as text.
// PrintBlocks assumes len(bb) is a multiple of blkSize; a shorter final
// block is printed as-is.
func PrintBlocks(bb []byte, blkSize uint, out io.Writer) {
	nBlks := (uint(len(bb)) + blkSize - 1) / blkSize

	for i := uint(0); i < nBlks; i++ {
		start := i * blkSize
		end := start + blkSize
		if end > uint(len(bb)) {
			end = uint(len(bb))
		}
		blk := bb[start:end]
		fmt.Fprintf(out, "%-*v\t%s\n", 3, blk, blk)
	}
}
