// Command unreliableoracle demonstrates recovering plaintext through an
// oracle that occasionally reports a false positive: a flaky network
// service, say, that about one time in a hundred accepts a padding it
// should have rejected. A single pass through the decryptor can wander down
// a wrong byte and never recover; this demo instead explores every option
// the oracle accepts, backtracking across a tree of candidate plaintexts,
// and keeps only the branches whose recovered bytes remain plausible
// PKCS#7-padded output.
package main

import (
	"log"
	"math/rand/v2"
	"os"

	"github.com/alesforz/padoracle"
	"github.com/alesforz/padoracle/internal/victim"
	"github.com/alesforz/padoracle/ppbytes"
)

func main() {
	key, err := victim.NewKey()
	if err != nil {
		log.Fatalf("generating key: %s", err)
	}
	iv, err := victim.NewIV()
	if err != nil {
		log.Fatalf("generating iv: %s", err)
	}

	want := []byte("I go crazy when I hear a cymbal")
	cipherText, err := victim.EncryptCBC(key, iv, want)
	if err != nil {
		log.Fatalf("encrypting demo plaintext: %s", err)
	}
	log.Print("ciphertext:")
	ppbytes.PrintBlocks(cipherText, 16, os.Stdout)

	direct := victim.Oracle(key)
	flaky := func(iv, ct []byte) bool {
		if direct(iv, ct) {
			return true
		}
		return rand.IntN(100) == 0 // occasionally a false accept
	}
	isValid := func(d padoracle.CipherDesc) bool {
		return flaky(d.IV, d.Ciphertext)
	}

	dec, err := padoracle.NewDecryptor(iv, cipherText, padoracle.PKCS7Byte)
	if err != nil {
		log.Fatalf("building decryptor: %s", err)
	}

	var candidates [][]byte
	decryptRec(dec, isValid, &candidates)

	found := false
	for _, c := range candidates {
		match := string(c) == string(want)
		if match {
			found = true
		}
		marker := "   "
		if match {
			marker = ">>>"
		}
		log.Printf("%s %q", marker, c)
	}
	if !found {
		log.Fatal("attack failed: no candidate matched the real plaintext")
	}
}

// decryptRec explores every option the oracle accepts from dec's current
// byte, recursing down each branch on its own cloned Decryptor and
// appending a finished plaintext to candidates whenever a branch both
// completes and still looks like valid PKCS#7-padded output.
func decryptRec(dec *padoracle.Decryptor, isValid func(padoracle.CipherDesc) bool, candidates *[][]byte) {
	for it := dec.Begin(); !it.Equal(dec.End()); it = it.Next() {
		opt := it.Option()
		if !padoracle.CheckOption(isValid, opt) {
			continue
		}

		branch := dec.Clone()
		branch.Step(opt.Index)

		if !plausiblePadding(branch.Plaintext()) {
			continue
		}

		if branch.Status() == padoracle.StatusDone {
			*candidates = append(*candidates, branch.Plaintext())
			continue
		}
		decryptRec(branch, isValid, candidates)
	}
}

// plausiblePadding reports whether pt's trailing bytes are consistent with
// being PKCS#7 padding -- i.e. whether continuing to build on this
// candidate could still end in a validly-padded block. A branch that fails
// this check can be pruned immediately instead of running to completion.
func plausiblePadding(pt []byte) bool {
	if len(pt) == 0 {
		return true
	}
	padVal := int(pt[len(pt)-1])
	if padVal <= 0 {
		return false
	}
	start := len(pt) - padVal
	if start < 0 {
		start = 0 // the padding run extends past the bytes recovered so far
	}
	for _, b := range pt[start:] {
		if int(b) != padVal {
			return false
		}
	}
	return true
}
