// Command directoracle demonstrates the classic CBC padding-oracle attack
// against a victim that answers padding-validity queries directly: no
// timing side channel, no unreliability, just a plain boolean oracle.
package main

import (
	"log"
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

	plainTexts := [][]byte{
		[]byte("Now that the party is jumping with the bass kicked in"),
		[]byte("Quick to the point, to the point, no faking"),
	}

	oracle := victim.Oracle(key)

	for _, want := range plainTexts {
		cipherText, err := victim.EncryptCBC(key, iv, want)
		if err != nil {
			log.Fatalf("encrypting demo plaintext: %s", err)
		}
		log.Print("ciphertext:")
		ppbytes.PrintBlocks(cipherText, 16, os.Stdout)

		got, err := recover(iv, cipherText, oracle)
		if err != nil {
			log.Fatalf("attack failed: %s", err)
		}
		log.Printf("recovered:  %q", got)
	}
}

// recover drives a Decryptor to completion against a direct oracle, trying
// every option in sequence and stepping on the first one the oracle accepts.
func recover(iv, cipherText []byte, oracle func(iv, cipherText []byte) bool) ([]byte, error) {
	dec, err := padoracle.NewDecryptor(iv, cipherText, padoracle.PKCS7Byte)
	if err != nil {
		return nil, err
	}

	isValid := func(d padoracle.CipherDesc) bool {
		return oracle(d.IV, d.Ciphertext)
	}

	for dec.Status() != padoracle.StatusDone {
		for it := dec.Begin(); !it.Equal(dec.End()); it = it.Next() {
			opt := it.Option()
			if padoracle.CheckOption(isValid, opt) {
				dec.Step(opt.Index)
				break
			}
		}
	}

	return dec.Plaintext(), nil
}
