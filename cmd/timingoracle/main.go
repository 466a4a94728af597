// Command timingoracle demonstrates disambiguating a CBC padding oracle
// purely from response latency: the victim never reports its verdict
// directly, but takes measurably longer to respond when the padding is
// valid. It shows two strategies -- a simple mean-latency threshold, and a
// bucketed-histogram correlation that tolerates more overlapping, noisier
// distributions than a raw mean comparison can.
package main

import (
	"log"
	"os"
	"time"

	"github.com/alesforz/padoracle"
	"github.com/alesforz/padoracle/internal/victim"
	"github.com/alesforz/padoracle/ppbytes"
	"github.com/alesforz/padoracle/ppstats"
)

const (
	tries      = 100
	buckets    = 10
	validDelay = 400 * time.Microsecond
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

	want := []byte("Burning 'em, if you ain't quick and nimble")
	cipherText, err := victim.EncryptCBC(key, iv, want)
	if err != nil {
		log.Fatalf("encrypting demo plaintext: %s", err)
	}
	log.Print("ciphertext:")
	ppbytes.PrintBlocks(cipherText, 16, os.Stdout)

	oracle := victim.TimingOracle(key, validDelay)
	query := func(d padoracle.CipherDesc) bool {
		return oracle(d.IV, d.Ciphertext)
	}

	good, bad, min, max := calibrate(padoracle.CipherDesc{IV: iv, Ciphertext: cipherText}, query)
	log.Printf("calibration: min=%dns max=%dns", min, max)

	got, err := decryptByMean(iv, cipherText, query)
	if err != nil {
		log.Fatalf("mean-based attack failed: %s", err)
	}
	log.Printf("recovered (mean strategy):     %q", got)

	got, err = decryptByCorrcoef(iv, cipherText, query, good, bad, min, max)
	if err != nil {
		log.Fatalf("correlation-based attack failed: %s", err)
	}
	log.Printf("recovered (corrcoef strategy): %q", got)
}

// calibrate samples the oracle's latency against the real ciphertext (always
// valid) and a corrupted copy (always invalid), to bound the two
// histograms' shared range.
func calibrate(d padoracle.CipherDesc, query func(padoracle.CipherDesc) bool) (good, bad ppstats.Sample, min, max int64) {
	badCT := make([]byte, len(d.Ciphertext))
	copy(badCT, d.Ciphertext)
	badCT[len(badCT)-1] ^= 0x12

	good = ppstats.TimeNS(query, d, tries)
	bad = ppstats.TimeNS(query, padoracle.CipherDesc{IV: d.IV, Ciphertext: badCT}, tries)

	min, max = good[0], good[0]
	for _, s := range [2]ppstats.Sample{good, bad} {
		for _, v := range s {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return good, bad, min, max
}

// decryptByMean recovers the plaintext by accepting the option whose mean
// latency exceeds the midpoint between a known-good and known-bad mean.
func decryptByMean(iv, cipherText []byte, query func(padoracle.CipherDesc) bool) ([]byte, error) {
	dec, err := padoracle.NewDecryptor(iv, cipherText, padoracle.PKCS7Byte)
	if err != nil {
		return nil, err
	}

	base := padoracle.CipherDesc{IV: iv, Ciphertext: cipherText}
	goodMean, _ := ppstats.Mean(ppstats.TimeNS(query, base, tries))

	badCT := make([]byte, len(cipherText))
	copy(badCT, cipherText)
	badCT[len(badCT)-1] ^= 0x12
	badMean, _ := ppstats.Mean(ppstats.TimeNS(query, padoracle.CipherDesc{IV: iv, Ciphertext: badCT}, tries))

	mid := (goodMean + badMean) / 2

	for dec.Status() != padoracle.StatusDone {
		for it := dec.Begin(); !it.Equal(dec.End()); it = it.Next() {
			opt := it.Option()
			isValid := func(d padoracle.CipherDesc) bool {
				m, _ := ppstats.Mean(ppstats.TimeNS(query, d, tries))
				return m > mid
			}
			if padoracle.CheckOption(isValid, opt) {
				dec.Step(opt.Index)
				break
			}
		}
	}
	return dec.Plaintext(), nil
}

// decryptByCorrcoef recovers the plaintext by comparing each option's
// latency histogram against reference good/bad histograms, accepting the
// option whose shape correlates more closely with "good".
func decryptByCorrcoef(
	iv, cipherText []byte,
	query func(padoracle.CipherDesc) bool,
	goodSample, badSample ppstats.Sample,
	min, max int64,
) ([]byte, error) {
	dec, err := padoracle.NewDecryptor(iv, cipherText, padoracle.PKCS7Byte)
	if err != nil {
		return nil, err
	}

	good := ppstats.NewBucketDistribution(min, max, buckets, goodSample)
	bad := ppstats.NewBucketDistribution(min, max, buckets, badSample)

	for dec.Status() != padoracle.StatusDone {
		for it := dec.Begin(); !it.Equal(dec.End()); it = it.Next() {
			opt := it.Option()
			isValid := func(d padoracle.CipherDesc) bool {
				dist := ppstats.NewBucketDistribution(min, max, buckets, ppstats.TimeNS(query, d, tries/5))
				cg, _ := good.Corrcoef(dist)
				cb, _ := bad.Corrcoef(dist)
				return cg > cb
			}
			if padoracle.CheckOption(isValid, opt) {
				dec.Step(opt.Index)
				break
			}
		}
	}
	return dec.Plaintext(), nil
}
