package padoracle

import "errors"

// ErrInvalidLength is returned by NewDecryptor when the ciphertext's length
// is not a positive multiple of the IV's length, or when the IV is empty.
var ErrInvalidLength = errors.New("padoracle: ciphertext length is not a positive multiple of the iv length")

// ErrEmptySample is returned by the ppstats package's summary statistics when
// given an empty sample.
var ErrEmptySample = errors.New("padoracle: statistic requires a non-empty sample")

// ErrIncompatibleDistribution is returned when comparing two bucket
// distributions whose shape parameters (min, max, bucket step, bucket count)
// do not match.
var ErrIncompatibleDistribution = errors.New("padoracle: bucket distributions are not comparable")
