// Package ppstats provides the summary statistics a timing-oracle attack
// needs to tell a padding-valid response apart from a padding-invalid one by
// latency alone: means, medians, variance-based measures, and a bucketed
// histogram correlation that is more robust to a few slow outliers than a
// raw mean comparison.
//
// The summary statistics (Mean, Median, Covariance, StandardDeviation,
// PairedRMSDeviation and Corrcoef) operate on a Sample of int64 nanosecond
// durations (or any other int64 quantity) and return ErrEmptySample, from
// the padoracle package, for an empty sample.
package ppstats

import (
	"math"
	"sort"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/alesforz/padoracle"
)

// Sample is a timing or other numeric measurement series.
type Sample = []int64

// TimeNS calls f n times against d and returns the wall-clock latency of
// each call in nanoseconds, in call order.
func TimeNS(f func(padoracle.CipherDesc) bool, d padoracle.CipherDesc, n int) Sample {
	res := make(Sample, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		f(d)
		res[i] = time.Since(start).Nanoseconds()
	}
	return res
}

func sum[T constraints.Integer | constraints.Float](v []T) T {
	var r T
	for _, x := range v {
		r += x
	}
	return r
}

// Mean returns the arithmetic mean of v.
func Mean(v Sample) (float64, error) {
	if len(v) == 0 {
		return 0, padoracle.ErrEmptySample
	}
	return float64(sum(v)) / float64(len(v)), nil
}

// Median returns the middle element of v once sorted (the upper of the two
// middle elements when len(v) is even), leaving v unmodified.
func Median(v Sample) (int64, error) {
	if len(v) == 0 {
		return 0, padoracle.ErrEmptySample
	}
	sorted := make(Sample, len(v))
	copy(sorted, v)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2], nil
}

// Covariance returns the population covariance of a and b, which must have
// equal, non-zero length.
func Covariance(a, b Sample) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, padoracle.ErrEmptySample
	}
	ma, _ := Mean(a)
	mb, _ := Mean(b)

	var r float64
	for i := range a {
		r += (float64(a[i]) - ma) * (float64(b[i]) - mb)
	}
	return r / float64(len(a)), nil
}

// StandardDeviation returns the population standard deviation of v.
func StandardDeviation(v Sample) (float64, error) {
	if len(v) == 0 {
		return 0, padoracle.ErrEmptySample
	}
	m, _ := Mean(v)

	var r float64
	for _, x := range v {
		diff := float64(x) - m
		r += diff * diff
	}
	return math.Sqrt(r / float64(len(v))), nil
}

// PairedRMSDeviation returns the root-mean-square of the element-wise
// differences between a and b, which must have equal, non-zero length. It
// is a measure of how far two paired samples drift apart, independent of
// either sample's own variance.
func PairedRMSDeviation(a, b Sample) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, padoracle.ErrEmptySample
	}

	var r float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		r += diff * diff
	}
	return math.Sqrt(r / float64(len(a))), nil
}

// Corrcoef returns the Pearson correlation coefficient of a and b.
func Corrcoef(a, b Sample) (float64, error) {
	cov, err := Covariance(a, b)
	if err != nil {
		return 0, err
	}
	sda, _ := StandardDeviation(a)
	sdb, _ := StandardDeviation(b)
	return cov / (sda * sdb), nil
}

// BucketDistribution is a histogram of a numeric sample over bucketCount
// equal-width buckets spanning [min, max). Values below min fall in the
// first bucket; values at or above max fall in the last one.
//
// Two BucketDistributions are only comparable -- via Corrcoef -- when they
// share the same min, max and bucket count.
type BucketDistribution struct {
	min, max   int64
	bucketStep int64
	buckets    []int64
}

// NewBucketDistribution bins values into bucketCount buckets spanning
// [min, max). bucketCount must be positive and max must be greater than
// min.
func NewBucketDistribution(min, max int64, bucketCount int, values Sample) BucketDistribution {
	if bucketCount <= 0 {
		panic("ppstats: bucketCount must be positive")
	}
	if max <= min {
		panic("ppstats: max must be greater than min")
	}

	d := BucketDistribution{
		min:        min,
		max:        max,
		bucketStep: (max - min) / int64(bucketCount),
		buckets:    make([]int64, bucketCount),
	}
	for _, v := range values {
		d.buckets[d.BucketIndex(v)]++
	}
	return d
}

// BucketIndex returns the index of the bucket v falls into, clamped to the
// valid range so that values outside [min, max) land in the first or last
// bucket.
func (d BucketDistribution) BucketIndex(v int64) int {
	raw := (v - d.min) / d.bucketStep
	if raw < 0 {
		return 0
	}
	if last := len(d.buckets) - 1; raw > int64(last) {
		return last
	}
	return int(raw)
}

// Buckets returns the histogram's bucket counts.
func (d BucketDistribution) Buckets() []int64 {
	b := make([]int64, len(d.buckets))
	copy(b, d.buckets)
	return b
}

// shapeEqual reports whether d and other have the same min, max, bucket
// step and bucket count, and are therefore comparable.
func (d BucketDistribution) shapeEqual(other BucketDistribution) bool {
	return d.min == other.min &&
		d.max == other.max &&
		d.bucketStep == other.bucketStep &&
		len(d.buckets) == len(other.buckets)
}

// Corrcoef returns the Pearson correlation coefficient between d's and
// other's bucket counts. Corrcoef does not mutate either distribution; it
// has a pointer receiver while other is passed by value, unlike the other
// BucketDistribution methods, which all have value receivers.
func (d *BucketDistribution) Corrcoef(other BucketDistribution) (float64, error) {
	if !d.shapeEqual(other) {
		return 0, padoracle.ErrIncompatibleDistribution
	}
	return Corrcoef(d.buckets, other.buckets)
}
