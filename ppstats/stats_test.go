package ppstats

import (
	"errors"
	"math"
	"testing"

	"github.com/alesforz/padoracle"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestMean(t *testing.T) {
	got, err := Mean(Sample{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !approxEqual(got, 2.5, 1e-9) {
		t.Errorf("want 2.5, got %f", got)
	}

	if _, err := Mean(Sample{}); !errors.Is(err, padoracle.ErrEmptySample) {
		t.Errorf("want ErrEmptySample, got %v", err)
	}
}

func TestMedian(t *testing.T) {
	v := Sample{5, 1, 3, 2, 4}
	got, err := Median(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 3 {
		t.Errorf("want 3, got %d", got)
	}
	// Median must not mutate its input.
	if v[0] != 5 {
		t.Errorf("Median mutated its input: %v", v)
	}

	// For an even-length sample, Median is the upper of the two middle
	// elements: sorted {1, 2, 3, 4} has index len/2 == 2, i.e. 3.
	got, err = Median(Sample{4, 1, 3, 2})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 3 {
		t.Errorf("want upper median 3, got %d", got)
	}
}

func TestStandardDeviationIdempotent(t *testing.T) {
	v := Sample{2, 4, 4, 4, 5, 5, 7, 9}
	first, err := StandardDeviation(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := StandardDeviation(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != second {
		t.Errorf("StandardDeviation not idempotent: %f != %f", first, second)
	}
	if !approxEqual(first, 2, 1e-9) {
		t.Errorf("want stddev 2, got %f", first)
	}
}

func TestCorrcoefIdenticalSamplesIsOne(t *testing.T) {
	v := Sample{1, 2, 3, 4, 5}
	got, err := Corrcoef(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !approxEqual(got, 1, 1e-9) {
		t.Errorf("want corrcoef 1, got %f", got)
	}
}

func TestPairedRMSDeviationZeroForIdenticalSamples(t *testing.T) {
	v := Sample{10, 20, 30}
	got, err := PairedRMSDeviation(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 0 {
		t.Errorf("want 0, got %f", got)
	}
}

func TestBucketDistributionIndexClamped(t *testing.T) {
	d := NewBucketDistribution(0, 100, 10, nil)
	if idx := d.BucketIndex(-5); idx != 0 {
		t.Errorf("want 0 for below-range value, got %d", idx)
	}
	if idx := d.BucketIndex(1000); idx != 9 {
		t.Errorf("want 9 for above-range value, got %d", idx)
	}
	if idx := d.BucketIndex(55); idx != 5 {
		t.Errorf("want 5 for value 55, got %d", idx)
	}
}

func TestBucketDistributionCorrcoefSelfIsOne(t *testing.T) {
	values := Sample{1, 5, 5, 12, 20, 33, 33, 47, 61, 72, 88, 95}
	d := NewBucketDistribution(0, 100, 10, values)
	got, err := d.Corrcoef(d)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !approxEqual(got, 1, 1e-9) {
		t.Errorf("want corrcoef 1 against itself, got %f", got)
	}
}

func TestBucketDistributionCorrcoefIncompatibleShapes(t *testing.T) {
	a := NewBucketDistribution(0, 100, 10, nil)
	b := NewBucketDistribution(0, 200, 10, nil)
	if _, err := a.Corrcoef(b); !errors.Is(err, padoracle.ErrIncompatibleDistribution) {
		t.Errorf("want ErrIncompatibleDistribution, got %v", err)
	}
}

func TestTimeNS(t *testing.T) {
	calls := 0
	f := func(padoracle.CipherDesc) bool {
		calls++
		return true
	}
	got := TimeNS(f, padoracle.CipherDesc{}, 5)
	if len(got) != 5 {
		t.Fatalf("want 5 samples, got %d", len(got))
	}
	if calls != 5 {
		t.Fatalf("want 5 calls, got %d", calls)
	}
	for _, v := range got {
		if v < 0 {
			t.Errorf("want non-negative duration, got %d", v)
		}
	}
}
