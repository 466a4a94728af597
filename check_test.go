package padoracle

import "testing"

func TestCheckOptionRequiresBothProbes(t *testing.T) {
	opt := DecOption{
		Option:        CipherDesc{IV: []byte{1}, Ciphertext: []byte{2}},
		FalsePosCheck: &CipherDesc{IV: []byte{3}, Ciphertext: []byte{4}},
	}

	onlyPrimary := func(d CipherDesc) bool { return d.IV[0] == 1 }
	if CheckOption(onlyPrimary, opt) {
		t.Fatal("want false: probe buffer was rejected")
	}

	both := func(d CipherDesc) bool { return true }
	if !CheckOption(both, opt) {
		t.Fatal("want true: both buffers accepted")
	}
}

func TestCheckOptionNoProbe(t *testing.T) {
	opt := DecOption{Option: CipherDesc{IV: []byte{1}}}
	accept := func(d CipherDesc) bool { return true }
	if !CheckOption(accept, opt) {
		t.Fatal("want true: no probe required")
	}
}

func TestMeasureOption(t *testing.T) {
	opt := DecOption{
		Index:         9,
		Option:        CipherDesc{IV: []byte{1}},
		FalsePosCheck: &CipherDesc{IV: []byte{2}},
	}
	cost := func(d CipherDesc) uint64 { return uint64(d.IV[0]) * 10 }

	m := MeasureOption(cost, opt)
	if m.Primary != 10 || m.Probe == nil || *m.Probe != 20 || m.Index != 9 {
		t.Fatalf("unexpected measurement: %+v", m)
	}
}

func TestMeasurementLess(t *testing.T) {
	a := Measurement{Primary: 1, Index: 0}
	b := Measurement{Primary: 2, Index: 0}
	if !a.Less(b) {
		t.Fatal("want a < b by Primary")
	}

	p := uint64(5)
	c := Measurement{Primary: 1, Probe: nil, Index: 0}
	d := Measurement{Primary: 1, Probe: &p, Index: 0}
	if !c.Less(d) {
		t.Fatal("want absent Probe to sort before present Probe")
	}
}
