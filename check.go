package padoracle

// CheckOption runs a boolean oracle f against opt, folding in the
// false-positive probe when one is present: the option is only accepted if f
// accepts the option itself and, when FalsePosCheck is set, also accepts the
// probe.
func CheckOption(f func(CipherDesc) bool, opt DecOption) bool {
	if !f(opt.Option) {
		return false
	}
	return opt.FalsePosCheck == nil || f(*opt.FalsePosCheck)
}

// Measurement holds the result of measuring one DecOption with a
// caller-supplied cost function, for use by timing-based disambiguation
// (see package ppstats). Probe is nil exactly when opt.FalsePosCheck was
// nil.
type Measurement struct {
	Primary uint64
	Probe   *uint64
	Index   byte
}

// Less orders Measurements by Primary, then by Probe (absent sorts before
// present), then by Index -- giving a total order suitable for picking out
// the option with the most anomalous timing.
func (m Measurement) Less(other Measurement) bool {
	if m.Primary != other.Primary {
		return m.Primary < other.Primary
	}
	if (m.Probe == nil) != (other.Probe == nil) {
		return m.Probe == nil
	}
	if m.Probe != nil && *m.Probe != *other.Probe {
		return *m.Probe < *other.Probe
	}
	return m.Index < other.Index
}

// MeasureOption runs a cost function f -- typically wall-clock latency --
// against opt's option and, when present, its false-positive probe.
func MeasureOption(f func(CipherDesc) uint64, opt DecOption) Measurement {
	m := Measurement{Primary: f(opt.Option), Index: opt.Index}
	if opt.FalsePosCheck != nil {
		p := f(*opt.FalsePosCheck)
		m.Probe = &p
	}
	return m
}
