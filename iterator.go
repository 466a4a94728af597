package padoracle

// optionIteratorEnd is the index one past the last valid option (0xFF);
// an OptionIterator at this index is the sentinel returned by Decryptor.End
// and must never be dereferenced via Option.
const optionIteratorEnd = 256

// OptionIterator walks the 256 candidate options of a Decryptor's current
// round. It is a thin, comparable cursor over the byte space [0, 256): it
// does not cache the option it points to, so advancing one does not pay the
// cost of materializing options that are never inspected.
//
// An OptionIterator is a value type: Next, Prev and Add all return a new
// cursor rather than mutating the receiver, so the usual Go range idiom
// applies:
//
//	for it := d.Begin(); !it.Equal(d.End()); it = it.Next() {
//		opt := it.Option()
//		// ... try opt against the oracle ...
//	}
type OptionIterator struct {
	d   *Decryptor
	ind int
}

// newOptionIterator returns a cursor over d positioned at ind.
func newOptionIterator(d *Decryptor, ind int) OptionIterator {
	return OptionIterator{d: d, ind: ind}
}

// Index returns the cursor's current position in [0, 256].
func (it OptionIterator) Index() int {
	return it.ind
}

// Option materializes the DecOption at the cursor's current position. It
// panics if called on an iterator positioned at or past Decryptor.End.
func (it OptionIterator) Option() DecOption {
	if it.ind < 0 || it.ind >= optionIteratorEnd {
		panic("padoracle: Option called on an out-of-range OptionIterator")
	}
	return it.d.Option(byte(it.ind))
}

// Add returns the cursor advanced by n positions, which may be negative. The
// result may lie outside [0, optionIteratorEnd); only Equal, Less, Next and
// Prev are meaningful on such a cursor, since Option panics on it.
func (it OptionIterator) Add(n int) OptionIterator {
	return OptionIterator{d: it.d, ind: it.ind + n}
}

// Next returns the cursor advanced by one position.
func (it OptionIterator) Next() OptionIterator {
	return it.Add(1)
}

// Prev returns the cursor stepped back by one position.
func (it OptionIterator) Prev() OptionIterator {
	return it.Add(-1)
}

// Equal reports whether it and other refer to the same position.
func (it OptionIterator) Equal(other OptionIterator) bool {
	return it.ind == other.ind
}

// Less reports whether it precedes other.
func (it OptionIterator) Less(other OptionIterator) bool {
	return it.ind < other.ind
}

// Sub returns the number of positions between other and it (it - other),
// mirroring the original iterator's difference operator.
func (it OptionIterator) Sub(other OptionIterator) int {
	return it.ind - other.ind
}
