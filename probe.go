package padoracle

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// errFound is an internal control-flow sentinel: a probe goroutine returns
// it to make errgroup cancel every other in-flight call's context, the same
// way a real error would, without that cancellation being reported to the
// caller as a failure.
var errFound = errors.New("padoracle: option found")

// ProbeParallel queries probe concurrently for every option in [begin, end),
// cancelling the shared context as soon as one answers true (or an error
// occurs). It is
// the concurrent counterpart to a plain loop over Begin()..End() calling
// CheckOption: use it when probe's dominant cost is round-trip latency to a
// real victim, so that the 256 candidates for a byte can be in flight
// together instead of one at a time.
//
// probe is expected to already fold in the false-positive check (wrap
// CheckOption around a raw oracle call); ProbeParallel treats it as an
// opaque verdict function and does not special-case DecOption.FalsePosCheck
// itself.
//
// On the first true verdict, ProbeParallel cancels the derived context
// passed to every probe call. Every option still gets its own call, and
// ProbeParallel waits for all of them to return; it then returns, among the
// options whose call answered true, the one with the lowest Index. If every
// probe call returns false, it returns the zero DecOption and found=false.
// If a call returns a non-nil error before any call has answered true,
// ProbeParallel cancels the remaining calls and returns that error.
func ProbeParallel(
	ctx context.Context,
	begin, end OptionIterator,
	probe func(context.Context, DecOption) (bool, error),
) (DecOption, bool, error) {
	grp, grpCtx := errgroup.WithContext(ctx)

	var (
		mu    sync.Mutex
		found DecOption
		ok    bool
	)

	for it := begin; it.Less(end); it = it.Next() {
		opt := it.Option()
		grp.Go(func() error {
			good, err := probe(grpCtx, opt)
			if err != nil {
				return err
			}
			if !good {
				return nil
			}

			mu.Lock()
			if !ok || opt.Index < found.Index {
				found, ok = opt, true
			}
			mu.Unlock()
			return errFound
		})
	}

	if err := grp.Wait(); err != nil && !errors.Is(err, errFound) {
		return DecOption{}, false, err
	}
	return found, ok, nil
}
