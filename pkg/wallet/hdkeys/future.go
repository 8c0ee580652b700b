package hdkeys

import (
	"context"
	"fmt"
)

// SeedFuture is the single-resolution handle of a seed derivation offloaded
// to a background goroutine. The offload is a scheduling choice only: the
// resolved seed is byte-identical to what SeedFromMnemonic returns for the
// same args.
type SeedFuture struct {
	done chan struct{}
	seed []byte
	err  error
}

// SeedFromMnemonicAsync starts the seed stretch on its own goroutine and
// returns immediately. The caller collects the result with Wait.
func SeedFromMnemonicAsync(args SeedArgs) *SeedFuture {
	f := &SeedFuture{done: make(chan struct{})}
	go func() {
		f.seed, f.err = SeedFromMnemonic(args)
		close(f.done)
	}()
	return f
}

// Wait blocks until the derivation resolves or the context is canceled.
// A canceled context surfaces ErrDerivationInterrupted, keeping scheduling
// failures distinguishable from derivation failures like ErrInvalidMnemonic.
// Wait can be called any number of times, every call returns the same result.
func (f *SeedFuture) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-f.done:
		return f.seed, f.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", ErrDerivationInterrupted, ctx.Err())
	}
}
