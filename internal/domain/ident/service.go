package ident

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Allocator hands out task and project identifiers.
//
// The persisted counter is the source of monotonicity; the directory scan is
// only a floor so records created outside the tool are never collided with.
type Allocator struct {
	scanner  Scanner
	counters CounterRepository
	logger   *zap.Logger
}

// NewAllocator creates a new identifier allocator.
func NewAllocator(scanner Scanner, counters CounterRepository, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{scanner: scanner, counters: counters, logger: logger}
}

// Peek returns the identifier the next Reserve call would hand out, without
// changing any state.
func (a *Allocator) Peek(ctx context.Context, prefix Prefix) (string, error) {
	if !prefix.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}

	floor, err := a.scanMax(ctx, prefix)
	if err != nil {
		return "", err
	}

	current, err := a.counters.Current(ctx, string(prefix))
	if err != nil {
		return "", fmt.Errorf("reading counter: %w", err)
	}

	return Format(prefix, max(floor, current)+1), nil
}

// Reserve atomically claims the next identifier for prefix.
func (a *Allocator) Reserve(ctx context.Context, prefix Prefix) (string, error) {
	if !prefix.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}

	floor, err := a.scanMax(ctx, prefix)
	if err != nil {
		return "", err
	}

	next, err := a.counters.Advance(ctx, string(prefix), floor)
	if err != nil {
		return "", fmt.Errorf("advancing counter: %w", err)
	}

	id := Format(prefix, next)
	a.logger.Debug("reserved identifier", zap.String("id", id), zap.Int64("floor", floor))
	return id, nil
}

func (a *Allocator) scanMax(ctx context.Context, prefix Prefix) (int64, error) {
	tokens, err := a.scanner.ScanIDs(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("scanning identifiers: %w", err)
	}

	var highest int64
	for _, token := range tokens {
		n, ok := Parse(prefix, token)
		if !ok {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}
