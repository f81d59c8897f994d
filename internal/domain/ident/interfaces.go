package ident

import "context"

// Scanner lists the identifier tokens currently present in the record set.
// Tokens are returned raw; the allocator decides which ones are well formed.
type Scanner interface {
	ScanIDs(ctx context.Context, prefix Prefix) ([]string, error)
}

// CounterRepository persists one monotonic counter per prefix.
type CounterRepository interface {
	Current(ctx context.Context, prefix string) (int64, error)
	Advance(ctx context.Context, prefix string, floor int64) (int64, error)
}
