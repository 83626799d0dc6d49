// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package pointer provides utilities for working with pointers in Go.

Partial-update request payloads use pointer fields to distinguish "absent"
from "zero value"; these generic helpers keep that handling boilerplate-free.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
