// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Package pointer provides small generic helpers for optional values.
//
// The backend marks many fields as nullable, so the API client types carry
// pointers; these helpers remove the dereference boilerplate around them.
package pointer

// To returns a pointer to the provided value. Useful for filling optional
// request fields from literals (e.g. pointer.To("Moscow")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value when nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer, returning fallback when nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
