// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package pagination models the backend's page-number pagination envelope.

Every paginated list endpoint wraps its results as:

	{"count": 42, "next": "...?page=3", "previous": "...?page=1", "results": [...]}

Next and previous are absolute URLs or null, so page navigation is derived
by parsing the page query parameter out of them.
*/
package pagination

import (
	"net/url"
	"strconv"
)

// Page is one page of a paginated listing.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Next != nil && *p.Next != "" }

// HasPrevious reports whether a preceding page exists.
func (p Page[T]) HasPrevious() bool { return p.Previous != nil && *p.Previous != "" }

// NextPage returns the page number of the following page.
//
// # Returns
//   - The parsed page number and true, or zero and false when there is no
//     next page or its URL carries no usable page parameter.
func (p Page[T]) NextPage() (int, bool) {
	if !p.HasNext() {
		return 0, false
	}
	return pageNumber(*p.Next)
}

// PreviousPage returns the page number of the preceding page.
//
// An URL without an explicit page parameter means page one: the backend
// omits the parameter when linking back to the first page.
func (p Page[T]) PreviousPage() (int, bool) {
	if !p.HasPrevious() {
		return 0, false
	}
	if number, ok := pageNumber(*p.Previous); ok {
		return number, true
	}
	return 1, true
}

// pageNumber extracts the page query parameter from a pagination URL.
func pageNumber(raw string) (int, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return 0, false
	}

	value := parsed.Query().Get("page")
	if value == "" {
		return 0, false
	}

	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}
