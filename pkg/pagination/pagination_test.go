// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okunevich/petsearch/pkg/pagination"
	"github.com/okunevich/petsearch/pkg/pointer"
)

func TestPage_Navigation(t *testing.T) {
	tests := []struct {
		name         string
		next         *string
		previous     *string
		wantNext     int
		wantNextOK   bool
		wantPrev     int
		wantPrevOK   bool
	}{
		{
			name:       "middle page",
			next:       pointer.To("http://localhost:8000/api/advertisements/?page=3"),
			previous:   pointer.To("http://localhost:8000/api/advertisements/?page=1"),
			wantNext:   3,
			wantNextOK: true,
			wantPrev:   1,
			wantPrevOK: true,
		},
		{
			name:       "previous link to first page omits the parameter",
			next:       pointer.To("http://localhost:8000/api/advertisements/?page=3"),
			previous:   pointer.To("http://localhost:8000/api/advertisements/"),
			wantNext:   3,
			wantNextOK: true,
			wantPrev:   1,
			wantPrevOK: true,
		},
		{
			name: "single page",
		},
		{
			name:       "filters survive in pagination urls",
			next:       pointer.To("http://localhost:8000/api/advertisements/?species=2&page=2"),
			wantNext:   2,
			wantNextOK: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			page := pagination.Page[int]{Next: test.next, Previous: test.previous}

			next, ok := page.NextPage()
			assert.Equal(t, test.wantNextOK, ok)
			assert.Equal(t, test.wantNext, next)

			previous, ok := page.PreviousPage()
			assert.Equal(t, test.wantPrevOK, ok)
			assert.Equal(t, test.wantPrev, previous)
		})
	}
}

func TestPage_HasNext(t *testing.T) {
	assert.False(t, pagination.Page[string]{}.HasNext())
	assert.False(t, pagination.Page[string]{Next: pointer.To("")}.HasNext())
	assert.True(t, pagination.Page[string]{Next: pointer.To("http://x/?page=2")}.HasNext())
}
