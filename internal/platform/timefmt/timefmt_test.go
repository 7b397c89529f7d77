// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package timefmt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okunevich/petsearch/internal/platform/timefmt"
)

/*
TestTimeAgo_Buckets checks every relative bucket boundary.
*/
func TestTimeAgo_Buckets(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{"seconds", 45 * time.Second, "45 sec. ago"},
		{"minutes", 5 * time.Minute, "5 min. ago"},
		{"hours", 3 * time.Hour, "3 h. ago"},
		{"days", 6 * 24 * time.Hour, "6 d. ago"},
		{"months", 90 * 24 * time.Hour, "3 mo. ago"},
		{"years", 800 * 24 * time.Hour, "2 y. ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := now.Add(-tt.elapsed)
			assert.Equal(t, tt.expected, timefmt.TimeAgo(value, now))
		})
	}
}

/*
TestTimeAgo_FutureFallsBack verifies that future dates use the long form.
*/
func TestTimeAgo_FutureFallsBack(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)

	assert.Equal(t, "1 September 2026", timefmt.TimeAgo(future, now))
	assert.Empty(t, timefmt.TimeAgo(time.Time{}, now))
}

/*
TestParseBackend covers the timestamp layouts the API emits.
*/
func TestParseBackend(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		timefmt.ParseBackend("2026-03-14T09:26:53Z"))

	assert.Equal(t,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		timefmt.ParseBackend("2024-01-02"))

	assert.True(t, timefmt.ParseBackend("not-a-date").IsZero())
	assert.True(t, timefmt.ParseBackend("").IsZero())
}

/*
TestLongDate verifies the full date form and the empty placeholder.
*/
func TestLongDate(t *testing.T) {
	assert.Equal(t, "7 November 2025", timefmt.LongDate(time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Date not specified", timefmt.LongDate(time.Time{}))
}
