// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Package timefmt formats backend timestamps for terminal display.
//
// # Overview
//
// Advertisements and articles carry RFC 3339 publication dates. Lists show a
// compact relative form ("5 min. ago") while detail views show the full date.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// Average month/year lengths keep bucket boundaries aligned with calendars.
const (
	daysPerMonth = 30.44
	daysPerYear  = 365.25
)

// TimeAgo returns a compact relative description of value against now.
//
// # Buckets
//
// seconds < 60, minutes < 60, hours < 24, days < 30, months < 12, then years.
// A zero or future value falls back to the long date form.
func TimeAgo(value, now time.Time) string {
	if value.IsZero() {
		return ""
	}

	seconds := int(math.Round(now.Sub(value).Seconds()))
	if seconds < 0 {
		return LongDate(value)
	}

	minutes := int(math.Round(float64(seconds) / 60))
	hours := int(math.Round(float64(minutes) / 60))
	days := int(math.Round(float64(hours) / 24))
	months := int(math.Round(float64(days) / daysPerMonth))
	years := int(math.Round(float64(days) / daysPerYear))

	switch {
	case seconds < 60:
		return fmt.Sprintf("%d sec. ago", seconds)
	case minutes < 60:
		return fmt.Sprintf("%d min. ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d h. ago", hours)
	case days < 30:
		return fmt.Sprintf("%d d. ago", days)
	case months < 12:
		return fmt.Sprintf("%d mo. ago", months)
	default:
		return fmt.Sprintf("%d y. ago", years)
	}
}

// LongDate returns the full date form ("2 January 2026").
func LongDate(value time.Time) string {
	if value.IsZero() {
		return "Date not specified"
	}
	return value.Format("2 January 2006")
}

// ParseBackend parses a backend timestamp string.
//
// The API emits RFC 3339 with and without sub-second precision, and plain
// dates for birth dates. An unparseable value yields the zero time.
func ParseBackend(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}

	return time.Time{}
}
