package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiltersDefaults(t *testing.T) {
	f := NewFilters()

	assert.Equal(t, DefaultDateRange, f.DateRange)
	assert.Zero(t, f.ActiveCount())
}

func TestFiltersSetEmitsChange(t *testing.T) {
	f := NewFilters()

	changes := 0
	f.OnChange(func() { changes++ })

	f.Set(FilterSeverity, "critical")
	f.Set(FilterHostname, "prod")
	f.Set(FilterKey("bogus"), "ignored")

	assert.Equal(t, "critical", f.Severity)
	assert.Equal(t, "prod", f.Hostname)
	assert.Equal(t, 2, changes, "unknown keys must not emit")
}

func TestFiltersActiveCount(t *testing.T) {
	f := NewFilters()

	f.Set(FilterEventType, "network")
	f.Set(FilterSearch, "web")
	assert.Equal(t, 2, f.ActiveCount())

	// The default range does not count toward the badge.
	f.Set(FilterDateRange, string(RangeDay))
	assert.Equal(t, 2, f.ActiveCount())

	f.Set(FilterDateRange, string(RangeHour))
	assert.Equal(t, 3, f.ActiveCount())
}

func TestFiltersReset(t *testing.T) {
	f := NewFilters()

	changes := 0
	f.OnChange(func() { changes++ })

	f.Set(FilterSeverity, "high")
	f.Set(FilterDateRange, string(RangeWeek))
	f.Reset()

	assert.Zero(t, f.ActiveCount())
	assert.Equal(t, DefaultDateRange, f.DateRange)
	assert.Equal(t, 3, changes)
}

func TestDateRangeDuration(t *testing.T) {
	tests := []struct {
		in   DateRange
		want time.Duration
	}{
		{RangeHour, time.Hour},
		{RangeSixH, 6 * time.Hour},
		{RangeDay, 24 * time.Hour},
		{RangeWeek, 7 * 24 * time.Hour},
		{RangeMonth, 30 * 24 * time.Hour},
		{DateRange("2 fortnights"), 24 * time.Hour},
		{DateRange(""), 24 * time.Hour},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Duration(), "range %q", tt.in)
	}
}
