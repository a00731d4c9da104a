package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddCalendarMonths(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "plain three months",
			start:    time.Date(2024, time.January, 15, 10, 30, 0, 0, utc),
			months:   3,
			expected: time.Date(2024, time.April, 15, 10, 30, 0, 0, utc),
		},
		{
			name:     "clamped to leap february",
			start:    time.Date(2024, time.January, 31, 0, 0, 0, 0, utc),
			months:   1,
			expected: time.Date(2024, time.February, 29, 0, 0, 0, 0, utc),
		},
		{
			name:     "clamped to non leap february",
			start:    time.Date(2023, time.January, 31, 0, 0, 0, 0, utc),
			months:   1,
			expected: time.Date(2023, time.February, 28, 0, 0, 0, 0, utc),
		},
		{
			name:     "crosses year boundary",
			start:    time.Date(2023, time.November, 30, 12, 0, 0, 0, utc),
			months:   3,
			expected: time.Date(2024, time.February, 29, 12, 0, 0, 0, utc),
		},
		{
			name:     "twelve months",
			start:    time.Date(2024, time.February, 29, 0, 0, 0, 0, utc),
			months:   12,
			expected: time.Date(2025, time.February, 28, 0, 0, 0, 0, utc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddCalendarMonths(tt.start, tt.months, utc)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestRippleTimeToTime(t *testing.T) {
	assert.Equal(t, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), RippleTimeToTime(0))
	assert.Equal(t, time.Date(2000, time.January, 1, 0, 1, 0, 0, time.UTC), RippleTimeToTime(60))
}

func TestValidation(t *testing.T) {
	assert.True(t, IsValidXrplAddress("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"))
	assert.False(t, IsValidXrplAddress("xHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"))
	assert.False(t, IsValidXrplAddress("r0b9CJAWyB4rj91VRWn96DkukG4bwdtyTh"))

	assert.True(t, IsValidTxHash("E3FE6EA3D48F0C2B639448020EA4F03D4F4F8FFDB243A852A0F59177921B4879"))
	assert.False(t, IsValidTxHash("E3FE6EA3"))

	assert.True(t, IsValidCurrencyCode("AAX"))
	assert.True(t, IsValidCurrencyCode("4141580000000000000000000000000000000000"))
	assert.False(t, IsValidCurrencyCode("XRP"))
	assert.False(t, IsValidCurrencyCode("TOOLONG"))

	_, ok := ParsePositiveAmount("0")
	assert.False(t, ok)
	d, ok := ParsePositiveAmount("12.5")
	assert.True(t, ok)
	assert.Equal(t, "12.5", d.String())
}

func TestSleep_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
