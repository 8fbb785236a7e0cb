package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, time.January, 10, 8, 15, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"today", "2024-01-10", false},
		{"", "2024-01-10", false},
		{"Yesterday", "2024-01-09", false},
		{"2024-01-03", "2024-01-03", false},
		{"03/01/2024", "2024-01-03", false},
		{"3 days ago", "2024-01-07", false},
		{"2d", "2024-01-08", false},
		{"31/02/2024", "", true},
		{"next tuesday", "", true},
		{"400 days ago", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, refNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("7:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	h, m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)

	for _, bad := range []string{"24:00", "12:60", "1200", "12:5", "noon"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-01-05 23:30", refNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 23, 30, 0, 0, time.UTC), got)

	got, err = ParseDateTime("06:45", refNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 10, 6, 45, 0, 0, time.UTC), got)

	_, err = ParseDateTime("2024-01-05 at 23:30", refNow)
	assert.Error(t, err)
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "Today (Wed 10 Jan)", FormatDay("2024-01-10", "2024-01-10"))
	assert.Equal(t, "Yesterday (Tue 09 Jan)", FormatDay("2024-01-09", "2024-01-10"))
	assert.Equal(t, "Mon 01 Jan", FormatDay("2024-01-01", "2024-01-10"))
	assert.Equal(t, "garbage", FormatDay("garbage", "2024-01-10"))
}
