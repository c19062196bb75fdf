package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration_Units(t *testing.T) {
	day := 24 * time.Hour

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1d", day},
		{"30d", 30 * day},
		{"2w", 14 * day},
		{"1m", 30 * day},
		{"3m", 90 * day},
		{"1y", 365 * day},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "2", "w", "2 w", "2h", "two weeks", "1mo", "-1d", "1d2w"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestValidDurationString(t *testing.T) {
	assert.True(t, ValidDurationString("14d"))
	assert.True(t, ValidDurationString("1y"))
	assert.False(t, ValidDurationString("14"))
	assert.False(t, ValidDurationString("1h"))
	assert.False(t, ValidDurationString(""))
}
