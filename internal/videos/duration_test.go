package videos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT1H4M13S", 3853},
		{"PT15M33S", 933},
		{"PT59S", 59},
		{"PT60S", 60},
		{"PT1M", 60},
		{"PT2H", 7200},
		{"PT0S", 0},
		{"", 0},
		{"not-a-duration", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseISODuration(tc.in), "input=%q", tc.in)
	}
}

func TestClockFormat(t *testing.T) {
	assert.Equal(t, "", clockFormat(0))
	assert.Equal(t, "0:59", clockFormat(59))
	assert.Equal(t, "15:33", clockFormat(933))
	assert.Equal(t, "1:04:13", clockFormat(3853))
	assert.Equal(t, "2:00:00", clockFormat(7200))
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,000", groupDigits(1000))
	assert.Equal(t, "1,234,567", groupDigits(1234567))
}
