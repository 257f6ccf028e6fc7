package qmi8658

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccelRateValid(t *testing.T) {
	tests := []struct {
		given    AccelRate
		valid    bool
		lowPower bool
	}{
		{AccelRate8000Hz, true, false},
		{AccelRate31Hz, true, false},
		{9, false, false},
		{10, false, false},
		{11, false, false},
		{AccelRateLP128Hz, true, true},
		{AccelRateLP3Hz, true, true},
		{16, false, false},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.given), func(t *testing.T) {
			assert.Equal(t, test.valid, test.given.Valid())
			assert.Equal(t, test.lowPower, test.given.LowPower())
		})
	}
}

func TestGyroRateValid(t *testing.T) {
	for rate := GyroRate(0); rate <= 8; rate++ {
		assert.True(t, rate.Valid())
	}
	assert.False(t, GyroRate(9).Valid())
}

func TestRangeStrings(t *testing.T) {
	assert.Equal(t, "±8g", AccelRange8G.String())
	assert.Equal(t, "±512dps", GyroRange512DPS.String())
	assert.Equal(t, "invalid(12)", AccelRange(12).String())
}
