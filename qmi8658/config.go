package qmi8658

import "fmt"

// AccelRange selects the accelerometer full-scale measurement range.
type AccelRange byte

const (
	AccelRange2G  AccelRange = 0 // ±2 g
	AccelRange4G  AccelRange = 1 // ±4 g
	AccelRange8G  AccelRange = 2 // ±8 g (power-on default applied by New)
	AccelRange16G AccelRange = 3 // ±16 g
)

// Valid reports whether the value is one of the ranges the chip accepts.
func (r AccelRange) Valid() bool {
	return r <= AccelRange16G
}

// Scale returns the LSB-per-g denominator for the range. Raw samples
// divided by this value yield g; the driver multiplies by standard gravity
// to produce m/s².
func (r AccelRange) Scale() float64 {
	switch r {
	case AccelRange2G:
		return 16384
	case AccelRange4G:
		return 8192
	case AccelRange8G:
		return 4096
	case AccelRange16G:
		return 2048
	}
	return 1
}

func (r AccelRange) String() string {
	switch r {
	case AccelRange2G:
		return "±2g"
	case AccelRange4G:
		return "±4g"
	case AccelRange8G:
		return "±8g"
	case AccelRange16G:
		return "±16g"
	}
	return fmt.Sprintf("invalid(%d)", byte(r))
}

// GyroRange selects the gyroscope full-scale measurement range.
type GyroRange byte

const (
	GyroRange16DPS   GyroRange = 0 // ±16 °/s
	GyroRange32DPS   GyroRange = 1 // ±32 °/s
	GyroRange64DPS   GyroRange = 2 // ±64 °/s
	GyroRange128DPS  GyroRange = 3 // ±128 °/s
	GyroRange256DPS  GyroRange = 4 // ±256 °/s
	GyroRange512DPS  GyroRange = 5 // ±512 °/s (power-on default applied by New)
	GyroRange1024DPS GyroRange = 6 // ±1024 °/s
	GyroRange2048DPS GyroRange = 7 // ±2048 °/s
)

// Valid reports whether the value is one of the ranges the chip accepts.
func (r GyroRange) Valid() bool {
	return r <= GyroRange2048DPS
}

// Scale returns the LSB-per-degree-per-second denominator for the range.
func (r GyroRange) Scale() float64 {
	switch r {
	case GyroRange16DPS:
		return 2048
	case GyroRange32DPS:
		return 1024
	case GyroRange64DPS:
		return 512
	case GyroRange128DPS:
		return 256
	case GyroRange256DPS:
		return 128
	case GyroRange512DPS:
		return 64
	case GyroRange1024DPS:
		return 32
	case GyroRange2048DPS:
		return 16
	}
	return 1
}

func (r GyroRange) String() string {
	switch r {
	case GyroRange16DPS:
		return "±16dps"
	case GyroRange32DPS:
		return "±32dps"
	case GyroRange64DPS:
		return "±64dps"
	case GyroRange128DPS:
		return "±128dps"
	case GyroRange256DPS:
		return "±256dps"
	case GyroRange512DPS:
		return "±512dps"
	case GyroRange1024DPS:
		return "±1024dps"
	case GyroRange2048DPS:
		return "±2048dps"
	}
	return fmt.Sprintf("invalid(%d)", byte(r))
}

// AccelRate selects the accelerometer output data rate. The RateLP values
// are low-power modes; the chip only accepts them while the gyroscope is
// disabled.
type AccelRate byte

const (
	AccelRate8000Hz AccelRate = 0
	AccelRate4000Hz AccelRate = 1
	AccelRate2000Hz AccelRate = 2
	AccelRate1000Hz AccelRate = 3
	AccelRate500Hz  AccelRate = 4
	AccelRate250Hz  AccelRate = 5
	AccelRate125Hz  AccelRate = 6 // power-on default applied by New
	AccelRate62Hz   AccelRate = 7
	AccelRate31Hz   AccelRate = 8

	// codes 9 to 11 are reserved

	AccelRateLP128Hz AccelRate = 12
	AccelRateLP21Hz  AccelRate = 13
	AccelRateLP11Hz  AccelRate = 14
	AccelRateLP3Hz   AccelRate = 15
)

// Valid reports whether the rate code is accepted by the chip (reserved
// codes 9-11 are not).
func (r AccelRate) Valid() bool {
	return r <= AccelRateLP3Hz && !(r >= 9 && r <= 11)
}

// LowPower reports whether the rate code is a low-power mode.
func (r AccelRate) LowPower() bool {
	return r >= AccelRateLP128Hz && r <= AccelRateLP3Hz
}

// GyroRate selects the gyroscope output data rate.
type GyroRate byte

const (
	GyroRate8000Hz GyroRate = 0
	GyroRate4000Hz GyroRate = 1
	GyroRate2000Hz GyroRate = 2
	GyroRate1000Hz GyroRate = 3
	GyroRate500Hz  GyroRate = 4
	GyroRate250Hz  GyroRate = 5
	GyroRate125Hz  GyroRate = 6 // power-on default applied by New
	GyroRate62Hz   GyroRate = 7
	GyroRate31Hz   GyroRate = 8
)

// Valid reports whether the rate code is accepted by the chip.
func (r GyroRate) Valid() bool {
	return r <= GyroRate31Hz
}
