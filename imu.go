package imu

import "context"

// InertialSensor provides an interface to 6-DoF inertial measurement
// units. It is a light abstraction over the concrete drivers (such as the
// QMI8658C) so host applications can swap sensors or use mocks.
type InertialSensor interface {
	// GetAcceleration returns X, Y, Z acceleration in m/s².
	GetAcceleration(ctx context.Context) (float64, float64, float64, error)
	// GetGyro returns X, Y, Z angular rate in rad/s.
	GetGyro(ctx context.Context) (float64, float64, float64, error)
}

// TemperatureSensor is implemented by sensors exposing an on-chip die
// temperature reading in degrees Celsius.
type TemperatureSensor interface {
	GetTemperature(ctx context.Context) (float64, error)
}

// TimestampSource is implemented by sensors with a free-running sample
// counter. The counter is monotonic within a power cycle; wrap handling is
// left to the caller.
type TimestampSource interface {
	GetTimestamp(ctx context.Context) (uint32, error)
}
