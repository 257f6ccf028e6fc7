package imu

import "context"

// VectorBehaviorFunc defines the function signature for three-axis sensor
// behavior. It returns X, Y, Z readings or an error.
type VectorBehaviorFunc func(ctx context.Context) (float64, float64, float64, error)

// ScalarBehaviorFunc defines the function signature for scalar sensor
// behavior (temperature and similar single-value readings).
type ScalarBehaviorFunc func(ctx context.Context) (float64, error)

// MockInertialSensor is a mock implementation of InertialSensor that uses
// behavior functions to produce results without requiring hardware.
//
// Example usage:
//
//	sensor := NewMockInertialSensor(
//		func(ctx context.Context) (float64, float64, float64, error) { return 0, 0, 9.80665, nil },
//		func(ctx context.Context) (float64, float64, float64, error) { return 0, 0, 0, nil },
//	)
type MockInertialSensor struct {
	accel VectorBehaviorFunc
	gyro  VectorBehaviorFunc
}

// NewMockInertialSensor creates a new mock inertial sensor with the given
// behavior functions. The functions are called whenever GetAcceleration or
// GetGyro is invoked.
func NewMockInertialSensor(accel, gyro VectorBehaviorFunc) *MockInertialSensor {
	return &MockInertialSensor{accel: accel, gyro: gyro}
}

// GetAcceleration returns the acceleration reading by calling the accel behavior.
func (m *MockInertialSensor) GetAcceleration(ctx context.Context) (float64, float64, float64, error) {
	return m.accel(ctx)
}

// GetGyro returns the angular rate reading by calling the gyro behavior.
func (m *MockInertialSensor) GetGyro(ctx context.Context) (float64, float64, float64, error) {
	return m.gyro(ctx)
}

// MockTemperatureSensor is a mock implementation of TemperatureSensor
// driven by a behavior function.
type MockTemperatureSensor struct {
	behavior ScalarBehaviorFunc
}

// NewMockTemperatureSensor creates a new mock temperature sensor with the
// given behavior function.
func NewMockTemperatureSensor(behavior ScalarBehaviorFunc) *MockTemperatureSensor {
	return &MockTemperatureSensor{behavior: behavior}
}

// GetTemperature returns the temperature by calling the behavior function.
func (m *MockTemperatureSensor) GetTemperature(ctx context.Context) (float64, error) {
	return m.behavior(ctx)
}
