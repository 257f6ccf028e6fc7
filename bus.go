package imu

import (
	"context"
	"errors"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// ErrDeviceNotFound is returned when the chip identity register does not
// match the expected device ID during initialization.
var ErrDeviceNotFound = errors.New("device not found")

// ErrInvalidArgument is returned by configuration setters when the value is
// outside the enumeration the chip accepts. The device is left untouched;
// the caller retries with a corrected value.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState is returned when a setter value is valid on its own but
// conflicts with the current device configuration (e.g. accelerometer
// low-power rates while the gyroscope is enabled).
var ErrInvalidState = errors.New("invalid state")

type BusReader interface {
	Read(ctx context.Context, buffer []byte) error
}

type BusWriter interface {
	Write(ctx context.Context, buffer []byte) error
}

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport a register driver needs: addressed reads and
// writes on the bus. Register access follows the usual pattern of writing
// the register pointer byte and reading back a contiguous block (the chip
// auto-increments the pointer for multi-byte transfers).
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

type I2CDevice interface {
	BusReader
	BusWriter
}
