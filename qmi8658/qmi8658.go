package qmi8658

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/mklimuk/imu"
)

// DefaultAddress is the 7-bit bus address of the QMI8658C with the SA0 pin
// pulled high.
const DefaultAddress byte = 0x6B

const standardGravity = 9.80665

const (
	// settle time after a configuration register write
	settleDelay = 10 * time.Millisecond
	// accel/gyro subsystem power-up is slower than a register write
	enableDelay = 100 * time.Millisecond
)

var _ imu.InertialSensor = &Device{}
var _ imu.TemperatureSensor = &Device{}
var _ imu.TimestampSource = &Device{}

// Device represents a QST QMI8658C 6-DoF accelerometer and gyroscope.
// Typical usage:
//
//	d, err := qmi8658.New(ctx, bus)
//	ax, ay, az, err := d.GetAcceleration(ctx)
//	gx, gy, gz, err := d.GetGyro(ctx)
//
// A Device exclusively owns its transport; concurrent calls from multiple
// goroutines must be serialized by the caller.
type Device struct {
	transport imu.I2CBus
	clock     imu.Clock
	addr      byte

	// last successfully written ranges; conversion scale factors derive
	// from these, so they only advance after the register write succeeds
	accelRange AccelRange
	gyroRange  GyroRange
}

type Config struct {
	Address byte
	Clock   imu.Clock
}

type Option func(*Config)

// WithAddress overrides the default 7-bit bus address 0x6B.
func WithAddress(address byte) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithClock substitutes the clock used for settle delays.
func WithClock(clock imu.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// New probes the chip identity and applies the default operating
// configuration: accelerometer ±8g at 125 Hz, gyroscope ±512 dps at
// 125 Hz, magnetometer path, low-pass filtering and motion-on-demand
// disabled, both subsystems enabled. Ranges and rates are written before
// the corresponding subsystem is enabled.
//
// Returns imu.ErrDeviceNotFound when the identity register does not read
// back the expected chip ID; no configuration is written in that case. Any
// bus failure aborts construction and no Device is returned.
func New(ctx context.Context, transport imu.I2CBus, opts ...Option) (*Device, error) {
	config := Config{
		Address: DefaultAddress,
		Clock:   imu.WallClock{},
	}
	for _, opt := range opts {
		opt(&config)
	}
	d := &Device{
		transport: transport,
		clock:     config.Clock,
		addr:      config.Address,
	}
	var buf [1]byte
	if err := d.readReg(ctx, regWhoAmI, buf[:]); err != nil {
		return nil, err
	}
	if buf[0] != deviceID {
		return nil, fmt.Errorf("qmi8658: unexpected device id %#x: %w", buf[0], imu.ErrDeviceNotFound)
	}
	// auto increment must be on before any multi-byte access
	if err := d.writeReg(ctx, regCtrl1, ctrl1Config); err != nil {
		return nil, err
	}
	if err := d.SetAccelRange(ctx, AccelRange8G); err != nil {
		return nil, err
	}
	if err := d.SetAccelRate(ctx, AccelRate125Hz); err != nil {
		return nil, err
	}
	if err := d.SetGyroRange(ctx, GyroRange512DPS); err != nil {
		return nil, err
	}
	if err := d.SetGyroRate(ctx, GyroRate125Hz); err != nil {
		return nil, err
	}
	// no magnetometer, no low-pass filter, no motion on demand
	for _, reg := range []byte{regCtrl4, regCtrl5, regCtrl6} {
		if err := d.writeReg(ctx, reg, 0x00); err != nil {
			return nil, err
		}
	}
	if err := d.clock.Delay(ctx, settleDelay); err != nil {
		return nil, err
	}
	if err := d.SetAccelEnabled(ctx, true); err != nil {
		return nil, err
	}
	// gyro goes last so the low-power cross-check above sees its final state
	if err := d.SetGyroEnabled(ctx, true); err != nil {
		return nil, err
	}
	return d, nil
}

// GetRevisionID reads the chip revision register.
func (d *Device) GetRevisionID(ctx context.Context) (byte, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regRevisionID, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// GetAccelRange reads the accelerometer range field from CTRL2.
func (d *Device) GetAccelRange(ctx context.Context) (AccelRange, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl2, buf[:]); err != nil {
		return 0, err
	}
	return AccelRange((buf[0] & rangeMask) >> rangeShift), nil
}

// SetAccelRange selects the accelerometer full-scale range. The scale
// factor used by GetAcceleration follows the last successfully written
// range; if the register write fails the previous range stays in effect.
func (d *Device) SetAccelRange(ctx context.Context, r AccelRange) error {
	if !r.Valid() {
		return fmt.Errorf("qmi8658: accelerometer range %d: %w", r, imu.ErrInvalidArgument)
	}
	if err := d.updateReg(ctx, regCtrl2, rangeMask, byte(r)<<rangeShift); err != nil {
		return err
	}
	d.accelRange = r
	return d.clock.Delay(ctx, settleDelay)
}

// GetAccelRate reads the accelerometer output data rate field from CTRL2.
func (d *Device) GetAccelRate(ctx context.Context) (AccelRate, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl2, buf[:]); err != nil {
		return 0, err
	}
	return AccelRate(buf[0] & rateMask), nil
}

// SetAccelRate selects the accelerometer output data rate. Low-power rate
// codes are rejected with imu.ErrInvalidState while the gyroscope is
// enabled; the check reads the live enable bit, not a cached value.
func (d *Device) SetAccelRate(ctx context.Context, r AccelRate) error {
	if !r.Valid() {
		return fmt.Errorf("qmi8658: accelerometer rate %d: %w", r, imu.ErrInvalidArgument)
	}
	if r.LowPower() {
		enabled, err := d.GyroEnabled(ctx)
		if err != nil {
			return err
		}
		if enabled {
			return fmt.Errorf("qmi8658: accelerometer low-power rate %d requires gyroscope disabled: %w", r, imu.ErrInvalidState)
		}
	}
	if err := d.updateReg(ctx, regCtrl2, rateMask, byte(r)); err != nil {
		return err
	}
	return d.clock.Delay(ctx, settleDelay)
}

// GetGyroRange reads the gyroscope range field from CTRL3.
func (d *Device) GetGyroRange(ctx context.Context) (GyroRange, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl3, buf[:]); err != nil {
		return 0, err
	}
	return GyroRange((buf[0] & rangeMask) >> rangeShift), nil
}

// SetGyroRange selects the gyroscope full-scale range. The scale factor
// used by GetGyro follows the last successfully written range.
func (d *Device) SetGyroRange(ctx context.Context, r GyroRange) error {
	if !r.Valid() {
		return fmt.Errorf("qmi8658: gyroscope range %d: %w", r, imu.ErrInvalidArgument)
	}
	if err := d.updateReg(ctx, regCtrl3, rangeMask, byte(r)<<rangeShift); err != nil {
		return err
	}
	d.gyroRange = r
	return d.clock.Delay(ctx, settleDelay)
}

// GetGyroRate reads the gyroscope output data rate field from CTRL3.
func (d *Device) GetGyroRate(ctx context.Context) (GyroRate, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl3, buf[:]); err != nil {
		return 0, err
	}
	return GyroRate(buf[0] & rateMask), nil
}

// SetGyroRate selects the gyroscope output data rate.
func (d *Device) SetGyroRate(ctx context.Context, r GyroRate) error {
	if !r.Valid() {
		return fmt.Errorf("qmi8658: gyroscope rate %d: %w", r, imu.ErrInvalidArgument)
	}
	if err := d.updateReg(ctx, regCtrl3, rateMask, byte(r)); err != nil {
		return err
	}
	return d.clock.Delay(ctx, settleDelay)
}

// AccelEnabled reads the accelerometer enable bit from CTRL7.
func (d *Device) AccelEnabled(ctx context.Context) (bool, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl7, buf[:]); err != nil {
		return false, err
	}
	return buf[0]&ctrl7AccelEnable != 0, nil
}

// SetAccelEnabled powers the accelerometer subsystem up or down.
func (d *Device) SetAccelEnabled(ctx context.Context, enabled bool) error {
	var value byte
	if enabled {
		value = ctrl7AccelEnable
	}
	if err := d.updateReg(ctx, regCtrl7, ctrl7AccelEnable, value); err != nil {
		return err
	}
	return d.clock.Delay(ctx, enableDelay)
}

// GyroEnabled reads the gyroscope enable bit from CTRL7.
func (d *Device) GyroEnabled(ctx context.Context) (bool, error) {
	var buf [1]byte
	if err := d.readReg(ctx, regCtrl7, buf[:]); err != nil {
		return false, err
	}
	return buf[0]&ctrl7GyroEnable != 0, nil
}

// SetGyroEnabled powers the gyroscope subsystem up or down.
func (d *Device) SetGyroEnabled(ctx context.Context, enabled bool) error {
	var value byte
	if enabled {
		value = ctrl7GyroEnable
	}
	if err := d.updateReg(ctx, regCtrl7, ctrl7GyroEnable, value); err != nil {
		return err
	}
	return d.clock.Delay(ctx, enableDelay)
}

// GetAcceleration returns X, Y, Z acceleration in m/s². All three axes are
// read in a single auto-increment transaction so they come from the same
// conversion cycle.
func (d *Device) GetAcceleration(ctx context.Context) (float64, float64, float64, error) {
	var buf [6]byte
	if err := d.readReg(ctx, regAccelOut, buf[:]); err != nil {
		return 0, 0, 0, err
	}
	scale := d.accelRange.Scale()
	x := float64(int16(binary.LittleEndian.Uint16(buf[0:2]))) / scale * standardGravity
	y := float64(int16(binary.LittleEndian.Uint16(buf[2:4]))) / scale * standardGravity
	z := float64(int16(binary.LittleEndian.Uint16(buf[4:6]))) / scale * standardGravity
	return x, y, z, nil
}

// GetGyro returns X, Y, Z angular rate in rad/s, read in a single
// transaction. Earlier revisions of this chip's drivers returned °/s under
// the same name; this driver always converts to radians.
func (d *Device) GetGyro(ctx context.Context) (float64, float64, float64, error) {
	var buf [6]byte
	if err := d.readReg(ctx, regGyroOut, buf[:]); err != nil {
		return 0, 0, 0, err
	}
	scale := d.gyroRange.Scale()
	x := radians(float64(int16(binary.LittleEndian.Uint16(buf[0:2]))) / scale)
	y := radians(float64(int16(binary.LittleEndian.Uint16(buf[2:4]))) / scale)
	z := radians(float64(int16(binary.LittleEndian.Uint16(buf[4:6]))) / scale)
	return x, y, z, nil
}

// GetRawAccelGyro reads the combined 12-byte accel+gyro block in one
// transaction and returns the six unscaled little-endian samples, X, Y, Z
// acceleration followed by X, Y, Z angular rate.
func (d *Device) GetRawAccelGyro(ctx context.Context) ([6]int16, error) {
	var raw [6]int16
	bytes, err := d.GetRawAccelGyroBytes(ctx)
	if err != nil {
		return raw, err
	}
	for i := range raw {
		raw[i] = int16(binary.LittleEndian.Uint16(bytes[2*i : 2*i+2]))
	}
	return raw, nil
}

// GetRawAccelGyroBytes reads the combined 12-byte accel+gyro block in one
// transaction and returns the wire bytes untouched.
func (d *Device) GetRawAccelGyroBytes(ctx context.Context) ([12]byte, error) {
	var buf [12]byte
	if err := d.readReg(ctx, regAccelOut, buf[:]); err != nil {
		return buf, err
	}
	return buf, nil
}

// GetTemperature returns the die temperature in °C. The first register
// byte carries the fraction in 1/256 steps, the second the integer part.
func (d *Device) GetTemperature(ctx context.Context) (float64, error) {
	var buf [2]byte
	if err := d.readReg(ctx, regTemp, buf[:]); err != nil {
		return 0, err
	}
	return float64(buf[0])/256 + float64(buf[1]), nil
}

// GetTimestamp returns the 24-bit sample counter, free-running since
// power-on. The chip does not document wrap behavior; treat the value as
// monotonic within a session and handle wrap on the caller side.
func (d *Device) GetTimestamp(ctx context.Context) (uint32, error) {
	var buf [3]byte
	if err := d.readReg(ctx, regTimestamp, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16, nil
}

// readReg sets the register pointer and reads len(buf) bytes back. Multi
// byte reads rely on the auto increment mode enabled through CTRL1.
func (d *Device) readReg(ctx context.Context, reg byte, buf []byte) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg}); err != nil {
		return fmt.Errorf("qmi8658: could not set register pointer %#x: %w", reg, err)
	}
	if err := d.transport.ReadFromAddr(ctx, d.addr, buf); err != nil {
		return fmt.Errorf("qmi8658: could not read register %#x: %w", reg, err)
	}
	return nil
}

func (d *Device) writeReg(ctx context.Context, reg byte, value byte) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg, value}); err != nil {
		return fmt.Errorf("qmi8658: could not write register %#x: %w", reg, err)
	}
	return nil
}

// updateReg replaces the masked field within a shared control register
// with a single read-modify-write, so sibling fields in the same register
// keep their values and only one write transaction hits the bus.
func (d *Device) updateReg(ctx context.Context, reg, mask, value byte) error {
	var buf [1]byte
	if err := d.readReg(ctx, reg, buf[:]); err != nil {
		return err
	}
	return d.writeReg(ctx, reg, (buf[0]&^mask)|(value&mask))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
