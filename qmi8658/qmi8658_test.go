package qmi8658

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/imu"
)

// fakeBus emulates the chip's register file: a pointer-byte write selects
// the register, reads auto-increment from there, multi-byte writes land on
// consecutive registers. Every register write is logged.
type fakeBus struct {
	regs     map[byte]byte
	pointer  byte
	writes   []regWrite
	readErr  error
	writeErr error
}

type regWrite struct {
	reg   byte
	value byte
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs: map[byte]byte{regWhoAmI: deviceID, regRevisionID: 0x7C},
	}
}

func (b *fakeBus) ReadFromAddr(_ context.Context, _ byte, buffer []byte) error {
	if b.readErr != nil {
		return b.readErr
	}
	for i := range buffer {
		buffer[i] = b.regs[b.pointer+byte(i)]
	}
	return nil
}

func (b *fakeBus) WriteToAddr(_ context.Context, _ byte, buffer []byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	if len(buffer) == 0 {
		return nil
	}
	b.pointer = buffer[0]
	for i, value := range buffer[1:] {
		reg := buffer[0] + byte(i)
		b.regs[reg] = value
		b.writes = append(b.writes, regWrite{reg: reg, value: value})
	}
	return nil
}

func (b *fakeBus) Release(context.Context) error {
	return nil
}

// setSample stores a little-endian int16 at two consecutive registers.
func (b *fakeBus) setSample(reg byte, value int16) {
	b.regs[reg] = byte(uint16(value) & 0xFF)
	b.regs[reg+1] = byte(uint16(value) >> 8)
}

func newTestDevice(t *testing.T) (*Device, *fakeBus) {
	t.Helper()
	bus := newFakeBus()
	d, err := New(context.Background(), bus, WithClock(imu.NopClock{}))
	require.NoError(t, err)
	return d, bus
}

func TestNew_AppliesDefaultConfig(t *testing.T) {
	_, bus := newTestDevice(t)

	assert.Equal(t, ctrl1Config, bus.regs[regCtrl1])
	assert.Equal(t, byte(AccelRange8G)<<rangeShift|byte(AccelRate125Hz), bus.regs[regCtrl2])
	assert.Equal(t, byte(GyroRange512DPS)<<rangeShift|byte(GyroRate125Hz), bus.regs[regCtrl3])
	assert.Equal(t, byte(0), bus.regs[regCtrl4])
	assert.Equal(t, byte(0), bus.regs[regCtrl5])
	assert.Equal(t, byte(0), bus.regs[regCtrl6])
	assert.Equal(t, ctrl7AccelEnable|ctrl7GyroEnable, bus.regs[regCtrl7])

	// interface mode first, ranges and rates before the enables
	require.NotEmpty(t, bus.writes)
	assert.Equal(t, regCtrl1, bus.writes[0].reg)
	last := bus.writes[len(bus.writes)-1]
	assert.Equal(t, regCtrl7, last.reg)
	var enableIdx, configIdx int
	for i, w := range bus.writes {
		switch w.reg {
		case regCtrl2, regCtrl3:
			configIdx = i
		case regCtrl7:
			if enableIdx == 0 {
				enableIdx = i
			}
		}
	}
	assert.Less(t, configIdx, enableIdx, "range/rate writes must precede subsystem enables")
}

func TestNew_DeviceNotFound(t *testing.T) {
	bus := newFakeBus()
	bus.regs[regWhoAmI] = 0x7C

	d, err := New(context.Background(), bus, WithClock(imu.NopClock{}))
	assert.Nil(t, d)
	require.ErrorIs(t, err, imu.ErrDeviceNotFound)
	assert.Empty(t, bus.writes, "no configuration writes after identity mismatch")
}

func TestNew_TransportError(t *testing.T) {
	bus := newFakeBus()
	busErr := fmt.Errorf("bus gone")
	bus.readErr = busErr

	d, err := New(context.Background(), bus, WithClock(imu.NopClock{}))
	assert.Nil(t, d)
	require.ErrorIs(t, err, busErr)
	assert.NotErrorIs(t, err, imu.ErrDeviceNotFound)
}

func TestSetAccelRange(t *testing.T) {
	tests := []struct {
		given AccelRange
		scale float64
	}{
		{AccelRange2G, 16384},
		{AccelRange4G, 8192},
		{AccelRange8G, 4096},
		{AccelRange16G, 2048},
	}
	for _, test := range tests {
		t.Run(test.given.String(), func(t *testing.T) {
			d, _ := newTestDevice(t)
			ctx := context.Background()
			require.NoError(t, d.SetAccelRange(ctx, test.given))
			got, err := d.GetAccelRange(ctx)
			require.NoError(t, err)
			assert.Equal(t, test.given, got)
			assert.Equal(t, test.scale, d.accelRange.Scale())
		})
	}
}

func TestSetAccelRange_Invalid(t *testing.T) {
	d, bus := newTestDevice(t)
	writes := len(bus.writes)
	err := d.SetAccelRange(context.Background(), AccelRange(4))
	require.ErrorIs(t, err, imu.ErrInvalidArgument)
	assert.Len(t, bus.writes, writes, "invalid range must not touch the bus")
	assert.Equal(t, AccelRange8G, d.accelRange)
}

func TestSetAccelRange_WriteFailureKeepsScale(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.writeErr = fmt.Errorf("nack")
	err := d.SetAccelRange(context.Background(), AccelRange2G)
	require.Error(t, err)
	assert.Equal(t, AccelRange8G, d.accelRange, "scale must follow the last successful write")
}

func TestSetGyroRange(t *testing.T) {
	tests := []struct {
		given GyroRange
		scale float64
	}{
		{GyroRange16DPS, 2048},
		{GyroRange32DPS, 1024},
		{GyroRange64DPS, 512},
		{GyroRange128DPS, 256},
		{GyroRange256DPS, 128},
		{GyroRange512DPS, 64},
		{GyroRange1024DPS, 32},
		{GyroRange2048DPS, 16},
	}
	for _, test := range tests {
		t.Run(test.given.String(), func(t *testing.T) {
			d, _ := newTestDevice(t)
			ctx := context.Background()
			require.NoError(t, d.SetGyroRange(ctx, test.given))
			got, err := d.GetGyroRange(ctx)
			require.NoError(t, err)
			assert.Equal(t, test.given, got)
			assert.Equal(t, test.scale, d.gyroRange.Scale())
		})
	}
	d, _ := newTestDevice(t)
	err := d.SetGyroRange(context.Background(), GyroRange(8))
	assert.ErrorIs(t, err, imu.ErrInvalidArgument)
}

func TestSetAccelRate_Reserved(t *testing.T) {
	d, _ := newTestDevice(t)
	for _, rate := range []AccelRate{9, 10, 11, 16, 200} {
		err := d.SetAccelRate(context.Background(), rate)
		assert.ErrorIs(t, err, imu.ErrInvalidArgument, "rate %d", rate)
	}
}

func TestSetAccelRate_LowPowerNeedsGyroOff(t *testing.T) {
	lowPower := []AccelRate{AccelRateLP128Hz, AccelRateLP21Hz, AccelRateLP11Hz, AccelRateLP3Hz}

	d, _ := newTestDevice(t)
	ctx := context.Background()
	for _, rate := range lowPower {
		err := d.SetAccelRate(ctx, rate)
		assert.ErrorIs(t, err, imu.ErrInvalidState, "rate %d with gyro enabled", rate)
	}

	require.NoError(t, d.SetGyroEnabled(ctx, false))
	for _, rate := range lowPower {
		require.NoError(t, d.SetAccelRate(ctx, rate), "rate %d with gyro disabled", rate)
		got, err := d.GetAccelRate(ctx)
		require.NoError(t, err)
		assert.Equal(t, rate, got)
	}
}

func TestSetAccelRate_PreservesRangeBits(t *testing.T) {
	d, bus := newTestDevice(t)
	ctx := context.Background()
	require.NoError(t, d.SetAccelRange(ctx, AccelRange16G))
	require.NoError(t, d.SetAccelRate(ctx, AccelRate31Hz))
	assert.Equal(t, byte(AccelRange16G)<<rangeShift|byte(AccelRate31Hz), bus.regs[regCtrl2])

	require.NoError(t, d.SetAccelRange(ctx, AccelRange2G))
	got, err := d.GetAccelRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, AccelRate31Hz, got)
}

func TestEnableFlags(t *testing.T) {
	d, bus := newTestDevice(t)
	ctx := context.Background()

	require.NoError(t, d.SetGyroEnabled(ctx, false))
	enabled, err := d.GyroEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
	// accel bit untouched
	enabled, err = d.AccelEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, ctrl7AccelEnable, bus.regs[regCtrl7])

	require.NoError(t, d.SetGyroEnabled(ctx, true))
	enabled, err = d.GyroEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestGetAcceleration(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.setSample(regAccelOut, 4096)
	bus.setSample(regAccelOut+2, 0)
	bus.setSample(regAccelOut+4, -4096)

	x, y, z, err := d.GetAcceleration(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 9.80665, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
	assert.InDelta(t, -9.80665, z, 1e-9)
}

func TestGetAcceleration_ScaleFollowsRange(t *testing.T) {
	d, bus := newTestDevice(t)
	ctx := context.Background()
	bus.setSample(regAccelOut, 16384)

	require.NoError(t, d.SetAccelRange(ctx, AccelRange2G))
	x, _, _, err := d.GetAcceleration(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 9.80665, x, 1e-9)

	require.NoError(t, d.SetAccelRange(ctx, AccelRange16G))
	x, _, _, err = d.GetAcceleration(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 8*9.80665, x, 1e-9)
}

func TestGetGyro(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.setSample(regGyroOut, 64)
	bus.setSample(regGyroOut+2, 0)
	bus.setSample(regGyroOut+4, -64)

	x, y, z, err := d.GetGyro(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/180, x, 1e-12)
	assert.InDelta(t, 0.0, y, 1e-12)
	assert.InDelta(t, -math.Pi/180, z, 1e-12)
}

func TestGetRawAccelGyro(t *testing.T) {
	d, bus := newTestDevice(t)
	samples := []int16{100, -100, 32767, -32768, 1, 0}
	for i, s := range samples {
		bus.setSample(regAccelOut+byte(2*i), s)
	}

	raw, err := d.GetRawAccelGyro(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [6]int16{100, -100, 32767, -32768, 1, 0}, raw)

	bytes, err := d.GetRawAccelGyroBytes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte(100), bytes[0])
	assert.Equal(t, byte(0xFF), bytes[4], "0x7FFF low byte")
	assert.Equal(t, byte(0x7F), bytes[5], "0x7FFF high byte")
	assert.Equal(t, byte(0x80), bytes[7], "0x8000 high byte")
}

func TestGetTemperature(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.regs[regTemp] = 128
	bus.regs[regTemp+1] = 25

	temp, err := d.GetTemperature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.5, temp)
}

func TestGetTimestamp(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.regs[regTimestamp] = 0x01
	bus.regs[regTimestamp+1] = 0x02
	bus.regs[regTimestamp+2] = 0x03

	ts, err := d.GetTimestamp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(0x030201), ts)
}

func TestGetRevisionID(t *testing.T) {
	d, _ := newTestDevice(t)
	rev, err := d.GetRevisionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte(0x7C), rev)
}

func TestTransportErrorsPropagate(t *testing.T) {
	d, bus := newTestDevice(t)
	busErr := errors.New("adapter unplugged")
	bus.readErr = busErr

	_, _, _, err := d.GetAcceleration(context.Background())
	assert.ErrorIs(t, err, busErr)
	_, err = d.GetTemperature(context.Background())
	assert.ErrorIs(t, err, busErr)
	err = d.SetGyroRate(context.Background(), GyroRate500Hz)
	assert.ErrorIs(t, err, busErr, "read-modify-write surfaces the read failure")
}
