// Package spi exposes the QMI8658C's 4-wire SPI interface as imu.I2CBus,
// backed by a Gobot SPI adaptor. SPI is point-to-point with a chip-select
// line, so the bus address argument of the transport interface is ignored.
//
// Protocol: a register read clocks out the register address with the MSB
// read bit set followed by dummy bytes; a write sends the plain address
// and payload. Multi-byte transfers rely on the chip-side auto increment
// enabled through CTRL1.
package spi

import (
	"context"
	"fmt"
	"sync"

	"gobot.io/x/gobot/v2/drivers/spi"

	"github.com/mklimuk/imu"
)

// read transactions set the register address MSB
const readBit = 0x80

var _ imu.I2CBus = &Bus{}

// Bus wraps a Gobot SPI driver connection to a single chip.
type Bus struct {
	*spi.Driver

	mx sync.Mutex
	// register pointer selected by the last single-byte write, consumed
	// by the next read
	pointer byte
}

// NewBus returns a new SPI transport bound to a Gobot SPI adaptor. bus and
// cs are the SPI bus name and chip-select line, matching the board's
// numbering. Additional driver options (e.g. speed) may be supplied as in
// other Gobot SPI drivers.
func NewBus(adaptor spi.Connector, bus string, opts ...func(spi.Config)) *Bus {
	d := spi.NewDriver(adaptor, bus, opts...)

	// mode 0 (CPOL=0, CPHA=0), conservative 1 MHz default
	d.SetMode(0)
	if d.GetSpeedOrDefault(0) == 0 {
		d.SetSpeed(1_000_000)
	}

	return &Bus{Driver: d}
}

// Start establishes the SPI bus. Required by the Gobot driver interface.
func (b *Bus) Start() error { return b.Driver.Start() }

// Halt releases the bus.
func (b *Bus) Halt() error { return b.Driver.Halt() }

// WriteToAddr implements imu.I2CBus. A single-byte buffer selects the
// register pointer for the next read; longer buffers write buffer[1:] to
// consecutive registers starting at buffer[0].
func (b *Bus) WriteToAddr(ctx context.Context, _ byte, buffer []byte) error {
	if len(buffer) == 0 {
		return nil
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	if len(buffer) == 1 {
		b.pointer = buffer[0]
		return nil
	}
	ops, err := b.connection()
	if err != nil {
		return err
	}
	tx := make([]byte, len(buffer))
	copy(tx, buffer)
	tx[0] &^= readBit
	if err := ops.WriteBytes(tx); err != nil {
		return fmt.Errorf("spi write to register %#x failed: %w", buffer[0], err)
	}
	return nil
}

// ReadFromAddr implements imu.I2CBus, reading len(buffer) bytes starting
// at the register selected by the preceding pointer write.
func (b *Bus) ReadFromAddr(ctx context.Context, _ byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	ops, err := b.connection()
	if err != nil {
		return err
	}
	if err := ops.ReadCommandData([]byte{b.pointer | readBit}, buffer); err != nil {
		return fmt.Errorf("spi read from register %#x failed: %w", b.pointer, err)
	}
	return nil
}

// Release implements imu.I2CBus. SPI holds no bus lock between
// transactions, so there is nothing to release.
func (b *Bus) Release(context.Context) error {
	return nil
}

// connection narrows the Gobot SPI connection to the operations the
// transport needs.
func (b *Bus) connection() (spiOps, error) {
	if b == nil || b.Driver == nil {
		return nil, fmt.Errorf("spi driver not initialized")
	}
	ops, ok := b.Driver.Connection().(spiOps)
	if !ok {
		return nil, fmt.Errorf("spi connection does not support required operations")
	}
	return ops, nil
}

type spiOps interface {
	ReadCommandData(command []byte, data []byte) error
	WriteBytes(data []byte) error
}
