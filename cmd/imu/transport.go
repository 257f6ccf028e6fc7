package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mklimuk/imu"
	"github.com/mklimuk/imu/adapter"
	"github.com/mklimuk/imu/i2c"
	"github.com/mklimuk/imu/spi"
)

var transportFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Usage:   "bus transport: mcp2221, i2c or spi",
		Value:   "mcp2221",
	},
	&cli.StringFlag{
		Name:  "bus",
		Usage: "i2c bus name or number (periph.io), e.g. /dev/i2c-1 or 1",
		Value: "1",
	},
	&cli.UintFlag{
		Name:  "addr",
		Usage: "7-bit device address",
		Value: 0x6B,
	},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
}

// openTransport builds the bus transport selected by the command flags.
func openTransport(c *cli.Context) (imu.I2CBus, error) {
	switch c.String("adapter") {
	case "mcp2221":
		return adapter.NewMCP2221(), nil
	case "i2c":
		bus, err := i2c.NewGenericBus(c.String("bus"))
		if err != nil {
			return nil, fmt.Errorf("could not open i2c bus %s: %w", c.String("bus"), err)
		}
		return bus, nil
	case "spi":
		bus := spi.NewBus(nanopi.NewNeoAdaptor(), c.String("bus"))
		if err := bus.Start(); err != nil {
			return nil, fmt.Errorf("could not start spi bus %s: %w", c.String("bus"), err)
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}
