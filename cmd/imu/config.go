package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/imu/cmd/imu/console"
	"github.com/mklimuk/imu/qmi8658"
)

var configCmd = cli.Command{
	Name: "config",
	Subcommands: cli.Commands{
		&configShowCmd,
		&configSetCmd,
	},
}

// deviceConfig mirrors the chip's configuration vector for YAML rendering.
type deviceConfig struct {
	AccelRange   string `yaml:"accel_range"`
	AccelRate    byte   `yaml:"accel_rate"`
	AccelEnabled bool   `yaml:"accel_enabled"`
	GyroRange    string `yaml:"gyro_range"`
	GyroRate     byte   `yaml:"gyro_rate"`
	GyroEnabled  bool   `yaml:"gyro_enabled"`
	RevisionID   byte   `yaml:"revision_id"`
}

var configShowCmd = cli.Command{
	Name:  "show",
	Usage: "print the current device configuration",
	Flags: transportFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		d, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		var cfg deviceConfig
		accelRange, err := d.GetAccelRange(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		cfg.AccelRange = accelRange.String()
		accelRate, err := d.GetAccelRate(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		cfg.AccelRate = byte(accelRate)
		cfg.AccelEnabled, err = d.AccelEnabled(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		gyroRange, err := d.GetGyroRange(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		cfg.GyroRange = gyroRange.String()
		gyroRate, err := d.GetGyroRate(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		cfg.GyroRate = byte(gyroRate)
		cfg.GyroEnabled, err = d.GyroEnabled(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		cfg.RevisionID, err = d.GetRevisionID(ctx)
		if err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(cfg); err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var configSetCmd = cli.Command{
	Name:  "set",
	Usage: "update device configuration fields",
	Flags: append([]cli.Flag{
		&cli.IntFlag{Name: "accel-range", Value: -1, Usage: "0=±2g 1=±4g 2=±8g 3=±16g"},
		&cli.IntFlag{Name: "accel-rate", Value: -1, Usage: "rate code 0-8, 12-15 for low power"},
		&cli.IntFlag{Name: "gyro-range", Value: -1, Usage: "0=±16dps … 7=±2048dps"},
		&cli.IntFlag{Name: "gyro-rate", Value: -1, Usage: "rate code 0-8"},
		&cli.IntFlag{Name: "accel-enabled", Value: -1, Usage: "0 or 1"},
		&cli.IntFlag{Name: "gyro-enabled", Value: -1, Usage: "0 or 1"},
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	}, transportFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("reconfigure the device?")
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if answer != console.Yes {
				console.Info("aborted")
				return nil
			}
		}
		d, err := openDevice(ctx, c)
		if err != nil {
			return err
		}
		// gyro enable first so a following low-power accel rate sees its
		// final state
		if v := c.Int("gyro-enabled"); v >= 0 {
			if err := d.SetGyroEnabled(ctx, v != 0); err != nil {
				return console.Exit(1, "could not set gyro enable: %s", console.Red(err))
			}
		}
		if v := c.Int("accel-enabled"); v >= 0 {
			if err := d.SetAccelEnabled(ctx, v != 0); err != nil {
				return console.Exit(1, "could not set accel enable: %s", console.Red(err))
			}
		}
		if v := c.Int("accel-range"); v >= 0 {
			if err := d.SetAccelRange(ctx, qmi8658.AccelRange(v)); err != nil {
				return console.Exit(1, "could not set accel range: %s", console.Red(err))
			}
		}
		if v := c.Int("accel-rate"); v >= 0 {
			if err := d.SetAccelRate(ctx, qmi8658.AccelRate(v)); err != nil {
				return console.Exit(1, "could not set accel rate: %s", console.Red(err))
			}
		}
		if v := c.Int("gyro-range"); v >= 0 {
			if err := d.SetGyroRange(ctx, qmi8658.GyroRange(v)); err != nil {
				return console.Exit(1, "could not set gyro range: %s", console.Red(err))
			}
		}
		if v := c.Int("gyro-rate"); v >= 0 {
			if err := d.SetGyroRate(ctx, qmi8658.GyroRate(v)); err != nil {
				return console.Exit(1, "could not set gyro rate: %s", console.Red(err))
			}
		}
		console.Info("configuration applied")
		return nil
	},
}

func openDevice(ctx context.Context, c *cli.Context) (*qmi8658.Device, error) {
	transport, err := openTransport(c)
	if err != nil {
		return nil, console.Exit(1, "adapter initialization error: %s", console.Red(err))
	}
	d, err := qmi8658.New(ctx, transport, qmi8658.WithAddress(byte(c.Uint("addr"))))
	if err != nil {
		return nil, console.Exit(1, "device initialization error: %s", console.Red(err))
	}
	return d, nil
}
