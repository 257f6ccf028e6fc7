package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/imu/cmd/imu/console"
	"github.com/mklimuk/imu/qmi8658"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read acceleration, angular rate, temperature and timestamp",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "keep reading at a fixed interval",
		},
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Value:   time.Second,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of reads in watch mode, 0 for unlimited",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the raw 12-byte accel+gyro block instead of converted values",
		},
	}, transportFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		transport, err := openTransport(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		d, err := qmi8658.New(ctx, transport, qmi8658.WithAddress(byte(c.Uint("addr"))))
		if err != nil {
			return console.Exit(1, "device initialization error: %s", console.Red(err))
		}
		reads := 0
		for {
			if err := readOnce(ctx, d, c.Bool("raw")); err != nil {
				return console.Exit(1, "read error: %s", console.Red(err))
			}
			reads++
			if !c.Bool("watch") || (c.Int("count") > 0 && reads >= c.Int("count")) {
				return nil
			}
			time.Sleep(c.Duration("interval"))
		}
	},
}

func readOnce(ctx context.Context, d *qmi8658.Device, raw bool) error {
	if raw {
		block, err := d.GetRawAccelGyroBytes(ctx)
		if err != nil {
			return err
		}
		console.Print(hex.Dump(block[:]))
		return nil
	}
	ax, ay, az, err := d.GetAcceleration(ctx)
	if err != nil {
		return err
	}
	gx, gy, gz, err := d.GetGyro(ctx)
	if err != nil {
		return err
	}
	temp, err := d.GetTemperature(ctx)
	if err != nil {
		return err
	}
	ts, err := d.GetTimestamp(ctx)
	if err != nil {
		return err
	}
	console.PInfof(console.PictoRuler, "accel m/s²: %s", console.White(formatVector(ax, ay, az)))
	console.PInfof(console.PictoPin, "gyro rad/s: %s", console.White(formatVector(gx, gy, gz)))
	console.PInfof(console.PictoThermometer, " temp °C: %s", console.White(temp))
	console.PInfof(console.PictoClock, " timestamp: %s", console.White(ts))
	return nil
}

func formatVector(x, y, z float64) string {
	return fmt.Sprintf("% .5f  % .5f  % .5f", x, y, z)
}
