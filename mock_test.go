package imu

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockInertialSensor_StaticValues(t *testing.T) {
	sensor := NewMockInertialSensor(
		func(ctx context.Context) (float64, float64, float64, error) { return 0, 0, 9.80665, nil },
		func(ctx context.Context) (float64, float64, float64, error) { return 0.1, 0, 0, nil },
	)

	ctx := context.Background()

	_, _, az, err := sensor.GetAcceleration(ctx)
	if err != nil {
		t.Fatalf("GetAcceleration: unexpected error: %v", err)
	}
	if az != 9.80665 {
		t.Errorf("expected z acceleration 9.80665, got %f", az)
	}

	gx, _, _, err := sensor.GetGyro(ctx)
	if err != nil {
		t.Fatalf("GetGyro: unexpected error: %v", err)
	}
	if gx != 0.1 {
		t.Errorf("expected x rate 0.1, got %f", gx)
	}
}

func TestMockInertialSensor_ErrorPropagation(t *testing.T) {
	want := errors.New("sensor offline")
	sensor := NewMockInertialSensor(
		func(ctx context.Context) (float64, float64, float64, error) { return 0, 0, 0, want },
		func(ctx context.Context) (float64, float64, float64, error) { return 0, 0, 0, want },
	)

	_, _, _, err := sensor.GetAcceleration(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("expected behavior error, got %v", err)
	}
}

func TestMockTemperatureSensor_DynamicBehavior(t *testing.T) {
	current := 20.0
	sensor := NewMockTemperatureSensor(func(ctx context.Context) (float64, error) { return current, nil })

	ctx := context.Background()
	temp, err := sensor.GetTemperature(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 20.0 {
		t.Errorf("expected 20.0, got %f", temp)
	}

	current = 25.5
	temp, _ = sensor.GetTemperature(ctx)
	if temp != 25.5 {
		t.Errorf("expected 25.5, got %f", temp)
	}
}

func TestWallClock_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WallClock{}.Delay(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNopClock(t *testing.T) {
	if err := (NopClock{}).Delay(context.Background(), time.Hour); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
