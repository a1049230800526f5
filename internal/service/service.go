package service

import (
	"context"
	"errors"
	"fmt"
	"fortune_wheel/internal/model"
	"time"
)

type WheelService interface {
	Spin(ctx context.Context) (*model.SpinResult, error)
	State(ctx context.Context) (*model.WheelState, error)
	Status(ctx context.Context) (*model.SpinStatus, error)
	Sectors() []model.Sector
	Close(ctx context.Context) error
}

var (
	ErrNoUser            = errors.New("user id not found in context")
	ErrSpinInProgress    = errors.New("spin already in progress")
	ErrCooldown          = errors.New("spin is on cooldown")
	ErrStatusUnavailable = errors.New("spin status unavailable")
	ErrClosed            = errors.New("wheel service is closed")
)

// CooldownError - бэкенд запретил спин до NextSpinTime
type CooldownError struct {
	NextSpinTime *time.Time
}

func (e *CooldownError) Error() string {
	if e.NextSpinTime == nil {
		return ErrCooldown.Error()
	}
	return fmt.Sprintf("%s until %s", ErrCooldown, e.NextSpinTime.Format(time.RFC3339))
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldown
}
