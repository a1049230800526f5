package repository

import (
	"context"
)

// WheelRepository хранит базовый угол колеса игрока между спинами.
// История призов хранится на бэкенде звезд, здесь ее нет.
type WheelRepository interface {
	GetRotation(ctx context.Context, userID int) (float64, error)
	SaveRotation(ctx context.Context, userID int, rotation float64) error
}
