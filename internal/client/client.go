package client

import (
	"context"
	"fortune_wheel/internal/client/stars"
	"time"
)

// StarsClient - внешний бэкенд звезд: запись результата и проверка кулдауна
type StarsClient interface {
	SubmitResult(ctx context.Context, token, prize string, at time.Time) (*stars.SubmitResponse, error)
	CheckStatus(ctx context.Context, token string) (*stars.Status, error)
}

var _ StarsClient = (*stars.Client)(nil)
