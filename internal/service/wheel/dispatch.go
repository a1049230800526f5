package wheel

import (
	"context"
	"errors"
	"fortune_wheel/internal/client"
	"fortune_wheel/internal/metrics"
	core "fortune_wheel/internal/wheel"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

type DispatcherDeps struct {
	PoolSize int
	Stars    client.StarsClient
	Timeout  time.Duration
	// OnStars вызывается с total_stars из ответа бэкенда
	OnStars func(userID, total int)
	Log     *zap.Logger
	Now     func() time.Time
}

// Dispatcher отправляет результаты спинов на бэкенд звезд в фоне.
// Ошибка отправки не откатывает ни приз, ни состояние колеса.
type Dispatcher struct {
	pool    *ants.Pool
	stars   client.StarsClient
	timeout time.Duration
	onStars func(userID, total int)
	log     *zap.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewDispatcher(deps DispatcherDeps) (*Dispatcher, error) {
	if deps.Stars == nil {
		return nil, errors.New("stars client is required")
	}
	size := deps.PoolSize
	if size <= 0 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		pool:    pool,
		stars:   deps.Stars,
		timeout: deps.Timeout,
		onStars: deps.OnStars,
		log:     deps.Log,
		now:     deps.Now,
	}
	if d.timeout <= 0 {
		d.timeout = submitTimeout
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d, nil
}

func (d *Dispatcher) HandleResult(ctx context.Context, userID int, token string, res core.Result) {
	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		d.submit(ctx, userID, token, res)
	})
	if err != nil {
		d.wg.Done()
		metrics.BackendFailure("submit")
		d.log.Error("failed to submit spin result to pool",
			zap.Int("user_id", userID),
			zap.String("spin_id", res.ID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) submit(ctx context.Context, userID int, token string, res core.Result) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := metrics.ObserveBackend("submit")
	resp, err := d.stars.SubmitResult(ctx, token, res.Prize.String(), d.now())
	done()
	if err != nil {
		metrics.BackendFailure("submit")
		d.log.Warn("submit spin result failed",
			zap.Int("user_id", userID),
			zap.String("spin_id", res.ID),
			zap.Stringer("prize", res.Prize),
			zap.Error(err),
		)
		return
	}

	d.log.Debug("spin result saved",
		zap.Int("user_id", userID),
		zap.String("spin_id", res.ID),
		zap.Int("total_stars", resp.TotalStars),
	)
	if d.onStars != nil {
		d.onStars(userID, resp.TotalStars)
	}
}

// Wait ждет, пока уйдут все отправленные в пул результаты
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Release ждет отправки результатов, но не дольше, чем живет ctx
func (d *Dispatcher) Release(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.pool.Release()
		return ctx.Err()
	}

	timeout := submitTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		d.pool.Release()
		return nil
	}
	return d.pool.ReleaseTimeout(timeout)
}
