package wheel

import (
	"context"
	"errors"
	"fmt"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/service"
	core "fortune_wheel/internal/wheel"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spin запускает спин колеса текущего пользователя.
// Приз определяется сразу, а результат уходит обработчику после окончания анимации.
func (s *serv) Spin(ctx context.Context) (*model.SpinResult, error) {
	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, service.ErrNoUser
	}
	token, _ := middleware.TokenFromContext(ctx)

	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()
	if s.closed {
		return nil, service.ErrClosed
	}

	// Колесо уже крутится - на бэкенд не ходим
	sess, err := s.acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wheel state: %w", err)
	}
	spinning := sess.machine.State() == core.Spinning
	sess.mtx.Unlock()
	if spinning {
		metrics.SpinRejected(metrics.ReasonInProgress)
		return nil, service.ErrSpinInProgress
	}

	// Статус спрашиваем без замка сессии: запрос может идти до STARS_TIMEOUT
	var gateErr error
	if s.gate {
		gateErr = s.checkCooldown(ctx, userID, token)
	}

	sess, err = s.acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wheel state: %w", err)
	}
	defer sess.mtx.Unlock()

	// Пока ждали бэкенд, колесо мог запустить параллельный запрос
	if sess.machine.State() == core.Spinning {
		metrics.SpinRejected(metrics.ReasonInProgress)
		return nil, service.ErrSpinInProgress
	}

	if gateErr != nil {
		s.execute(userID, sess, token, sess.machine.Transition(core.SpinDenied{Reason: denialReason(gateErr)}))
		return nil, gateErr
	}

	sess.token = token
	cmds := sess.machine.Transition(core.SpinTriggered{
		ID:     uuid.NewString(),
		Offset: s.offsets.Offset(),
		At:     s.now(),
	})

	res := s.execute(userID, sess, token, cmds)
	if res == nil {
		return nil, service.ErrSpinInProgress
	}

	return toSpinResult(*res, s.duration), nil
}

// checkCooldown спрашивает бэкенд, можно ли крутить
func (s *serv) checkCooldown(ctx context.Context, userID int, token string) error {
	done := metrics.ObserveBackend("status")
	st, err := s.stars.CheckStatus(ctx, token)
	done()

	if err != nil {
		metrics.BackendFailure("status")
		metrics.SpinRejected(metrics.ReasonUnavailable)
		s.log.Warn("check spin status failed", zap.Int("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", service.ErrStatusUnavailable, err)
	}

	if !st.CanSpin {
		metrics.SpinRejected(metrics.ReasonCooldown)
		return &service.CooldownError{NextSpinTime: st.NextSpinTime}
	}

	return nil
}

func denialReason(err error) string {
	var cd *service.CooldownError
	if errors.As(err, &cd) {
		return cooldownReason(cd.NextSpinTime)
	}
	return "spin status unavailable"
}

// execute выполняет команды автомата. StartAnimation и RejectSpin приходят под замком сессии,
// DeliverResult - без него. Возвращает результат, если спин начался.
func (s *serv) execute(userID int, sess *session, token string, cmds []core.Command) *core.Result {
	var started *core.Result
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case core.StartAnimation:
			res := c.Result
			started = &res
			sess.persisted = false
			s.inflight.Add(1)
			s.scheduler.AfterFunc(c.Duration, func() {
				s.complete(userID, sess, res.ID)
			})
			s.log.Info("spin started",
				zap.Int("user_id", userID),
				zap.String("spin_id", res.ID),
				zap.Float64("rotation", res.Rotation),
				zap.Stringer("prize", res.Prize),
			)

		case core.DeliverResult:
			s.deliver(userID, sess, token, c.Result)

		case core.RejectSpin:
			s.log.Info("spin rejected", zap.Int("user_id", userID), zap.String("reason", c.Reason))
		}
	}
	return started
}

// complete - анимация закончилась, колесо возвращается в Idle.
// Крутящаяся сессия не выгружается, поэтому держим ее указатель, а не ищем в карте.
func (s *serv) complete(userID int, sess *session, spinID string) {
	defer s.inflight.Done()

	sess.mtx.Lock()
	cmds := sess.machine.Transition(core.AnimationElapsed{ID: spinID})
	if len(cmds) > 0 {
		// Новый угол еще не в хранилище
		sess.persisted = false
	}
	token := sess.token
	sess.mtx.Unlock()

	s.execute(userID, sess, token, cmds)
}

// deliver сохраняет новый базовый угол и отдает результат обработчику.
// Ошибки здесь только логируются: приз уже определен и показан.
func (s *serv) deliver(userID int, sess *session, token string, res core.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.SaveRotation(txCtx, userID, res.Rotation)
	})
	if err != nil {
		s.log.Error("save wheel rotation failed",
			zap.Int("user_id", userID),
			zap.String("spin_id", res.ID),
			zap.Error(err),
		)
	}
	// Несохраненный угол живет только в машине, такую сессию не выгружаем.
	// Если машина уже ушла дальше, отметку поставит следующий спин.
	sess.mtx.Lock()
	if sess.machine.State() == core.Idle && sess.machine.Rotation() == res.Rotation {
		sess.persisted = err == nil
	}
	sess.mtx.Unlock()

	metrics.SpinCompleted(res.Prize.String())
	s.log.Info("spin completed",
		zap.Int("user_id", userID),
		zap.String("spin_id", res.ID),
		zap.Stringer("prize", res.Prize),
	)

	s.handler.HandleResult(context.Background(), userID, token, res)
}

func cooldownReason(next *time.Time) string {
	if next == nil {
		return "already spun recently"
	}
	return "next spin at " + next.Format(time.RFC3339)
}

func toSpinResult(res core.Result, d time.Duration) *model.SpinResult {
	return &model.SpinResult{
		ID:        res.ID,
		Rotation:  res.Rotation,
		Angle:     res.Angle,
		Sector:    res.Sector,
		Prize:     int(res.Prize),
		StartedAt: res.StartedAt,
		Duration:  d,
	}
}
