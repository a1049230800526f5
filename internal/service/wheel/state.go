package wheel

import (
	"context"
	"fmt"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/service"
)

// State возвращает состояние колеса текущего пользователя
func (s *serv) State(ctx context.Context) (*model.WheelState, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, service.ErrNoUser
	}

	sess, err := s.acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wheel state: %w", err)
	}
	defer sess.mtx.Unlock()

	state := &model.WheelState{
		State:    sess.machine.State().String(),
		Rotation: sess.machine.Rotation(),
	}
	if cur, ok := sess.machine.Current(); ok {
		state.Current = toSpinResult(cur, s.duration)
	}
	if last, ok := sess.machine.Last(); ok {
		state.Last = toSpinResult(last, s.duration)
	}
	if sess.totalStars != nil {
		total := *sess.totalStars
		state.TotalStars = &total
	}
	return state, nil
}

// Status - доступность спина по данным бэкенда звезд
func (s *serv) Status(ctx context.Context) (*model.SpinStatus, error) {
	token, _ := middleware.TokenFromContext(ctx)

	done := metrics.ObserveBackend("status")
	st, err := s.stars.CheckStatus(ctx, token)
	done()
	if err != nil {
		metrics.BackendFailure("status")
		return nil, fmt.Errorf("%w: %v", service.ErrStatusUnavailable, err)
	}

	return &model.SpinStatus{
		CanSpin:      st.CanSpin,
		NextSpinTime: st.NextSpinTime,
	}, nil
}

// Sectors - разметка колеса для отрисовки на клиенте
func (s *serv) Sectors() []model.Sector {
	sectors := s.table.Sectors()
	res := make([]model.Sector, len(sectors))
	for i, sec := range sectors {
		res[i] = model.Sector{
			Center: sec.Center,
			Start:  sec.Start,
			End:    sec.End,
			Prize:  int(sec.Prize),
		}
	}
	return res
}
