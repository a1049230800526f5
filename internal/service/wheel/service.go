package wheel

import (
	"context"
	"errors"
	"fortune_wheel/internal/client"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	core "fortune_wheel/internal/wheel"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// Таймаут на сохранение базового угла после спина
	persistTimeout = 5 * time.Second
	// Таймаут на отправку результата на бэкенд звезд
	submitTimeout = 10 * time.Second
	// Сколько колес держим в памяти, прежде чем выгружать простаивающие
	defaultMaxSessions = 10000
)

// Scheduler откладывает завершение спина на время анимации
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// TxManager - то, что сервису нужно от trm.Manager
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx - менеджер без транзакций для хранилища в памяти
type NoTx struct{}

func (NoTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ResultHandler получает результат каждого спина ровно один раз
type ResultHandler interface {
	HandleResult(ctx context.Context, userID int, token string, res core.Result)
}

type Deps struct {
	Config    config.WheelConfig
	Repo      repository.WheelRepository
	TxManager TxManager
	Stars     client.StarsClient
	// Handler необязателен: по умолчанию результаты уходят на бэкенд звезд через пул
	Handler   ResultHandler
	Offsets   core.OffsetSource
	Scheduler Scheduler
	Log       *zap.Logger
	Now       func() time.Time
	// MaxSessions - порог выгрузки простаивающих колес, 0 - по умолчанию
	MaxSessions int
}

// session - колесо одного игрока
type session struct {
	mtx        sync.Mutex
	machine    *core.Machine
	token      string
	totalStars *int
	// persisted - базовый угол машины совпадает с сохраненным в хранилище
	persisted bool
	// evicted - сессия выгружена из карты, ее надо взять заново
	evicted bool
}

type serv struct {
	table     *core.Table
	fullTurns int
	duration  time.Duration
	gate      bool

	repo       repository.WheelRepository
	txManager  TxManager
	stars      client.StarsClient
	handler    ResultHandler
	dispatcher *Dispatcher
	offsets    core.OffsetSource
	scheduler  Scheduler
	log        *zap.Logger
	now        func() time.Time

	mtx         sync.Mutex
	sessions    map[int]*session
	maxSessions int

	// lifecycle держится на чтение на время Spin, Close берет его на запись
	lifecycle sync.RWMutex
	closed    bool
	inflight  sync.WaitGroup
}

// NewWheelService Создать сервис колеса фортуны
func NewWheelService(deps Deps) (service.WheelService, error) {
	return newService(deps)
}

func newService(deps Deps) (*serv, error) {
	if deps.Config == nil {
		return nil, errors.New("wheel config is required")
	}
	if deps.Repo == nil {
		return nil, errors.New("wheel repository is required")
	}
	if deps.Stars == nil {
		return nil, errors.New("stars client is required")
	}

	table, err := core.NewTable(deps.Config.Sectors())
	if err != nil {
		return nil, err
	}

	s := &serv{
		table:     table,
		fullTurns: deps.Config.FullTurns(),
		duration:  deps.Config.SpinDuration(),
		gate:      deps.Config.CooldownGate(),
		repo:      deps.Repo,
		txManager: deps.TxManager,
		stars:     deps.Stars,
		handler:   deps.Handler,
		offsets:   deps.Offsets,
		scheduler: deps.Scheduler,
		log:       deps.Log,
		now:       deps.Now,
		sessions:  make(map[int]*session),

		maxSessions: deps.MaxSessions,
	}
	if s.txManager == nil {
		s.txManager = NoTx{}
	}
	if s.offsets == nil {
		s.offsets = core.NewRandomOffsets(0)
	}
	if s.scheduler == nil {
		s.scheduler = timerScheduler{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.maxSessions <= 0 {
		s.maxSessions = defaultMaxSessions
	}

	if s.handler == nil {
		d, err := NewDispatcher(DispatcherDeps{
			PoolSize: deps.Config.DispatchPoolSize(),
			Stars:    deps.Stars,
			Timeout:  submitTimeout,
			OnStars:  s.setTotalStars,
			Log:      s.log,
			Now:      s.now,
		})
		if err != nil {
			return nil, err
		}
		s.dispatcher = d
		s.handler = d
	}

	return s, nil
}

// session возвращает колесо игрока, при первом обращении поднимает базовый угол из хранилища
func (s *serv) session(ctx context.Context, userID int) (*session, error) {
	s.mtx.Lock()
	sess, ok := s.sessions[userID]
	s.mtx.Unlock()
	if ok {
		return sess, nil
	}

	rotation, err := s.repo.GetRotation(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	// Пока читали хранилище, сессию мог создать параллельный запрос
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	if len(s.sessions) >= s.maxSessions {
		s.evictIdle()
	}
	sess = &session{
		machine: core.NewMachine(s.table,
			core.WithFullTurns(s.fullTurns),
			core.WithDuration(s.duration),
			core.WithRotation(rotation),
		),
		persisted: true,
	}
	s.sessions[userID] = sess
	return sess, nil
}

// acquire возвращает сессию игрока под замком. Выгруженную сессию берет заново.
func (s *serv) acquire(ctx context.Context, userID int) (*session, error) {
	for {
		sess, err := s.session(ctx, userID)
		if err != nil {
			return nil, err
		}
		sess.mtx.Lock()
		if !sess.evicted {
			return sess, nil
		}
		sess.mtx.Unlock()
	}
}

// evictIdle выгружает колеса, которые стоят и чей угол уже сохранен.
// Занятые сессии пропускаются. Вызывается под s.mtx.
func (s *serv) evictIdle() {
	for userID, sess := range s.sessions {
		if len(s.sessions) < s.maxSessions {
			return
		}
		if !sess.mtx.TryLock() {
			continue
		}
		if sess.persisted && sess.machine.State() == core.Idle {
			sess.evicted = true
			delete(s.sessions, userID)
		}
		sess.mtx.Unlock()
	}
}

func (s *serv) lookup(userID int) *session {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.sessions[userID]
}

func (s *serv) setTotalStars(userID, total int) {
	sess := s.lookup(userID)
	if sess == nil {
		return
	}
	sess.mtx.Lock()
	sess.totalStars = &total
	sess.mtx.Unlock()
}

// Close ждет завершения начатых спинов и отправки результатов.
// Отмены спина нет: начатый спин всегда доигрывается.
func (s *serv) Close(ctx context.Context) error {
	s.lifecycle.Lock()
	s.closed = true
	s.lifecycle.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.dispatcher != nil {
		return s.dispatcher.Release(ctx)
	}
	return nil
}
