package wheel

import "time"

// DefaultSpinDuration - длительность анимации вращения
const DefaultSpinDuration = 4000 * time.Millisecond

// State - состояние колеса
type State int

const (
	Idle State = iota
	Spinning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	default:
		return "unknown"
	}
}

// Result - итог одного спина
type Result struct {
	ID        string
	Rotation  float64 // абсолютный угол после спина
	Angle     float64 // угол остановки в [0,360)
	Sector    int
	Prize     Prize
	StartedAt time.Time
}

// Event - входное событие автомата
type Event interface {
	event()
}

// SpinTriggered - пользователь запустил спин. Offset - случайное смещение в [0,360)
type SpinTriggered struct {
	ID     string
	Offset float64
	At     time.Time
}

// SpinDenied - внешняя проверка кулдауна запретила спин
type SpinDenied struct {
	Reason string
}

// AnimationElapsed - истекло время анимации спина ID
type AnimationElapsed struct {
	ID string
}

func (SpinTriggered) event()    {}
func (SpinDenied) event()       {}
func (AnimationElapsed) event() {}

// Command - побочный эффект, который должен выполнить владелец автомата
type Command interface {
	command()
}

// StartAnimation - запустить анимацию и таймер на Duration
type StartAnimation struct {
	Result   Result
	Duration time.Duration
}

// DeliverResult - отдать результат внешнему обработчику (ровно один раз за спин)
type DeliverResult struct {
	Result Result
}

// RejectSpin - показать пользователю отказ
type RejectSpin struct {
	Reason string
}

func (StartAnimation) command() {}
func (DeliverResult) command()  {}
func (RejectSpin) command()     {}

// Machine - состояние одного колеса. Не потокобезопасен, синхронизацию делает владелец.
type Machine struct {
	table     *Table
	fullTurns int
	duration  time.Duration

	state    State
	rotation float64
	current  *Result
	last     *Result
}

// Option настраивает Machine
type Option func(*Machine)

func WithFullTurns(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.fullTurns = n
		}
	}
}

func WithDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.duration = d
		}
	}
}

// WithRotation задает базовый угол, с которого продолжится следующий спин
func WithRotation(r float64) Option {
	return func(m *Machine) {
		m.rotation = r
	}
}

// NewMachine создает колесо в состоянии Idle
func NewMachine(table *Table, opts ...Option) *Machine {
	if table == nil {
		table = DefaultTable()
	}
	m := &Machine{
		table:     table,
		fullTurns: DefaultFullTurns,
		duration:  DefaultSpinDuration,
		state:     Idle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Transition - единственная точка изменения состояния.
// Возвращает команды, которые нужно выполнить после перехода.
func (m *Machine) Transition(ev Event) []Command {
	switch e := ev.(type) {
	case SpinTriggered:
		// Повторный запуск во время вращения игнорируется
		if m.state == Spinning {
			return nil
		}
		rotation := NextRotation(m.rotation, m.fullTurns, e.Offset)
		// Приз определяется сразу, до анимации
		sector, idx := m.table.Locate(rotation)
		if idx < 0 {
			idx = 0
		}
		res := Result{
			ID:        e.ID,
			Rotation:  rotation,
			Angle:     Normalize(rotation),
			Sector:    idx,
			Prize:     sector.Prize,
			StartedAt: e.At,
		}
		m.current = &res
		m.state = Spinning
		return []Command{StartAnimation{Result: res, Duration: m.duration}}

	case SpinDenied:
		if m.state == Spinning {
			return nil
		}
		return []Command{RejectSpin{Reason: e.Reason}}

	case AnimationElapsed:
		if m.state != Spinning || m.current == nil || m.current.ID != e.ID {
			return nil
		}
		res := *m.current
		m.rotation = res.Rotation
		m.last = &res
		m.current = nil
		m.state = Idle
		return []Command{DeliverResult{Result: res}}
	}
	return nil
}

func (m *Machine) State() State {
	return m.state
}

// Rotation - базовый угол для следующего спина
func (m *Machine) Rotation() float64 {
	return m.rotation
}

// Current - текущий незавершенный спин
func (m *Machine) Current() (Result, bool) {
	if m.current == nil {
		return Result{}, false
	}
	return *m.current, true
}

// Last - последний завершенный спин
func (m *Machine) Last() (Result, bool) {
	if m.last == nil {
		return Result{}, false
	}
	return *m.last, true
}

func (m *Machine) Duration() time.Duration {
	return m.duration
}

func (m *Machine) Table() *Table {
	return m.table
}
