package wheel

import (
	"math/rand/v2"
	"sync"
)

const (
	// Колесо делает 5 полных оборотов перед остановкой
	DefaultFullTurns = 5
)

// NextRotation - новый абсолютный угол колеса.
// Колесо всегда крутится в одну сторону, угол только растет.
func NextRotation(previous float64, fullTurns int, offset float64) float64 {
	return previous + float64(fullTurns)*fullCircle + offset
}

// OffsetSource выдает случайное смещение в [0,360)
type OffsetSource interface {
	Offset() float64
}

// OffsetFunc - адаптер функции к OffsetSource
type OffsetFunc func() float64

func (f OffsetFunc) Offset() float64 {
	return f()
}

// RandomOffsets - равномерное смещение на основе math/rand/v2
type RandomOffsets struct {
	mtx sync.Mutex
	rnd *rand.Rand
}

// NewRandomOffsets создает источник смещений. Для seed == 0 используется глобальный генератор.
func NewRandomOffsets(seed uint64) *RandomOffsets {
	if seed == 0 {
		return &RandomOffsets{}
	}
	return &RandomOffsets{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomOffsets) Offset() float64 {
	if r.rnd == nil {
		return rand.Float64() * fullCircle
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.rnd.Float64() * fullCircle
}

// FixedOffsets отдает заданные смещения по кругу
type FixedOffsets struct {
	mtx     sync.Mutex
	offsets []float64
	next    int
}

func NewFixedOffsets(offsets ...float64) *FixedOffsets {
	return &FixedOffsets{offsets: offsets}
}

func (f *FixedOffsets) Offset() float64 {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if len(f.offsets) == 0 {
		return 0
	}
	v := f.offsets[f.next%len(f.offsets)]
	f.next++
	return v
}
