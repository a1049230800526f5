package wheel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// Полный круг в градусах
	fullCircle = 360.0
	// Допустимая погрешность при проверке разметки колеса
	epsilon = 1e-6
)

// Prize - количество звезд в секторе. 0 - пустой сектор
type Prize int

const (
	NoPrize    Prize = 0
	OneStar    Prize = 1
	TwoStars   Prize = 2
	ThreeStars Prize = 3
	FourStars  Prize = 4
)

// Valid проверяет, что приз входит в закрытый набор 0..4
func (p Prize) Valid() bool {
	return p >= NoPrize && p <= FourStars
}

// String возвращает метку приза в формате "4⭐", как ее ожидает бэкенд звезд
func (p Prize) String() string {
	return strconv.Itoa(int(p)) + "⭐"
}

// ParsePrize разбирает метку "N⭐" или просто число
func ParsePrize(s string) (Prize, error) {
	trimmed := s
	if n := len(trimmed) - len("⭐"); n > 0 && trimmed[n:] == "⭐" {
		trimmed = trimmed[:n]
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid prize %q: %w", s, err)
	}
	p := Prize(v)
	if !p.Valid() {
		return 0, fmt.Errorf("prize %d out of range", v)
	}
	return p, nil
}

// Sector - один сектор колеса
type Sector struct {
	Center float64
	Start  float64
	End    float64
	Prize  Prize
}

// Wraps - сектор пересекает границу 0°/360°
func (s Sector) Wraps() bool {
	return s.Start < 0
}

// Width - угловая ширина сектора
func (s Sector) Width() float64 {
	return s.End - s.Start
}

// Table - неизменяемая разметка колеса
type Table struct {
	sectors []Sector
}

var (
	ErrEmptyTable    = errors.New("sector table is empty")
	ErrInvalidSector = errors.New("invalid sector")
	ErrNotContiguous = errors.New("sectors are not contiguous")
	ErrNotFullCircle = errors.New("sectors do not cover the full circle")
)

// DefaultSectors - семь секторов колеса звезд, против часовой стрелки
func DefaultSectors() []Sector {
	return []Sector{
		{Center: 0, Start: -25.7, End: 25.7, Prize: OneStar},
		{Center: 51.43, Start: 25.7, End: 77.1, Prize: FourStars},
		{Center: 102.86, Start: 77.1, End: 128.6, Prize: NoPrize},
		{Center: 154.29, Start: 128.6, End: 180.0, Prize: ThreeStars},
		{Center: 205.71, Start: 180.0, End: 231.4, Prize: NoPrize},
		{Center: 257.14, Start: 231.4, End: 282.9, Prize: NoPrize},
		{Center: 308.57, Start: 282.9, End: 334.3, Prize: TwoStars},
	}
}

// DefaultTable возвращает стандартную разметку колеса
func DefaultTable() *Table {
	t, err := NewTable(DefaultSectors())
	if err != nil {
		panic("default sector table is invalid: " + err.Error())
	}
	return t
}

// NewTable проверяет разметку и создает таблицу.
// Секторы должны идти подряд без зазоров и перекрытий и в сумме давать 360°.
// Пересекать 0° может только первый сектор.
func NewTable(sectors []Sector) (*Table, error) {
	if len(sectors) == 0 {
		return nil, ErrEmptyTable
	}

	var total float64
	for i, s := range sectors {
		if !s.Prize.Valid() {
			return nil, fmt.Errorf("%w %d: prize %d", ErrInvalidSector, i, s.Prize)
		}
		if s.End <= s.Start {
			return nil, fmt.Errorf("%w %d: end %.2f <= start %.2f", ErrInvalidSector, i, s.End, s.Start)
		}
		if s.Wraps() && i != 0 {
			return nil, fmt.Errorf("%w %d: only the first sector may cross 0°", ErrInvalidSector, i)
		}
		if s.Start < -fullCircle || s.End > fullCircle {
			return nil, fmt.Errorf("%w %d: range outside one turn", ErrInvalidSector, i)
		}
		if i > 0 && math.Abs(sectors[i-1].End-s.Start) > epsilon {
			return nil, fmt.Errorf("%w: sector %d ends at %.2f, sector %d starts at %.2f",
				ErrNotContiguous, i-1, sectors[i-1].End, i, s.Start)
		}
		total += s.Width()
	}

	if math.Abs(total-fullCircle) > epsilon {
		return nil, fmt.Errorf("%w: total width %.4f", ErrNotFullCircle, total)
	}

	// Замыкание круга: конец последнего сектора совпадает с началом первого
	first, last := sectors[0], sectors[len(sectors)-1]
	if math.Abs(normalizeBound(first.Start)-normalizeBound(last.End)) > epsilon {
		return nil, fmt.Errorf("%w: last sector ends at %.2f, first starts at %.2f",
			ErrNotContiguous, last.End, first.Start)
	}

	cp := make([]Sector, len(sectors))
	copy(cp, sectors)
	return &Table{sectors: cp}, nil
}

// Sectors возвращает копию секторов
func (t *Table) Sectors() []Sector {
	cp := make([]Sector, len(t.sectors))
	copy(cp, t.sectors)
	return cp
}

// Len - количество секторов
func (t *Table) Len() int {
	return len(t.sectors)
}

// граница в [0,360), 360 и 0 считаются одной точкой
func normalizeBound(b float64) float64 {
	return Normalize(b)
}
