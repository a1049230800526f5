package wheel

import "math"

// Normalize приводит угол к диапазону [0,360)
func Normalize(angle float64) float64 {
	a := math.Mod(math.Mod(angle, fullCircle)+fullCircle, fullCircle)
	// math.Mod(-0.0, 360) дает -0
	if a == 0 {
		return 0
	}
	return a
}

// Resolve определяет приз по углу остановки колеса.
// Границы секторов включаются с обеих сторон, поэтому на точной границе
// выигрывает сектор, который стоит раньше в таблице.
func (t *Table) Resolve(angle float64) Prize {
	s, _ := t.Locate(angle)
	return s.Prize
}

// Locate возвращает сектор под углом и его индекс.
// Если ни один сектор не подошел, возвращается первый сектор и -1.
func (t *Table) Locate(angle float64) (Sector, int) {
	a := Normalize(angle)

	for i, s := range t.sectors {
		// Сектор пересекает 0°
		if s.Wraps() {
			if a >= s.Start+fullCircle || a <= s.End {
				return s, i
			}
			continue
		}
		if a >= s.Start && a <= s.End {
			return s, i
		}
	}

	return t.sectors[0], -1
}
