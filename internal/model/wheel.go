package model

import "time"

// SpinResult - результат спина, который видит клиент
type SpinResult struct {
	ID        string
	Rotation  float64 // абсолютный угол колеса, растет от спина к спину
	Angle     float64 // угол остановки в [0,360)
	Sector    int
	Prize     int
	StartedAt time.Time
	Duration  time.Duration // сколько длится анимация
}

// WheelState - состояние колеса игрока
type WheelState struct {
	State      string
	Rotation   float64 // базовый угол для следующего спина
	Current    *SpinResult
	Last       *SpinResult
	TotalStars *int // последнее значение от бэкенда звезд
}

// SpinStatus - доступность спина по данным бэкенда
type SpinStatus struct {
	CanSpin      bool
	NextSpinTime *time.Time
}

type Sector struct {
	Center float64
	Start  float64
	End    float64
	Prize  int
}
