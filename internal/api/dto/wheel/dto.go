package wheel

import "time"

type SpinResponse struct {
	SpinID        string    `json:"spin_id"`
	FinalRotation float64   `json:"final_rotation"` // Абсолютный угол, на который повернуть колесо
	Angle         float64   `json:"angle"`          // Угол остановки 0-360
	Sector        int       `json:"sector"`         // Индекс сектора
	Prize         int       `json:"prize"`          // Звезды 0-4
	PrizeLabel    string    `json:"prize_label"`    // "4⭐"
	DurationMs    int64     `json:"duration_ms"`    // Длительность анимации
	StartedAt     time.Time `json:"started_at"`
}

type StateResponse struct {
	State      string        `json:"state"`    // idle | spinning
	Rotation   float64       `json:"rotation"` // Базовый угол для следующего спина
	Current    *SpinResponse `json:"current,omitempty"`
	LastPrize  *int          `json:"last_prize,omitempty"`
	TotalStars *int          `json:"total_stars,omitempty"` // Последнее значение от бэкенда звезд
}

type StatusResponse struct {
	CanSpin      bool       `json:"can_spin"`
	NextSpinTime *time.Time `json:"next_spin_time"`
}

type SectorResponse struct {
	Center float64    `json:"center"`
	Range  [2]float64 `json:"range"`
	Prize  int        `json:"prize"`
}

type ErrorResponse struct {
	Error        string     `json:"error"`
	NextSpinTime *time.Time `json:"next_spin_time,omitempty"`
}
