package config

import (
	"fortune_wheel/internal/wheel"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type WheelConfig interface {
	Sectors() []wheel.Sector
	FullTurns() int
	SpinDuration() time.Duration
	// CooldownGate - перед спином спрашивать у бэкенда, можно ли крутить
	CooldownGate() bool
	DispatchPoolSize() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	// DSN пустой, если база не настроена
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}

type BackendConfig interface {
	BaseURL() string
	Timeout() time.Duration
}

type LogConfig interface {
	Level() string
	Production() bool
	Dir() string
	File() bool
	App() string
}
