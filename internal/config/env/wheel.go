package env

import (
	"errors"
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/wheel"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	wheelConfigEnvName      = "WHEEL_CONFIG"
	defaultWheelConfigPath  = "config.yaml"
	defaultDispatchPoolSize = 64
)

type wheelFile struct {
	Wheel struct {
		FullTurns        int           `yaml:"full_turns"`
		SpinDuration     string        `yaml:"spin_duration"`
		CooldownGate     *bool         `yaml:"cooldown_gate"`
		DispatchPoolSize int           `yaml:"dispatch_pool_size"`
		Sectors          []sectorEntry `yaml:"sectors"`
	} `yaml:"wheel"`
}

type sectorEntry struct {
	Center float64    `yaml:"center"`
	Range  [2]float64 `yaml:"range"`
	Prize  int        `yaml:"prize"`
}

type wheelConfig struct {
	sectors          []wheel.Sector
	fullTurns        int
	spinDuration     time.Duration
	cooldownGate     bool
	dispatchPoolSize int
}

// WheelConfigPath - путь к YAML с настройками колеса
func WheelConfigPath() string {
	if p := os.Getenv(wheelConfigEnvName); len(p) != 0 {
		return p
	}
	return defaultWheelConfigPath
}

// NewWheelConfigFromYAML читает настройки колеса.
// Если файла нет, используется стандартная разметка на 7 секторов.
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	cfg := defaultWheelConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read wheel config: %w", err)
	}

	return parseWheelConfig(data, cfg)
}

func parseWheelConfig(data []byte, cfg *wheelConfig) (*wheelConfig, error) {
	var f wheelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}

	w := f.Wheel
	if w.FullTurns < 0 {
		return nil, fmt.Errorf("full_turns must be positive, got %d", w.FullTurns)
	}
	if w.FullTurns > 0 {
		cfg.fullTurns = w.FullTurns
	}
	if len(w.SpinDuration) != 0 {
		d, err := time.ParseDuration(w.SpinDuration)
		if err != nil {
			return nil, fmt.Errorf("invalid spin_duration: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("spin_duration must be positive, got %s", d)
		}
		cfg.spinDuration = d
	}
	if w.CooldownGate != nil {
		cfg.cooldownGate = *w.CooldownGate
	}
	if w.DispatchPoolSize > 0 {
		cfg.dispatchPoolSize = w.DispatchPoolSize
	}

	if len(w.Sectors) != 0 {
		sectors := make([]wheel.Sector, len(w.Sectors))
		for i, s := range w.Sectors {
			sectors[i] = wheel.Sector{
				Center: s.Center,
				Start:  s.Range[0],
				End:    s.Range[1],
				Prize:  wheel.Prize(s.Prize),
			}
		}
		// Проверяем разметку сразу при загрузке
		if _, err := wheel.NewTable(sectors); err != nil {
			return nil, fmt.Errorf("invalid sectors: %w", err)
		}
		cfg.sectors = sectors
	}

	return cfg, nil
}

func defaultWheelConfig() *wheelConfig {
	return &wheelConfig{
		sectors:          wheel.DefaultSectors(),
		fullTurns:        wheel.DefaultFullTurns,
		spinDuration:     wheel.DefaultSpinDuration,
		cooldownGate:     true,
		dispatchPoolSize: defaultDispatchPoolSize,
	}
}

func (cfg *wheelConfig) Sectors() []wheel.Sector {
	cp := make([]wheel.Sector, len(cfg.sectors))
	copy(cp, cfg.sectors)
	return cp
}

func (cfg *wheelConfig) FullTurns() int {
	return cfg.fullTurns
}

func (cfg *wheelConfig) SpinDuration() time.Duration {
	return cfg.spinDuration
}

func (cfg *wheelConfig) CooldownGate() bool {
	return cfg.cooldownGate
}

func (cfg *wheelConfig) DispatchPoolSize() int {
	return cfg.dispatchPoolSize
}
