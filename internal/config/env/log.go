package env

import (
	"fortune_wheel/internal/config"
	"os"
	"strconv"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logModeEnvName  = "LOG_MODE"
	logDirEnvName   = "LOG_DIR"
	logFileEnvName  = "LOG_FILE"
	appName         = "fortune_wheel"
)

type logConfig struct {
	level string
	prod  bool
	dir   string
	file  bool
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}

	// Ошибку разбора игнорируем: значит запись в файл выключена
	file, _ := strconv.ParseBool(os.Getenv(logFileEnvName))

	return &logConfig{
		level: level,
		prod:  os.Getenv(logModeEnvName) == "prod",
		dir:   os.Getenv(logDirEnvName),
		file:  file,
	}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Production() bool {
	return cfg.prod
}

func (cfg *logConfig) Dir() string {
	return cfg.dir
}

func (cfg *logConfig) File() bool {
	return cfg.file
}

func (cfg *logConfig) App() string {
	return appName
}
