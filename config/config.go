package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AltConfigEnvVar names a .env file used when none sits next to the executable.
	AltConfigEnvVar = "CLIPBOARD_MASTER"

	MagnetEnvVar         = "MAGNET"
	SleepIntervalEnvVar  = "SLEEP_INTERVAL_MS"
	FileLoggingEnvVar    = "ENABLE_FILE_LOGGING"
	DefaultSleepInterval = 500 * time.Millisecond
)

type LoadOptions struct {
	// EnvPathOverride replaces the .env lookup when set.
	EnvPathOverride string
}

type Config struct {
	EnvPath           string
	Magnet            bool
	SleepInterval     time.Duration
	EnableFileLogging bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use CLIPBOARD_MASTER env var as a path to a config file
	// Variables already set in the environment win over the file.
	envPath := strings.TrimSpace(opts.EnvPathOverride)
	if envPath == "" {
		envPath = resolveEnvPath()
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	interval, err := parseInterval(os.Getenv(SleepIntervalEnvVar))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		EnvPath:           envPath,
		Magnet:            parseBool(os.Getenv(MagnetEnvVar)),
		SleepInterval:     interval,
		EnableFileLogging: parseBool(os.Getenv(FileLoggingEnvVar)),
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	execDir := filepath.Dir(execPath)
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(AltConfigEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseInterval(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultSleepInterval, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive number of milliseconds, got %q", SleepIntervalEnvVar, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
