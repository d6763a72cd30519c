// Package config assembles types.Config from a YAML file, a .env file and the environment.
package config

import (
	"empdir/internal/backends"
	"empdir/internal/types"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvFileKey  = "ENV_FILE"
	ConfigKey   = "EMPDIR_CONFIG"
	APIURLKey   = "EMPDIR_API_URL"
	TimeoutKey  = "EMPDIR_TIMEOUT"
	ThemeKey    = "EMPDIR_THEME"
	LogLevelKey = "LOG_LEVEL"
	HistoryKey  = "REDIS_HISTORY"

	appDir = "empdir"
)

// LoadEnvFile loads ENV_FILE (default ".env") into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile() {
	envFile := getenv(EnvFileKey, ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.WithField("file", envFile).Debug("The .env file not found.")
	}
}

// Load returns the defaults overlaid with the YAML file at path and then with the
// environment. With an empty path, EMPDIR_CONFIG is used, then <user config dir>/empdir/config.yml
// if it exists. An explicitly named file must exist.
func Load(path string) (types.Config, error) {
	cfg := types.DefaultConfig()

	explicit := true
	if path == "" {
		path = os.Getenv(ConfigKey)
	}
	if path == "" {
		explicit = false
		path = defaultPath("config.yml")
	}
	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return types.Config{}, types.Err(types.ErrInvalidConfig, err, "config file %s", path)
			}
		} else {
			log.WithField("file", path).Debug("config loaded")
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *types.Config) error {
	setFromEnv(&cfg.APIURL, APIURLKey)
	setFromEnv(&cfg.Timeout, TimeoutKey)
	setFromEnv(&cfg.Theme, ThemeKey)
	setFromEnv(&cfg.LogLevel, LogLevelKey)
	setFromEnv(&cfg.Notify.Backend, backends.NotifyBackendEnvKey)
	setFromEnv(&cfg.Notify.SNSTopicArn, backends.SNSTopicArnKey)
	setFromEnv(&cfg.Notify.RedisChannel, backends.RedisChannel)
	if v := os.Getenv(HistoryKey); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return types.Err(types.ErrInvalidConfig, err, "%s=%q", HistoryKey, v)
		}
		cfg.Notify.RedisHistory = n
	}
	return nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}

// defaultPath is <user config dir>/empdir/name, or "" when there is no config dir.
func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, name)
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
