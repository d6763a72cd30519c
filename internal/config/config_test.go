package config

import (
	"empdir/internal/types"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.T().Setenv("XDG_CONFIG_HOME", s.dir)
	s.T().Setenv("HOME", s.dir)
	for _, k := range []string{ConfigKey, APIURLKey, TimeoutKey, ThemeKey, LogLevelKey, HistoryKey,
		"NOTIFY_BACKEND", "SNS_TOPIC_ARN", "REDIS_CHANNEL"} {
		s.T().Setenv(k, "")
	}
}

func (s *ConfigTestSuite) write(name, content string) string {
	p := filepath.Join(s.dir, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(p), 0o755))
	s.Require().NoError(os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (s *ConfigTestSuite) TestDefaultsWithoutFile() {
	cfg, err := Load("")
	s.NoError(err)
	s.Equal(types.DefaultConfig(), cfg)
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestYAMLFile() {
	p := s.write("custom.yml", `
api_url: https://hr.example.com/api/employees
timeout: 3s
theme: dark
notify:
  backend: redis
  redis_channel: hr:toasts
  redis_history: 5
`)
	cfg, err := Load(p)
	s.NoError(err)
	s.Equal("https://hr.example.com/api/employees", cfg.APIURL)
	s.Equal("3s", cfg.Timeout)
	s.Equal(types.ThemeDark, cfg.Theme)
	s.Equal(types.NotifyRedis, cfg.Notify.Backend)
	s.Equal("hr:toasts", cfg.Notify.RedisChannel)
	s.Equal(5, cfg.Notify.RedisHistory)
	// untouched keys keep their defaults
	s.Equal(types.DefaultLogLevel, cfg.LogLevel)
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestDefaultLocationIsPickedUp() {
	s.write(filepath.Join("empdir", "config.yml"), "api_url: http://10.0.0.5:8080/api/employees\n")
	cfg, err := Load("")
	s.NoError(err)
	s.Equal("http://10.0.0.5:8080/api/employees", cfg.APIURL)
}

func (s *ConfigTestSuite) TestEnvOverridesFile() {
	p := s.write("custom.yml", "api_url: https://hr.example.com/api/employees\nlog_level: info\n")
	s.T().Setenv(ConfigKey, p)
	s.T().Setenv(APIURLKey, "http://localhost:9090/api/employees")
	s.T().Setenv("NOTIFY_BACKEND", "sns")
	s.T().Setenv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:empdir")
	s.T().Setenv(HistoryKey, "7")

	cfg, err := Load("")
	s.NoError(err)
	s.Equal("http://localhost:9090/api/employees", cfg.APIURL)
	s.Equal("info", cfg.LogLevel)
	s.Equal(types.NotifySNS, cfg.Notify.Backend)
	s.Equal("arn:aws:sns:us-east-1:000000000000:empdir", cfg.Notify.SNSTopicArn)
	s.Equal(7, cfg.Notify.RedisHistory)

	s.T().Setenv(HistoryKey, "lots")
	_, err = Load("")
	s.True(errors.Is(err, types.ErrInvalidConfig))
}

func (s *ConfigTestSuite) TestMissingExplicitFile() {
	_, err := Load(filepath.Join(s.dir, "nope.yml"))
	s.True(errors.Is(err, types.ErrInvalidConfig))
}

func (s *ConfigTestSuite) TestBrokenYAML() {
	p := s.write("broken.yml", "api_url: [unterminated\n")
	_, err := Load(p)
	s.True(errors.Is(err, types.ErrInvalidConfig))
}

func (s *ConfigTestSuite) TestEnvFile() {
	p := s.write("test.env", APIURLKey+"=http://from-dotenv:8080/api/employees\n")
	s.T().Setenv(EnvFileKey, p)
	s.T().Setenv(APIURLKey, "")
	s.Require().NoError(os.Unsetenv(APIURLKey))

	LoadEnvFile()
	cfg, err := Load("")
	s.NoError(err)
	s.Equal("http://from-dotenv:8080/api/employees", cfg.APIURL)
}

func (s *ConfigTestSuite) TestPrefsRoundTrip() {
	p := filepath.Join(s.dir, "empdir", "prefs.yml")

	prefs, err := LoadPrefs(p)
	s.NoError(err)
	s.Equal(types.ThemeLight, prefs.Theme)

	s.NoError(SavePrefs(p, prefs.Toggled()))
	prefs, err = LoadPrefs(p)
	s.NoError(err)
	s.Equal(types.ThemeDark, prefs.Theme)

	s.Equal(types.ThemeLight, prefs.Toggled().Theme)
	s.Equal(p, PrefsPath())
}

func (s *ConfigTestSuite) TestPrefsUnknownThemeFallsBackToLight() {
	p := s.write("prefs.yml", "theme: sepia\n")
	prefs, err := LoadPrefs(p)
	s.NoError(err)
	s.Equal(types.ThemeLight, prefs.Theme)
}
