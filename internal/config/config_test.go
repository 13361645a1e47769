package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	for _, name := range []string{"LOG_LEVEL", "THINK_DELAY", "HTTP_HOST", "HTTP_PORT", "STORAGE_TYPE", "REDIS_URL", "SESSION_TTL"} {
		s.T().Setenv(name, "")
		s.Require().NoError(os.Unsetenv(name))
	}
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal("info", cfg.LogLevel)
	s.Equal(200*time.Millisecond, cfg.ThinkDelay)
	s.Equal("", cfg.HTTP.Host)
	s.Equal(8080, cfg.HTTP.Port)
	s.Equal("memory", cfg.Storage.Type)
	s.Equal(24*time.Hour, cfg.Storage.SessionTTL)
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("LOG_LEVEL", "debug")
	s.T().Setenv("THINK_DELAY", "1s")
	s.T().Setenv("HTTP_PORT", "9090")
	s.T().Setenv("STORAGE_TYPE", "Redis")
	s.T().Setenv("REDIS_URL", "redis://cache:6379/1")
	s.T().Setenv("SESSION_TTL", "2h")

	cfg, err := Load("")
	s.Require().NoError(err)

	level, err := cfg.SlogLevel()
	s.Require().NoError(err)
	s.Equal(slog.LevelDebug, level)
	s.Equal(time.Second, cfg.ThinkDelay)
	s.Equal(9090, cfg.HTTP.Port)
	s.Equal("redis", cfg.Storage.Type)

	redisCfg := cfg.RedisConfig()
	s.Equal("redis://cache:6379/1", redisCfg.URL)
	s.Equal(2*time.Hour, redisCfg.SessionTTL)
	s.Positive(redisCfg.PoolSize)
}

func (s *ConfigSuite) TestYAMLFile() {
	path := filepath.Join(s.T().TempDir(), "config.yml")
	s.Require().NoError(os.WriteFile(path, []byte(`
log-level: warn
http:
  host: 127.0.0.1
  port: 8181
storage:
  type: memory
`), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("warn", cfg.LogLevel)
	s.Equal("127.0.0.1", cfg.HTTP.Host)
	s.Equal(8181, cfg.HTTP.Port)
}

func (s *ConfigSuite) TestEnvironmentBeatsFile() {
	path := filepath.Join(s.T().TempDir(), "config.yml")
	s.Require().NoError(os.WriteFile(path, []byte("http:\n  port: 8181\n"), 0o600))
	s.T().Setenv("HTTP_PORT", "7070")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(7070, cfg.HTTP.Port)
}

func (s *ConfigSuite) TestValidation() {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "postgres"}},
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"negative think delay", map[string]string{"THINK_DELAY": "-1s"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			for k, v := range tt.env {
				s.T().Setenv(k, v)
			}
			_, err := Load("")
			s.Error(err)
		})
	}
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yml"))
	s.Error(err)
	s.Panics(func() { MustLoad(filepath.Join(s.T().TempDir(), "missing.yml")) })
}

func (s *ConfigSuite) TestUsageListsVariables() {
	usage := Usage()
	s.Contains(usage, "STORAGE_TYPE")
	s.Contains(usage, "THINK_DELAY")
}
