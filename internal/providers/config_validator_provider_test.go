package providers

import (
	"testing"
	"time"

	"dwd/internal/structures"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Watcher: structures.WatcherConfig{
			LogDir:        "/tmp/dispatch",
			FilePrefix:    "ERSS_",
			Timezone:      "Asia/Seoul",
			RolloverCheck: 30 * time.Second,
			DedupSize:     200,
		},
		Subscriptions: structures.SubscriptionsConfig{
			DataDir:    "/tmp/data",
			ArchiveDir: "/tmp/archive",
			ResetAt:    "09:00",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogDir(t *testing.T) {
	c := validConfig()
	c.Watcher.LogDir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroDedupSize(t *testing.T) {
	c := validConfig()
	c.Watcher.DedupSize = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownTimezone(t *testing.T) {
	c := validConfig()
	c.Watcher.Timezone = "Mars/Olympus"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadResetAt(t *testing.T) {
	c := validConfig()
	c.Subscriptions.ResetAt = "9 o'clock"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
