package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type WatcherConfig struct {
	LogDir        string        `yaml:"logDir" validate:"required|unixPath"`
	FilePrefix    string        `yaml:"filePrefix"`
	Timezone      string        `yaml:"timezone" validate:"required"`
	RolloverCheck time.Duration `yaml:"rolloverCheck" validate:"required|min:1"`
	DedupSize     int           `yaml:"dedupSize" validate:"required|min:1"`
}

type SubscriptionsConfig struct {
	DataDir         string `yaml:"dataDir" validate:"required|unixPath"`
	ArchiveDir      string `yaml:"archiveDir" validate:"required|unixPath"`
	ResetAt         string `yaml:"resetAt" validate:"required"`
	CompressArchive bool   `yaml:"compressArchive"`
}

type SmsConfig struct {
	ApiKey    string        `yaml:"apiKey"`
	ApiSecret string        `yaml:"apiSecret"`
	Sender    string        `yaml:"sender"`
	Timeout   time.Duration `yaml:"timeout"`
}

type StatusConfig struct {
	Capacity int `yaml:"capacity"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName       string
	Debug         bool
	Path          string
	WebServer     Server              `yaml:"webServer"`
	Logger        LoggerConfig        `yaml:"logger"`
	Watcher       WatcherConfig       `yaml:"watcher"`
	Subscriptions SubscriptionsConfig `yaml:"subscriptions"`
	Sms           SmsConfig           `yaml:"sms"`
	Status        StatusConfig        `yaml:"status"`
	Cache         CacheConfig         `yaml:"cache"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}
