package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"dwd/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "DWD_LOG_LEVEL")
	viper.BindEnv("watcher.logDir", "DWD_LOG_DIR")
	viper.BindEnv("watcher.filePrefix", "DWD_LOG_FILE_PREFIX")
	viper.BindEnv("watcher.timezone", "DWD_APP_TZ")
	viper.BindEnv("sms.apiKey", "DWD_SOLAPI_API_KEY")
	viper.BindEnv("sms.apiSecret", "DWD_SOLAPI_API_SECRET")
	viper.BindEnv("sms.sender", "DWD_SOLAPI_SENDER")
	viper.BindEnv("cache.enabled", "DWD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "DWD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "DispatchWatchDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
