package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"nest/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("training.bufferSize", 100)
	v.SetDefault("redis.historyLimit", 20)
	v.SetDefault("llm.maxTokens", 512)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.topP", 0.9)
	v.SetDefault("mongo.collection", "chat_transcripts")

	_ = v.BindEnv("logger.level", "NEST_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "NEST_PORT")
	_ = v.BindEnv("database.url", "NEST_DATABASE_URL")
	_ = v.BindEnv("mongo.uri", "NEST_MONGO_URI")
	_ = v.BindEnv("redis.addr", "NEST_REDIS_ADDR")
	_ = v.BindEnv("redis.password", "NEST_REDIS_PASSWORD")
	_ = v.BindEnv("llm.apiKey", "NEST_LLM_API_KEY")
	_ = v.BindEnv("llm.baseURL", "NEST_LLM_BASE_URL")
	_ = v.BindEnv("llm.model", "NEST_CHAT_MODEL")
	_ = v.BindEnv("cache.enabled", "NEST_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "NEST"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
