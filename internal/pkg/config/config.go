package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	QueueCapacity int    `mapstructure:"QUEUE_CAPACITY"`
	NumWorkers    int    `mapstructure:"NUM_WORKERS"`

	// Analysis settings
	MaxPages         int    `mapstructure:"MAX_PAGES"`
	MinCriteriaCount int    `mapstructure:"MIN_CRITERIA_COUNT"`
	WeightsFile      string `mapstructure:"WEIGHTS_FILE"`

	// Redis result cache
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	CacheTTLMinutes int    `mapstructure:"CACHE_TTL_MINUTES"`

	// Result sink (Elasticsearch-style bulk endpoint)
	SinkURL           string `mapstructure:"SINK_URL"`
	SinkIndex         string `mapstructure:"SINK_INDEX"`
	SinkThreshold     int    `mapstructure:"SINK_THRESHOLD"`
	SinkFlushInterval int    `mapstructure:"SINK_FLUSH_INTERVAL"`

	// Conclusion model
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	ConclusionModel string `mapstructure:"CONCLUSION_MODEL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	// Set defaults for configuration values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("QUEUE_CAPACITY", 100)
	viper.SetDefault("NUM_WORKERS", 2)

	viper.SetDefault("MAX_PAGES", 3)
	viper.SetDefault("MIN_CRITERIA_COUNT", 5)
	viper.SetDefault("WEIGHTS_FILE", "")

	// Redis defaults
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_MINUTES", 240)

	// Sink defaults; empty URL disables the sink
	viper.SetDefault("SINK_URL", "")
	viper.SetDefault("SINK_INDEX", "edition_analyses")
	viper.SetDefault("SINK_THRESHOLD", 3)
	viper.SetDefault("SINK_FLUSH_INTERVAL", 30)

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("CONCLUSION_MODEL", "gpt-4o-mini")

	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
