package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	AI        AIConfig        `mapstructure:"ai"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type WebSocketConfig struct {
	SendBufferSize   int `mapstructure:"send_buffer_size"`
	WriteWaitSeconds int `mapstructure:"write_wait_seconds"`
	PongWaitSeconds  int `mapstructure:"pong_wait_seconds"`
	MaxMessageSize   int `mapstructure:"max_message_size"`
	// Bounded retry for a recipient whose send buffer is full.
	SendRetryCount      int `mapstructure:"send_retry_count"`
	SendRetryIntervalMs int `mapstructure:"send_retry_interval_ms"`
}

type AIConfig struct {
	OpenAIKey     string `mapstructure:"openai_key"`
	OpenAIModel   string `mapstructure:"openai_model"`
	GeminiKey     string `mapstructure:"gemini_key"`
	GeminiModel   string `mapstructure:"gemini_model"`
	RepairRetries int    `mapstructure:"repair_retries"`
}

type UploadConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Production bool   `mapstructure:"production"`
}

var GlobalConfig Config

func Init() error {
	return load("config")
}

// InitTest loads config.test.yaml instead of config.yaml.
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	// .env holds API keys and other secrets; a missing file is fine.
	_ = godotenv.Load(filepath.Join(basepath, ".env"))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "eduassist.db")
	viper.SetDefault("websocket.send_buffer_size", 256)
	viper.SetDefault("ai.openai_model", "gpt-3.5-turbo")
	viper.SetDefault("ai.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("ai.repair_retries", 3)
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_file_size", 10*1024*1024)
	viper.SetDefault("log.level", "info")

	// Environment overrides, e.g. EDUASSIST_AI_OPENAI_KEY.
	viper.SetEnvPrefix("EDUASSIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
