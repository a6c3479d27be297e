package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Port  string      `mapstructure:"port"`
	Log   LogConfig   `mapstructure:"log"`
	Model ModelConfig `mapstructure:"model"`
	HTTP  HTTPConfig  `mapstructure:"http"`
}

// LogConfig selects logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// ModelConfig locates the model artifact and tunes the ONNX runtime.
type ModelConfig struct {
	Path           string `mapstructure:"path"`
	MetadataPath   string `mapstructure:"metadata_path"`   // optional column/scaler description
	RuntimeLibrary string `mapstructure:"runtime_library"` // libonnxruntime shared object, empty = runtime default
	IntraOpThreads int    `mapstructure:"intra_op_threads"`
}

// HTTPConfig holds server timeouts.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

const (
	envPrefix  = "FP"
	configName = "config"

	DefaultPort      = "8080"
	DefaultModelPath = "models/best_lof_model.onnx"
)

var (
	errEmptyModelPath = errors.New("model.path must not be empty")
	errThreads        = errors.New("model.intra_op_threads must be positive")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("model.path", DefaultModelPath)
	v.SetDefault("model.metadata_path", "")
	v.SetDefault("model.runtime_library", "")
	v.SetDefault("model.intra_op_threads", 1)
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
}

// Load reads config.yml from the given directories (first match wins).
// A missing file is not an error; defaults and FP_* environment variables
// still apply, e.g. FP_MODEL_PATH overrides model.path.
func Load(dirs ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("yml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model.Path) == "" {
		return errEmptyModelPath
	}
	if c.Model.IntraOpThreads <= 0 {
		return errThreads
	}
	return nil
}
