package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("novadoc: invalid config")

type NovaDocConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	REPL    REPLConfig    `mapstructure:"repl"`
}

type StorageConfig struct {
	Backend string   `mapstructure:"backend"`
	Root    string   `mapstructure:"root"`
	Format  string   `mapstructure:"format"`
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

type REPLConfig struct {
	Prompt     string `mapstructure:"prompt"`
	History    string `mapstructure:"history"`
	HistoryMax int    `mapstructure:"history_max"`
}

// SetDefaults registers the known keys, which also lets environment
// overrides reach keys that no config file mentions. repl.history has no
// default here so a bound flag default can supply one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novadoc")

	v.SetDefault("storage.backend", "fs")
	v.SetDefault("storage.root", "./databases")
	v.SetDefault("storage.format", "json")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.region", "")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")

	v.SetDefault("repl.prompt", "novadoc> ")
	v.SetDefault("repl.history_max", 2000)
}

// LoadConfig reads the YAML file at path (which may be empty) over the
// defaults and NOVADOC_* environment variables.
func LoadConfig(path string) (*NovaDocConfig, error) {
	return LoadConfigWith(viper.New(), path)
}

// LoadConfigWith is LoadConfig on a caller-prepared viper instance, e.g. one
// with command-line flags already bound.
func LoadConfigWith(v *viper.Viper, path string) (*NovaDocConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix("NOVADOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaDocConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *NovaDocConfig) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "fs":
		if c.Storage.Root == "" {
			return fmt.Errorf("%w: storage.root is required for the fs backend", ErrInvalidConfig)
		}
	case "memory":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("%w: storage.s3.bucket is required for the s3 backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch strings.ToLower(c.Storage.Format) {
	case "json", "bson":
	default:
		return fmt.Errorf("%w: unknown storage.format %q", ErrInvalidConfig, c.Storage.Format)
	}
	if c.REPL.HistoryMax < 0 {
		return fmt.Errorf("%w: repl.history_max must not be negative", ErrInvalidConfig)
	}
	return nil
}
