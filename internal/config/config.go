// Package config loads fsops settings from fsops.yaml, FSOPS_* environment
// variables and command line flags.
package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmgilman/go/fsops/bounded"
	"github.com/jmgilman/go/fsops/fs/billy"
	"github.com/jmgilman/go/fsops/fs/core"
	"github.com/jmgilman/go/fsops/fs/minio"
)

// Backend names a storage provider.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendMemory Backend = "memory"
	BackendMinIO  Backend = "minio"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. FSOPS_MINIO_BUCKET.
	EnvPrefix = "FSOPS"

	// FileName is the config file name searched for without extension.
	FileName = "fsops"
)

// Config holds the resolved settings.
type Config struct {
	Backend Backend `mapstructure:"backend" yaml:"backend"`
	Root    string  `mapstructure:"root" yaml:"root"`
	Decode  string  `mapstructure:"decode" yaml:"decode"`
	Log     Log     `mapstructure:"log" yaml:"log"`
	MinIO   MinIO   `mapstructure:"minio" yaml:"minio"`
}

// Log holds logging settings.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// MinIO holds settings for the minio backend.
type MinIO struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
}

// defaults are registered on every viper instance so environment variables
// resolve for every key.
var defaults = map[string]any{
	"backend":          string(BackendLocal),
	"root":             ".",
	"decode":           bounded.DecodeStrict.String(),
	"log.level":        "info",
	"minio.endpoint":   "",
	"minio.bucket":     "",
	"minio.access_key": "",
	"minio.secret_key": "",
	"minio.use_ssl":    false,
	"minio.prefix":     "",
}

// NewViper returns a viper instance with defaults, env binding and the
// config search path set up.
func NewViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// Load reads the config file into v and returns the decoded settings. An
// explicit file must exist; without one a missing fsops.yaml is not an
// error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Backend = Backend(strings.ToLower(string(cfg.Backend)))
	return &cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.Root == "" {
			return fmt.Errorf("root is required for the %s backend", c.Backend)
		}
	case BackendMemory:
	case BackendMinIO:
		if err := c.minioConfig().Validate(); err != nil {
			return fmt.Errorf("invalid minio settings: %w", err)
		}
	default:
		return fmt.Errorf("unknown backend %q (want local, memory or minio)", c.Backend)
	}

	if _, err := c.DecodePolicy(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// DecodePolicy parses the decode setting.
func (c *Config) DecodePolicy() (bounded.DecodePolicy, error) {
	return bounded.ParseDecodePolicy(c.Decode)
}

// LogLevel parses the log.level setting.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return l, nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.MinIO.SecretKey != "" {
		out.MinIO.SecretKey = "********"
	}
	return out
}

// Open builds the filesystem the settings describe. The minio backend
// issues its requests with ctx.
func (c *Config) Open(ctx context.Context) (core.FS, error) {
	switch c.Backend {
	case BackendLocal:
		return billy.NewLocal(billy.WithRoot(c.Root)), nil
	case BackendMemory:
		return billy.NewMemory(), nil
	case BackendMinIO:
		fsys, err := minio.New(c.minioConfig())
		if err != nil {
			return nil, err
		}
		return fsys.WithContext(ctx), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func (c *Config) minioConfig() minio.Config {
	return minio.Config{
		Endpoint:  c.MinIO.Endpoint,
		Bucket:    c.MinIO.Bucket,
		AccessKey: c.MinIO.AccessKey,
		SecretKey: c.MinIO.SecretKey,
		UseSSL:    c.MinIO.UseSSL,
		Prefix:    c.MinIO.Prefix,
	}
}
