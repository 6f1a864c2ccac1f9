// Package config loads foodwhere settings from an optional config file and
// FOODWHERE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FOODWHERE_STORAGE_DRIVER.
const EnvPrefix = "FOODWHERE"

// Storage drivers accepted in storage.driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBlob     = "blob"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Blob    BlobConfig    `mapstructure:"blob"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects the snapshot store.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory file sqlite postgres blob"`
	// Path is the JSON file for the file driver and the database for sqlite.
	// Empty selects the driver default.
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

// BlobConfig configures the object store behind the blob driver.
type BlobConfig struct {
	Driver string   `mapstructure:"driver" validate:"oneof=fs s3 memory"`
	Root   string   `mapstructure:"root"`
	Prefix string   `mapstructure:"prefix" validate:"required"`
	Keep   int      `mapstructure:"keep" validate:"gte=0"`
	S3     S3Config `mapstructure:"s3"`
}

// S3Config holds S3 / MinIO settings.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PathStyle       bool   `mapstructure:"path_style"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output" validate:"required"`
}

var defaults = map[string]any{
	"storage.driver":            DriverFile,
	"storage.path":              "",
	"storage.dsn":               "",
	"blob.driver":               "fs",
	"blob.root":                 "data/snapshots",
	"blob.prefix":               "snapshots",
	"blob.keep":                 0,
	"blob.s3.bucket":            "",
	"blob.s3.region":            "us-east-1",
	"blob.s3.endpoint":          "",
	"blob.s3.access_key_id":     "",
	"blob.s3.secret_access_key": "",
	"blob.s3.path_style":        false,
	"log.level":                 "warn",
	"log.format":                "console",
	"log.output":                "stderr",
}

// Load reads configuration. Priority, highest first: FOODWHERE_* environment
// variables, the config file, built-in defaults. An empty file means search
// for foodwhere.{yaml,json,toml} in the working directory and
// $HOME/.foodwhere; a missing file is not an error in that case.
func Load(file string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("foodwhere")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.foodwhere")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the cross-section rule that the s3
// blob driver needs a bucket.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %s", errorMessage(err))
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		if cfg.Storage.Driver == DriverBlob && cfg.Blob.Driver == "s3" && cfg.Blob.S3.Bucket == "" {
			sl.ReportError(cfg.Blob.S3.Bucket, "Blob.S3.Bucket", "Bucket", "required_with_s3", "")
		}
	}, Config{})
	return v
}

func errorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
		switch fe.ActualTag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "required", "required_if", "required_with_s3":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
