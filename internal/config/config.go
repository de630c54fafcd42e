package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site" toml:"site"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
	API     APIConfig     `yaml:"api" toml:"api"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Theme   ThemeConfig   `yaml:"theme" toml:"theme"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" default:"info"`
}

type SiteConfig struct {
	Name    string `yaml:"name" toml:"name" default:"Legal Notice Desk"`
	Tagline string `yaml:"tagline" toml:"tagline" default:"Draft, save and send legal notices"`
}

type ServerConfig struct {
	Host string `yaml:"host" toml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" toml:"port" default:"12600"`
}

// APIConfig points at the remote legal-notice backend.
type APIConfig struct {
	BaseURL          string        `yaml:"base_url" toml:"base_url" default:"https://legal-ai-pro-1.onrender.com"`
	Timeout          time.Duration `yaml:"timeout" toml:"timeout" default:"60s"`
	TemplateCacheTTL time.Duration `yaml:"template_cache_ttl" toml:"template_cache_ttl" default:"10m"`
}

type UIConfig struct {
	HistoryLimit    int           `yaml:"history_limit" toml:"history_limit" default:"10"`
	BannerHideAfter time.Duration `yaml:"banner_hide_after" toml:"banner_hide_after" default:"5s"`
	PDFFilename     string        `yaml:"pdf_filename" toml:"pdf_filename" default:"Legal_Notice.pdf"`
}

type StorageConfig struct {
	Workspace   string   `yaml:"workspace" toml:"workspace" default:"memory"`
	SQLitePath  string   `yaml:"sqlite_path" toml:"sqlite_path" default:"./notice-desk.db"`
	// Compression is the codec for stored forms: zstd or gzip.
	Compression string   `yaml:"compression" toml:"compression" default:"zstd"`
	PDFArchive  string   `yaml:"pdf_archive" toml:"pdf_archive" default:"none"`
	ArchiveDir  string   `yaml:"archive_dir" toml:"archive_dir" default:"./archive"`
	S3          S3Config `yaml:"s3" toml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" toml:"bucket" default:""`
	Endpoint        string `yaml:"endpoint" toml:"endpoint" default:""`
	Region          string `yaml:"region" toml:"region" default:"auto"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id" default:""`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key" default:""`
}

type ThemeConfig struct {
	Default        string `yaml:"default" toml:"default" default:"light"`
	AllowSwitching bool   `yaml:"allow_switching" toml:"allow_switching" default:"true"`
}

var AppConfig *Config

// LoadConfig reads a YAML or TOML file (by extension) on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	AppConfig = config
	return nil
}

// ApplyEnv overrides file values with the process environment.
func ApplyEnv(config *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		config.Server.Port = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv(EnvS3Bucket); v != "" {
		config.Storage.S3.Bucket = v
	}
	if v := os.Getenv(EnvS3Endpoint); v != "" {
		config.Storage.S3.Endpoint = v
	}
	if v := os.Getenv(EnvS3AccessKeyID); v != "" {
		config.Storage.S3.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretAccessKey); v != "" {
		config.Storage.S3.SecretAccessKey = v
	}
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

var durationType = reflect.TypeOf(time.Duration(0))

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		if field.Type() == durationType {
			if val, err := time.ParseDuration(defaultValue); err == nil {
				field.SetInt(int64(val))
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
