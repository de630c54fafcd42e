package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	SetLogger(logger)
}

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Site.Name != "Legal Notice Desk" {
			t.Errorf("Expected site name 'Legal Notice Desk', got %q", config.Site.Name)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host '0.0.0.0', got %q", config.Server.Host)
		}
		if config.Server.Port != "12600" {
			t.Errorf("Expected port '12600', got %q", config.Server.Port)
		}

		if config.API.BaseURL != "https://legal-ai-pro-1.onrender.com" {
			t.Errorf("Expected default API base URL, got %q", config.API.BaseURL)
		}
		if config.API.Timeout != 60*time.Second {
			t.Errorf("Expected API timeout 60s, got %s", config.API.Timeout)
		}
		if config.API.TemplateCacheTTL != 10*time.Minute {
			t.Errorf("Expected template cache TTL 10m, got %s", config.API.TemplateCacheTTL)
		}

		if config.UI.HistoryLimit != 10 {
			t.Errorf("Expected history limit 10, got %d", config.UI.HistoryLimit)
		}
		if config.UI.BannerHideAfter != 5*time.Second {
			t.Errorf("Expected banner hide delay 5s, got %s", config.UI.BannerHideAfter)
		}
		if config.UI.PDFFilename != "Legal_Notice.pdf" {
			t.Errorf("Expected PDF filename 'Legal_Notice.pdf', got %q", config.UI.PDFFilename)
		}

		if config.Storage.Workspace != "memory" {
			t.Errorf("Expected memory workspace store, got %q", config.Storage.Workspace)
		}
		if config.Storage.Compression != "zstd" {
			t.Errorf("Expected zstd compression, got %q", config.Storage.Compression)
		}
		if config.Storage.PDFArchive != "none" {
			t.Errorf("Expected pdf archive 'none', got %q", config.Storage.PDFArchive)
		}
		if config.Storage.S3.Region != "auto" {
			t.Errorf("Expected S3 region 'auto', got %q", config.Storage.S3.Region)
		}
		if config.Storage.S3.Bucket != "" {
			t.Errorf("Expected empty S3 bucket, got %q", config.Storage.S3.Bucket)
		}

		if config.Theme.Default != LightTheme {
			t.Errorf("Expected theme %q, got %q", LightTheme, config.Theme.Default)
		}
		if !config.Theme.AllowSwitching {
			t.Error("Expected theme switching to be enabled by default")
		}
		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField   string        `default:"test-string"`
			BoolField     bool          `default:"true"`
			IntField      int           `default:"42"`
			Float64Field  float64       `default:"3.14"`
			SliceField    []string      `default:"a,b,c"`
			DurationField time.Duration `default:"1m30s"`
			NoDefault     string
		}

		test := &TestStruct{}
		applyDefaults(test)

		if test.StringField != "test-string" {
			t.Errorf("Expected string field 'test-string', got %q", test.StringField)
		}
		if !test.BoolField {
			t.Error("Expected bool field to be true")
		}
		if test.IntField != 42 {
			t.Errorf("Expected int field 42, got %d", test.IntField)
		}
		if test.Float64Field != 3.14 {
			t.Errorf("Expected float64 field 3.14, got %f", test.Float64Field)
		}
		expectedSlice := []string{"a", "b", "c"}
		if !reflect.DeepEqual(test.SliceField, expectedSlice) {
			t.Errorf("Expected slice %v, got %v", expectedSlice, test.SliceField)
		}
		if test.DurationField != 90*time.Second {
			t.Errorf("Expected duration 1m30s, got %s", test.DurationField)
		}
		if test.NoDefault != "" {
			t.Errorf("Expected no default field to be empty, got %q", test.NoDefault)
		}
	})

	t.Run("Invalid default values", func(t *testing.T) {
		type InvalidStruct struct {
			BadBool     bool          `default:"not-a-bool"`
			BadInt      int           `default:"not-an-int"`
			BadDuration time.Duration `default:"soon"`
		}

		test := &InvalidStruct{}
		applyDefaults(test)

		if test.BadBool {
			t.Error("Expected invalid bool default to remain false")
		}
		if test.BadInt != 0 {
			t.Errorf("Expected invalid int default to remain 0, got %d", test.BadInt)
		}
		if test.BadDuration != 0 {
			t.Errorf("Expected invalid duration default to remain 0, got %s", test.BadDuration)
		}
	})

	t.Run("Non-struct input", func(t *testing.T) {
		stringVar := "test"
		applyDefaults(&stringVar)
		applyDefaults(stringVar)
		applyDefaults(42)
		applyDefaults(nil)
	})
}

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf(ErrWriteConfigContentFmt, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.ErrorLevel)
	SetLogger(logger)

	t.Run("Load non-existent config file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		err := LoadConfig("non-existent-config.yaml")
		if err != nil {
			t.Errorf("Expected no error for non-existent config file, got %v", err)
		}
		if AppConfig == nil {
			t.Fatal("Expected AppConfig to be set with defaults")
		}
		if AppConfig.UI.HistoryLimit != 10 {
			t.Errorf("Expected default history limit, got %d", AppConfig.UI.HistoryLimit)
		}
	})

	t.Run("Load valid YAML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeTempConfig(t, "config.yaml", `
site:
  name: "Chambers Desk"
server:
  port: "8080"
api:
  base_url: "http://127.0.0.1:8000"
  timeout: 15s
ui:
  history_limit: 25
storage:
  workspace: sqlite
`)

		if err := LoadConfig(path); err != nil {
			t.Fatalf("Expected no error loading valid config, got %v", err)
		}

		if AppConfig.Site.Name != "Chambers Desk" {
			t.Errorf("Expected site name 'Chambers Desk', got %q", AppConfig.Site.Name)
		}
		if AppConfig.Server.Port != "8080" {
			t.Errorf("Expected port '8080', got %q", AppConfig.Server.Port)
		}
		if AppConfig.API.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("Expected local API URL, got %q", AppConfig.API.BaseURL)
		}
		if AppConfig.API.Timeout != 15*time.Second {
			t.Errorf("Expected timeout 15s, got %s", AppConfig.API.Timeout)
		}
		if AppConfig.UI.HistoryLimit != 25 {
			t.Errorf("Expected history limit 25, got %d", AppConfig.UI.HistoryLimit)
		}
		if AppConfig.Storage.Workspace != "sqlite" {
			t.Errorf("Expected sqlite workspace, got %q", AppConfig.Storage.Workspace)
		}

		// Unspecified fields keep their defaults
		if AppConfig.UI.PDFFilename != "Legal_Notice.pdf" {
			t.Errorf("Expected default PDF filename, got %q", AppConfig.UI.PDFFilename)
		}
	})

	t.Run("Load valid TOML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeTempConfig(t, "config.toml", `
[api]
base_url = "http://backend:8000"
template_cache_ttl = "1m"

[storage]
pdf_archive = "fs"
archive_dir = "/var/lib/notices"
`)

		if err := LoadConfig(path); err != nil {
			t.Fatalf("Expected no error loading TOML config, got %v", err)
		}
		if AppConfig.API.BaseURL != "http://backend:8000" {
			t.Errorf("Expected backend URL, got %q", AppConfig.API.BaseURL)
		}
		if AppConfig.API.TemplateCacheTTL != time.Minute {
			t.Errorf("Expected template cache TTL 1m, got %s", AppConfig.API.TemplateCacheTTL)
		}
		if AppConfig.Storage.PDFArchive != "fs" {
			t.Errorf("Expected fs archive, got %q", AppConfig.Storage.PDFArchive)
		}
		if AppConfig.Storage.ArchiveDir != "/var/lib/notices" {
			t.Errorf("Expected archive dir, got %q", AppConfig.Storage.ArchiveDir)
		}
	})

	t.Run("Load invalid YAML file", func(t *testing.T) {
		originalAppConfig := AppConfig
		defer func() { AppConfig = originalAppConfig }()

		path := writeTempConfig(t, "broken.yaml", `
site:
  name: "Broken"
  invalid yaml syntax [
`)

		err := LoadConfig(path)
		if err == nil {
			t.Fatal("Expected error loading invalid config file")
		}
		if !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env-backend:9000")
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvS3Bucket, "notices")

	cfg := &Config{}
	ApplyDefaults(cfg)
	ApplyEnv(cfg)

	if cfg.API.BaseURL != "http://env-backend:9000" {
		t.Errorf("Expected env API URL, got %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("Expected env port, got %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.Storage.S3.Bucket != "notices" {
		t.Errorf("Expected env bucket, got %q", cfg.Storage.S3.Bucket)
	}
	if cfg.Storage.S3.Endpoint != "" {
		t.Errorf("Expected unset endpoint to stay empty, got %q", cfg.Storage.S3.Endpoint)
	}
}
