package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"podder.dev/internal/render"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Upload  UploadConfig  `yaml:"upload"`
	Resume  ResumeConfig  `yaml:"resume"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig holds on-disk locations
type StorageConfig struct {
	// DataPath holds portfolio.json and projects.json
	DataPath string `yaml:"data_path"`
	// StaticDir is served under /static
	StaticDir string `yaml:"static_dir"`
	// UploadDir receives uploaded images; it should live inside StaticDir
	UploadDir string `yaml:"upload_dir"`
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxBytes   int64    `yaml:"max_bytes"`
	Extensions []string `yaml:"extensions"`
}

// ResumeConfig holds resume appearance settings
type ResumeConfig struct {
	AccentColor string `yaml:"accent_color"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			DataPath:  "data",
			StaticDir: "static",
			UploadDir: "static/uploads",
		},
		Upload: UploadConfig{
			MaxBytes:   16 << 20,
			Extensions: []string{"png", "jpg", "jpeg", "gif", "webp"},
		},
		Resume: ResumeConfig{
			AccentColor: render.DefaultAccent,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (skipped when empty) on top of the
// defaults, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"SERVER_ADDR":         &c.Server.Addr,
		"DATA_PATH":           &c.Storage.DataPath,
		"STATIC_DIR":          &c.Storage.StaticDir,
		"UPLOAD_DIR":          &c.Storage.UploadDir,
		"LOG_LEVEL":           &c.Log.Level,
		"RESUME_ACCENT_COLOR": &c.Resume.AccentColor,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// Validate checks that required settings are present and well formed
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Storage.DataPath == "" {
		errs = append(errs, errors.New("storage.data_path is required"))
	}
	if c.Storage.UploadDir == "" {
		errs = append(errs, errors.New("storage.upload_dir is required"))
	}
	if c.Upload.MaxBytes < 0 {
		errs = append(errs, errors.New("upload.max_bytes must not be negative"))
	}
	if _, err := render.ParseHexColor(c.Resume.AccentColor); err != nil {
		errs = append(errs, fmt.Errorf("resume.accent_color: %w", err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

// Accent returns the parsed resume accent color
func (c *Config) Accent() render.Color {
	color, err := render.ParseHexColor(c.Resume.AccentColor)
	if err != nil {
		color, _ = render.ParseHexColor(render.DefaultAccent)
	}
	return color
}

// Renderer builds the resume renderer. The page is always A4.
func (c *Config) Renderer(creator string) *render.Renderer {
	return render.New(
		render.WithPage(render.DefaultPage()),
		render.WithStyles(render.DefaultStyles(c.Accent())),
		render.WithCreator(creator),
	)
}
