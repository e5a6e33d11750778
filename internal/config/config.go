package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Default locations, relative to the front-end project root.
const (
	DefaultBaseDir      = "public/assets/images/images"
	DefaultOutputFile   = "public/assets/extraItems.json"
	DefaultImageMapFile = "public/assets/imageMap.json"
	DefaultWebPrefix    = "/assets/images/images"
	DefaultWebPDir      = "public/assets/images/webp"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config holds all configurable paths and generator settings.
type Config struct {
	// Paths
	BaseDir      string `json:"base_dir"`
	OutputFile   string `json:"output_file"`
	ImageMapFile string `json:"image_map_file"`
	WebPrefix    string `json:"web_prefix"`
	WebPDir      string `json:"webp_dir"`

	// WebP settings
	ThumbSize int `json:"thumb_size"`
	Workers   int `json:"workers"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file and environment settings.
type Flags struct {
	BaseDir   string
	Output    string
	ThumbSize int
	Workers   int
}

// Resolve layers environment variables and CLI flags over the loaded file,
// then fills any empty fields with defaults. The output flag is applied by
// the caller since each command writes a different file.
func (c *Config) Resolve(flags Flags) error {
	// A missing .env is fine, real environment variables may be set instead
	_ = godotenv.Load()

	if err := c.applyEnv(); err != nil {
		return err
	}

	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.ThumbSize > 0 {
		c.ThumbSize = flags.ThumbSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir = DefaultBaseDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.ImageMapFile == "" {
		c.ImageMapFile = DefaultImageMapFile
	}
	if c.WebPrefix == "" {
		c.WebPrefix = DefaultWebPrefix
	}
	if c.WebPDir == "" {
		c.WebPDir = DefaultWebPDir
	}
	if c.ThumbSize < 0 {
		c.ThumbSize = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.BaseDir, "CATALOG_BASE_DIR")
	setString(&c.OutputFile, "CATALOG_OUTPUT_FILE")
	setString(&c.ImageMapFile, "CATALOG_IMAGE_MAP_FILE")
	setString(&c.WebPrefix, "CATALOG_WEB_PREFIX")
	setString(&c.WebPDir, "CATALOG_WEBP_DIR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if v, ok := os.LookupEnv("CATALOG_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CATALOG_WORKERS value: %w", err)
		}
		c.Workers = n
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Setup loads the optional config file and resolves it against flags.
func Setup(configFile string, flags Flags) (Config, error) {
	var cfg Config
	if configFile != "" {
		var err error
		cfg, err = Load(configFile)
		if err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Resolve(flags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
