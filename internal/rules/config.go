package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/luismascotto/vtt2srt/internal/model"
	"github.com/luismascotto/vtt2srt/internal/textfile"
)

// DefaultPath is read from the working directory when no --config is given.
const DefaultPath = "vtt2srt.toml"

// Config captures conversion settings.
// Mode: "clean" collapses blank lines and drops stale cue numbers, "legacy" only numbers cues.
// WriteFallback: when the .srt next to the input cannot be written, write it to the working directory instead.
// ReviewWidth, PreviewCues: size of the --review viewport and how many cues it shows.
type Config struct {
	Mode          string `toml:"mode"`
	Encoding      string `toml:"encoding"`
	Recursive     bool   `toml:"recursive"`
	WriteFallback bool   `toml:"write_fallback"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	ReviewWidth   int    `toml:"review_width"`
	PreviewCues   int    `toml:"preview_cues"`

	LoadedFromFile bool `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode:          model.ModeClean.String(),
		Encoding:      textfile.DefaultEncoding,
		WriteFallback: true,
		LogLevel:      "info",
		LogFormat:     "console",
		ReviewWidth:   100,
		PreviewCues:   8,
	}
}

// Load returns defaults overlaid with the TOML file at path. A missing file
// is not an error unless the path was given explicitly.
func Load(path string) (Config, error) {
	conf := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &conf); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		conf.LoadedFromFile = true
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	conf.normalize()
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Encoding = strings.TrimSpace(c.Encoding)
	if c.Encoding == "" {
		c.Encoding = textfile.DefaultEncoding
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.ReviewWidth <= 0 {
		c.ReviewWidth = Default().ReviewWidth
	}
	if c.PreviewCues <= 0 {
		c.PreviewCues = Default().PreviewCues
	}
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if _, err := model.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config mode: %w", err)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config log_format: unsupported value %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config log_level: unsupported value %q", c.LogLevel)
	}
	return nil
}

// ParsedMode returns Mode as a model.Mode; Validate guarantees it parses.
func (c Config) ParsedMode() model.Mode {
	mode, _ := model.ParseMode(c.Mode)
	return mode
}
