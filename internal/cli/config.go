package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/plotkit/plotkit/pkg/plot"
)

// Config holds user defaults loaded from ~/.config/plotkit/config.toml.
// All fields are optional; flags override config values.
type Config struct {
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig supplies default render options.
type RenderConfig struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	MarkerRadius float64 `toml:"marker_radius"`
}

// ServeConfig supplies defaults for the serve command.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
}

// loadConfig reads the config file at path. A missing file yields a zero
// Config and no error; a malformed file is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyRenderConfig folds config defaults into opts, leaving anything the
// config omits at its current value.
func applyRenderConfig(cfg RenderConfig, opts *plot.Options) {
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	if cfg.MarkerRadius > 0 {
		opts.MarkerRadius = cfg.MarkerRadius
	}
}
