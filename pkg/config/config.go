package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/session"
	"github.com/c9s/chartdesk/pkg/types"
)

type ServerConfig struct {
	Bind         string      `json:"bind" yaml:"bind"`
	AllowOrigins StringSlice `json:"allowOrigins" yaml:"allowOrigins"`

	// SessionTTL is how long an unused session is kept, e.g. "2h". Empty keeps sessions forever.
	SessionTTL string `json:"sessionTTL,omitempty" yaml:"sessionTTL,omitempty"`
}

// SessionTTLDuration parses SessionTTL, zero means sessions never expire.
func (c ServerConfig) SessionTTLDuration() (time.Duration, error) {
	if c.SessionTTL == "" {
		return 0, nil
	}

	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid session ttl %q", c.SessionTTL)
	}
	return ttl, nil
}

type ChartConfig struct {
	Width      int         `json:"width" yaml:"width"`
	Height     int         `json:"height" yaml:"height"`
	UpColor    string      `json:"upColor" yaml:"upColor"`
	DownColor  string      `json:"downColor" yaml:"downColor"`
	Mode       string      `json:"mode" yaml:"mode"`
	Indicators StringSlice `json:"indicators" yaml:"indicators"`
	MaxXTicks  int         `json:"maxXTicks,omitempty" yaml:"maxXTicks,omitempty"`
}

type LoggingConfig struct {
	// Formatter is "prefixed", "text" or "json"
	Formatter string `json:"formatter" yaml:"formatter"`

	// File enables the rotating log file when set
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Bind:         ":8080",
			AllowOrigins: []string{"*"},
			SessionTTL:   "2h",
		},
		Chart: ChartConfig{
			Width:      1200,
			Height:     600,
			UpColor:    "#22c55e",
			DownColor:  "#ef4444",
			Mode:       string(types.ChartModeCandlestick),
			Indicators: []string{string(types.IndicatorSMA20)},
			MaxXTicks:  10,
		},
		Logging: LoggingConfig{
			Formatter: "prefixed",
		},
	}
}

// Load reads the yaml config file over the defaults.
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
	}

	return Parse(content)
}

func Parse(content []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return errors.Errorf("invalid chart size %dx%d", c.Chart.Width, c.Chart.Height)
	}

	if _, err := c.Server.SessionTTLDuration(); err != nil {
		return err
	}

	if _, err := types.ParseChartMode(c.Chart.Mode); err != nil {
		return err
	}

	if _, err := c.Selection(); err != nil {
		return err
	}

	switch c.Logging.Formatter {
	case "", "prefixed", "text", "json":
	default:
		return errors.Errorf("unsupported log formatter %q", c.Logging.Formatter)
	}

	return nil
}

func (c *Config) Selection() (types.IndicatorSelection, error) {
	return types.ParseIndicatorSelection(strings.Join(c.Chart.Indicators, ","))
}

// ChartOptions converts the chart section into render options. Empty colors keep the defaults.
func (c *Config) ChartOptions() chartv1.Options {
	options := chartv1.DefaultOptions()
	if c.Chart.UpColor != "" {
		options.UpColor = drawing.ParseColor(c.Chart.UpColor)
	}
	if c.Chart.DownColor != "" {
		options.DownColor = drawing.ParseColor(c.Chart.DownColor)
	}
	if c.Chart.MaxXTicks > 0 {
		options.MaxXTicks = c.Chart.MaxXTicks
	}
	return options
}

// SessionOptions are the defaults of every session opened by the server.
func (c *Config) SessionOptions() (session.Options, error) {
	mode, err := types.ParseChartMode(c.Chart.Mode)
	if err != nil {
		return session.Options{}, err
	}

	selection, err := c.Selection()
	if err != nil {
		return session.Options{}, err
	}

	return session.Options{
		Width:     c.Chart.Width,
		Height:    c.Chart.Height,
		Mode:      mode,
		Selection: selection,
		Chart:     c.ChartOptions(),
	}, nil
}

// YAML dumps the config, used by the config subcommand.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	var enc = yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
