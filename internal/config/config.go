// Package config loads harness settings from a TOML file, MOVEBENCH_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"movebench/internal/report"
)

const (
	DefaultBaselineSize = 536870912
	DefaultDemoSize     = 1073741824

	EnvPrefix = "MOVEBENCH"
)

// Keys shared by flags and environment variables.
const (
	KeyBaselineSize = "baseline-size"
	KeyDemoSize     = "demo-size"
	KeyOutput       = "output"
	KeyMetricsFile  = "metrics-file"
	KeySkipDemo     = "skip-demo"
	KeyFill         = "fill"
	KeyMemoryCheck  = "memory-check"
)

var (
	ErrInvalidSize = errors.New("config: size must not be negative")
	ErrUnknownKey  = errors.New("config: unknown key")
)

type Config struct {
	BaselineSize int    // Element count used for every step of the comparison
	DemoSize     int    // Element count for the closing copy-vs-transfer illustration
	Output       string // Report format: text, table, json or yaml
	MetricsFile  string // Write step timings in Prometheus text format here (disabled if empty)
	SkipDemo     bool   // True to skip the closing illustration
	Fill         bool   // Write a pattern into every constructed buffer
	MemoryCheck  bool   // Warn when available memory is below the estimated peak
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaselineSize: DefaultBaselineSize,
		DemoSize:     DefaultDemoSize,
		Output:       string(report.Text),
		MemoryCheck:  true,
	}
}

// RegisterFlags adds one flag per key to fs, with defaults taken from Default.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(KeyBaselineSize, d.BaselineSize, "element count used throughout the comparison")
	fs.Int(KeyDemoSize, d.DemoSize, "element count for the copy-vs-transfer illustration")
	fs.StringP(KeyOutput, "o", d.Output, "output format: text, table, json or yaml")
	fs.String(KeyMetricsFile, d.MetricsFile, "write step timings in Prometheus text format to this file")
	fs.Bool(KeySkipDemo, d.SkipDemo, "skip the copy-vs-transfer illustration")
	fs.Bool(KeyFill, d.Fill, "write a pattern into every constructed buffer")
	fs.Bool(KeyMemoryCheck, d.MemoryCheck, "warn when available memory is below the estimated peak")
}

// Load builds a Config from defaults, the TOML file at path (skipped if
// empty), the environment and any flag in flags that was set explicitly.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%w in %s: %v", ErrUnknownKey, path, undecoded)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if v.IsSet(KeyBaselineSize) {
		cfg.BaselineSize = v.GetInt(KeyBaselineSize)
	}
	if v.IsSet(KeyDemoSize) {
		cfg.DemoSize = v.GetInt(KeyDemoSize)
	}
	if v.IsSet(KeyOutput) {
		cfg.Output = v.GetString(KeyOutput)
	}
	if v.IsSet(KeyMetricsFile) {
		cfg.MetricsFile = v.GetString(KeyMetricsFile)
	}
	if v.IsSet(KeySkipDemo) {
		cfg.SkipDemo = v.GetBool(KeySkipDemo)
	}
	if v.IsSet(KeyFill) {
		cfg.Fill = v.GetBool(KeyFill)
	}
	if v.IsSet(KeyMemoryCheck) {
		cfg.MemoryCheck = v.GetBool(KeyMemoryCheck)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.BaselineSize < 0 {
		return fmt.Errorf("%w: BaselineSize=%d", ErrInvalidSize, c.BaselineSize)
	}
	if c.DemoSize < 0 {
		return fmt.Errorf("%w: DemoSize=%d", ErrInvalidSize, c.DemoSize)
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		return err
	}
	return nil
}

// Format returns the parsed output format. It assumes Validate passed.
func (c Config) Format() report.Format {
	f, _ := report.ParseFormat(c.Output)
	return f
}

// Encode writes c as TOML in the layout Load accepts.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
