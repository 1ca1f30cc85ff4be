// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSysroot is returned when the configured sysroot is whitespace-only.
	ErrInvalidSysroot = errors.New("invalid sysroot path")
	// ErrInvalidTuple is the sentinel error wrapped by InvalidTupleError.
	ErrInvalidTuple = errors.New("invalid multiarch tuple")
)

type (
	// ColorScheme selects the terminal palette for rendered output.
	ColorScheme string

	// InvalidTupleError is returned when a multiarch tuple entry is not
	// usable. It wraps ErrInvalidTuple for errors.Is() compatibility.
	InvalidTupleError struct {
		Value string
	}

	// UIConfig controls presentation.
	UIConfig struct {
		// ColorScheme is "auto", "dark" or "light".
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables debug logging by default.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the root gfxprobe configuration.
	Config struct {
		// Sysroot is the root directory to probe. Defaults to "/".
		Sysroot string `mapstructure:"sysroot"`
		// MultiarchTuples are the Debian-style architecture tuples to
		// consider, e.g. "x86_64-linux-gnu".
		MultiarchTuples []string `mapstructure:"multiarch_tuples"`
		// HelpersPath is the directory holding the per-architecture
		// inspect-library helpers. Empty means $PATH.
		HelpersPath string `mapstructure:"helpers_path"`
		// SkipSlowChecks disables duplicate detection by default.
		SkipSlowChecks bool `mapstructure:"skip_slow_checks"`

		UI UIConfig `mapstructure:"ui"`
	}
)

func (e *InvalidTupleError) Error() string {
	return fmt.Sprintf("invalid multiarch tuple %q", e.Value)
}

func (e *InvalidTupleError) Unwrap() error {
	return ErrInvalidTuple
}

// IsValid reports whether the color scheme is one of the known values.
func (s ColorScheme) IsValid() bool {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	}
	return false
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		Sysroot: "/",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sysroot) == "" {
		return ErrInvalidSysroot
	}
	if !c.UI.ColorScheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	for _, tuple := range c.MultiarchTuples {
		// Tuples become path components and helper executable prefixes,
		// so a separator would escape both.
		if strings.TrimSpace(tuple) == "" || strings.ContainsAny(tuple, "/:") {
			return &InvalidTupleError{Value: tuple}
		}
	}
	return nil
}
