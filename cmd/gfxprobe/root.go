// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gfxprobe.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gfxprobe/internal/config"
	"gfxprobe/internal/inspect"
	"gfxprobe/internal/issue"
	"gfxprobe/pkg/loader"
	"gfxprobe/pkg/sysroot"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// sysrootPath is the root directory to probe
	sysrootPath string
	// multiarchTuples are the architecture tuples to consider
	multiarchTuples []string
	// helpersPath is the directory holding the inspect-library helpers
	helpersPath string
	// skipSlowChecks disables duplicate detection
	skipSlowChecks bool
	// jsonOutput switches the report to machine-readable JSON
	jsonOutput bool

	// cfg is the loaded configuration, filled by initRootConfig
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "gfxprobe",
		Short: "Inspect graphics and XR driver manifests",
		Long: TitleStyle.Render("gfxprobe") + SubtitleStyle.Render(" - Inspect graphics and XR driver manifests") + `

gfxprobe discovers the JSON manifests that Vulkan, GLVND and OpenXR
loaders would use: driver ICDs, Vulkan layers, EGL external platforms
and OpenXR runtimes. It follows each loader's search protocol against
the live system or any sysroot, and reports broken or duplicated
manifests instead of silently skipping them.

` + SubtitleStyle.Render("Examples:") + `
  gfxprobe vulkan icds                 List Vulkan driver manifests
  gfxprobe vulkan layers --implicit    List implicit Vulkan layers
  gfxprobe egl icds --sysroot /srv/rt  Probe a container root
  gfxprobe openxr runtimes --json      Machine-readable OpenXR report`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gfxprobe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sysrootPath, "sysroot", "", "root directory to probe (default \"/\")")
	rootCmd.PersistentFlags().StringArrayVar(&multiarchTuples, "arch", nil, "multiarch tuple to consider, e.g. x86_64-linux-gnu (repeatable)")
	rootCmd.PersistentFlags().StringVar(&helpersPath, "helpers-path", "", "directory holding the <tuple>-inspect-library helpers")
	rootCmd.PersistentFlags().BoolVar(&skipSlowChecks, "skip-slow-checks", false, "skip duplicate detection")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(vulkanCmd)
	rootCmd.AddCommand(eglCmd)
	rootCmd.AddCommand(openxrCmd)
	rootCmd.AddCommand(allCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// buildLoader assembles a Loader from flags, falling back to the config
// file for anything not given on the command line.
func buildLoader() (*loader.Loader, error) {
	root := sysrootPath
	if root == "" {
		root = cfg.Sysroot
	}

	var sys sysroot.Sysroot
	if root == "" || root == "/" {
		sys = sysroot.Direct()
	} else {
		var err error
		sys, err = sysroot.New(root)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("open sysroot").
				WithResource(root).
				WithSuggestion("Pass --sysroot pointing at an extracted root filesystem").
				Wrap(err).
				BuildError()
		}
	}

	tuples := multiarchTuples
	if len(tuples) == 0 {
		tuples = cfg.MultiarchTuples
	}
	helpers := helpersPath
	if helpers == "" {
		helpers = cfg.HelpersPath
	}

	return loader.New(loader.Options{
		Sysroot:         sys,
		MultiarchTuples: tuples,
		Canonicalizer:   &inspect.Helper{HelpersPath: helpers},
		SkipSlowChecks:  skipSlowChecks || cfg.SkipSlowChecks,
		Logger:          log.Default(),
	}), nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
