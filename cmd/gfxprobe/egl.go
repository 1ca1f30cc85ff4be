// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	eglCmd = &cobra.Command{
		Use:   "egl",
		Short: "Inspect EGL driver and external platform manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	eglICDsCmd = &cobra.Command{
		Use:   "icds",
		Short: "List EGL driver (GLVND vendor) manifests",
		Long: `List EGL vendor manifests following GLVND's search rules, most
important first. __EGL_VENDOR_LIBRARY_FILENAMES names manifests
directly; __EGL_VENDOR_LIBRARY_DIRS replaces the search directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLoader()
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), "EGL ICDs", l.EGLICDs(cmd.Context()))
		},
	}

	eglPlatformsCmd = &cobra.Command{
		Use:   "platforms",
		Short: "List EGL external platform manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLoader()
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), "EGL external platforms", l.EGLExternalPlatforms(cmd.Context()))
		},
	}
)

func init() {
	eglCmd.AddCommand(eglICDsCmd)
	eglCmd.AddCommand(eglPlatformsCmd)
}
