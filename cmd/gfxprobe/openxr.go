// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	openxrCmd = &cobra.Command{
		Use:   "openxr",
		Short: "Inspect OpenXR runtime manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// openxrV1Only restricts the listing to the major version 1 family
	openxrV1Only bool

	openxrRuntimesCmd = &cobra.Command{
		Use:   "runtimes",
		Short: "List OpenXR runtime manifests",
		Long: `List OpenXR runtime manifests, most important first. With --v1 the
listing is restricted to the major version 1 runtime family.
XR_RUNTIME_JSON overrides the search with a single manifest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLoader()
			if err != nil {
				return err
			}
			if openxrV1Only {
				return printReport(cmd.OutOrStdout(), "OpenXR 1 runtimes", l.OpenXR1Runtimes(cmd.Context()))
			}
			return printReport(cmd.OutOrStdout(), "OpenXR runtimes", l.OpenXRRuntimes(cmd.Context()))
		},
	}
)

func init() {
	openxrRuntimesCmd.Flags().BoolVar(&openxrV1Only, "v1", false, "restrict to major version 1 runtimes")
	openxrCmd.AddCommand(openxrRuntimesCmd)
}
