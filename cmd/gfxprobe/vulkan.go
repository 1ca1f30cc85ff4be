// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// implicitLayers switches `vulkan layers` to the implicit layer search.
	implicitLayers bool

	vulkanCmd = &cobra.Command{
		Use:   "vulkan",
		Short: "Inspect Vulkan driver and layer manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	vulkanICDsCmd = &cobra.Command{
		Use:   "icds",
		Short: "List Vulkan driver (ICD) manifests",
		Long: `List Vulkan driver (ICD) manifests in the order the Vulkan loader
would consider them, most important first.

VK_DRIVER_FILES (or the deprecated VK_ICD_FILENAMES) replaces the
search entirely; VK_ADD_DRIVER_FILES prepends extra manifests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLoader()
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), "Vulkan ICDs", l.VulkanICDs(cmd.Context()))
		},
	}

	vulkanLayersCmd = &cobra.Command{
		Use:   "layers",
		Short: "List Vulkan layer manifests",
		Long: `List explicit Vulkan layer manifests, or implicit ones with
--implicit. Implicit layers ignore VK_LAYER_PATH and VK_ADD_LAYER_PATH,
matching the loader.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLoader()
			if err != nil {
				return err
			}
			if implicitLayers {
				return printReport(cmd.OutOrStdout(), "Vulkan implicit layers", l.VulkanImplicitLayers(cmd.Context()))
			}
			return printReport(cmd.OutOrStdout(), "Vulkan explicit layers", l.VulkanExplicitLayers(cmd.Context()))
		},
	}
)

func init() {
	vulkanLayersCmd.Flags().BoolVar(&implicitLayers, "implicit", false, "list implicit layers instead of explicit ones")

	vulkanCmd.AddCommand(vulkanICDsCmd)
	vulkanCmd.AddCommand(vulkanLayersCmd)
}
