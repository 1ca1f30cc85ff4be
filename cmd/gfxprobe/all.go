// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gfxprobe/pkg/manifest"
)

// reportSection is one manifest family in the whole-system report.
type reportSection struct {
	key         string
	title       string
	descriptors []*manifest.Descriptor
}

// allReport is the JSON shape of the whole-system report, one member
// per manifest family.
type allReport struct {
	VulkanICDs           []reportEntry `json:"vulkan_icds"`
	VulkanExplicitLayers []reportEntry `json:"vulkan_explicit_layers"`
	VulkanImplicitLayers []reportEntry `json:"vulkan_implicit_layers"`
	EGLICDs              []reportEntry `json:"egl_icds"`
	EGLExternalPlatforms []reportEntry `json:"egl_external_platforms"`
	OpenXRRuntimes       []reportEntry `json:"openxr_runtimes"`
	OpenXR1Runtimes      []reportEntry `json:"openxr_1_runtimes"`
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List every manifest family at once",
	Long: `Run every discovery protocol and report all manifest families in one
pass: Vulkan ICDs and layers, EGL ICDs and external platforms, and
OpenXR runtimes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := buildLoader()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		sections := []reportSection{
			{"vulkan_icds", "Vulkan ICDs", l.VulkanICDs(ctx)},
			{"vulkan_explicit_layers", "Vulkan explicit layers", l.VulkanExplicitLayers(ctx)},
			{"vulkan_implicit_layers", "Vulkan implicit layers", l.VulkanImplicitLayers(ctx)},
			{"egl_icds", "EGL ICDs", l.EGLICDs(ctx)},
			{"egl_external_platforms", "EGL external platforms", l.EGLExternalPlatforms(ctx)},
			{"openxr_runtimes", "OpenXR runtimes", l.OpenXRRuntimes(ctx)},
			{"openxr_1_runtimes", "OpenXR 1 runtimes", l.OpenXR1Runtimes(ctx)},
		}
		return printAllReport(cmd.OutOrStdout(), sections)
	},
}

// printAllReport renders every section, either as styled text or as a
// single JSON object when --json is set.
func printAllReport(w io.Writer, sections []reportSection) error {
	if jsonOutput {
		report := allReport{}
		for _, s := range sections {
			entries := reportEntries(s.descriptors)
			switch s.key {
			case "vulkan_icds":
				report.VulkanICDs = entries
			case "vulkan_explicit_layers":
				report.VulkanExplicitLayers = entries
			case "vulkan_implicit_layers":
				report.VulkanImplicitLayers = entries
			case "egl_icds":
				report.EGLICDs = entries
			case "egl_external_platforms":
				report.EGLExternalPlatforms = entries
			case "openxr_runtimes":
				report.OpenXRRuntimes = entries
			case "openxr_1_runtimes":
				report.OpenXR1Runtimes = entries
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := printReport(w, s.title, s.descriptors); err != nil {
			return err
		}
	}
	return nil
}
