// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"

	"gfxprobe/pkg/manifest"
)

// Environment variables recognized by the Vulkan loader.
const (
	envVulkanDriverFiles    = "VK_DRIVER_FILES"
	envVulkanICDFilenames   = "VK_ICD_FILENAMES"
	envVulkanAddDriverFiles = "VK_ADD_DRIVER_FILES"
	envVulkanLayerPath      = "VK_LAYER_PATH"
	envVulkanAddLayerPath   = "VK_ADD_LAYER_PATH"
)

// VulkanICDs lists Vulkan driver manifests, most important first.
//
// VK_DRIVER_FILES (or its deprecated spelling VK_ICD_FILENAMES) names an
// explicit colon-separated list of manifest files and replaces the
// directory search entirely. Otherwise VK_ADD_DRIVER_FILES may name
// extra manifest files to consider before the standard search path.
func (l *Loader) VulkanICDs(ctx context.Context) []*manifest.Descriptor {
	override, ok := l.env.Lookup(envVulkanDriverFiles)
	if !ok {
		override, ok = l.env.Lookup(envVulkanICDFilenames)
	}
	if ok {
		return l.finish(ctx, l.loadFiles(manifest.VulkanICD, splitFileList(override)))
	}

	var out []*manifest.Descriptor
	if add, ok := l.env.Lookup(envVulkanAddDriverFiles); ok {
		out = l.loadFiles(manifest.VulkanICD, splitFileList(add))
	}
	out = append(out, l.scanDirs(manifest.VulkanICD, l.vulkanSearchPaths(vulkanICDSuffix))...)
	return l.finish(ctx, out)
}

// VulkanExplicitLayers lists explicit Vulkan layer manifests, most
// important first. VK_LAYER_PATH names a colon-separated list of
// directories replacing the search path; otherwise VK_ADD_LAYER_PATH
// names directories to scan before it.
func (l *Loader) VulkanExplicitLayers(ctx context.Context) []*manifest.Descriptor {
	if override, ok := l.env.Lookup(envVulkanLayerPath); ok {
		return l.finish(ctx, l.scanDirs(manifest.VulkanLayer, splitFileList(override)))
	}

	var out []*manifest.Descriptor
	if add, ok := l.env.Lookup(envVulkanAddLayerPath); ok {
		out = l.scanDirs(manifest.VulkanLayer, splitFileList(add))
	}
	out = append(out, l.scanDirs(manifest.VulkanLayer, l.vulkanSearchPaths(vulkanExplicitLayerSuffix))...)
	return l.finish(ctx, out)
}

// VulkanImplicitLayers lists implicit Vulkan layer manifests, most
// important first. The loader deliberately ignores VK_LAYER_PATH and
// VK_ADD_LAYER_PATH here, so an environment override cannot hide an
// implicit layer the platform considers mandatory.
func (l *Loader) VulkanImplicitLayers(ctx context.Context) []*manifest.Descriptor {
	return l.finish(ctx, l.scanDirs(manifest.VulkanLayer, l.vulkanSearchPaths(vulkanImplicitLayerSuffix)))
}
