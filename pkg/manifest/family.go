// SPDX-License-Identifier: MPL-2.0

package manifest

import "strings"

// Family identifies which vendor-defined discovery protocol a manifest
// belongs to. It is a closed enumeration: the parsing pipeline is generic
// over the small per-family protocol expressed by the methods below.
type Family int

const (
	// VulkanICD is a Vulkan installable client driver, discovered per the
	// Khronos Vulkan-Loader driver interface.
	VulkanICD Family = iota
	// VulkanLayer is a Vulkan explicit or implicit layer. A single layer
	// manifest may describe several layers.
	VulkanLayer
	// EGLICD is an EGL installable client driver, discovered per GLVND.
	EGLICD
	// EGLExternalPlatform is an EGL external platform module. Despite the
	// different role, its manifests use the same "ICD" top-level key.
	EGLExternalPlatform
	// OpenXR1Runtime is an OpenXR runtime restricted to the 1.0 manifest
	// format.
	OpenXR1Runtime
	// OpenXRRuntime is an OpenXR runtime, including 1.1-capable runtimes.
	OpenXRRuntime
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case VulkanICD:
		return "Vulkan ICD"
	case VulkanLayer:
		return "Vulkan layer"
	case EGLICD:
		return "EGL ICD"
	case EGLExternalPlatform:
		return "EGL external platform"
	case OpenXR1Runtime:
		return "OpenXR 1.0 runtime"
	case OpenXRRuntime:
		return "OpenXR runtime"
	default:
		return "unknown"
	}
}

// topLevelKey returns the JSON member that holds the family's payload.
// Vulkan layers are special-cased in the parser because they use either
// "layer" or "layers".
func (f Family) topLevelKey() string {
	switch f {
	case OpenXR1Runtime, OpenXRRuntime:
		return "runtime"
	case VulkanLayer:
		return "layer"
	default:
		// EGL external platforms have { "ICD": ... } in their JSON file,
		// even though you might have expected a different string.
		return "ICD"
	}
}

// supportsVersion reports whether file_format_version v is accepted for
// this family.
func (f Family) supportsVersion(v string) bool {
	switch f {
	case VulkanICD:
		// The compatibility rules for Vulkan ICDs are unclear upstream
		// (Vulkan-Loader#248 suggests the layer rules may also apply).
		// Stay conservative and require 1.0.x, the same rule as EGL.
		return strings.HasPrefix(v, "1.0.")
	case VulkanLayer:
		// 1.2.1 is the latest layer manifest version; forward
		// compatibility is not guaranteed.
		return compareVersions(v, "1.2.1") <= 0
	case EGLICD, EGLExternalPlatform:
		// All 1.0.x versions are officially backwards compatible with
		// 1.0.0. There is no public specification for external
		// platforms; assume the same.
		return strings.HasPrefix(v, "1.0.")
	case OpenXR1Runtime, OpenXRRuntime:
		// The OpenXR loader accepts exactly 1.0.0, nothing else.
		return v == "1.0.0"
	default:
		return false
	}
}
