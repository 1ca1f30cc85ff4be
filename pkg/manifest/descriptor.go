// SPDX-License-Identifier: MPL-2.0

// Package manifest parses, validates and serializes the JSON descriptor
// files that advertise graphics and XR capability providers: Vulkan ICDs
// and layers, EGL ICDs and external platforms, and OpenXR runtimes.
//
// Parsing is tolerant. A broken manifest never aborts a scan;
// it becomes a Descriptor in an error state carrying a diagnostic and an
// Issues bitset, so diagnostic tooling can report why a module was
// rejected.
package manifest

import (
	"errors"
	"path"
	"strings"
)

// EnvVar is a single name/value pair from a layer's enable_environment or
// disable_environment member.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Extension is one entry of a layer's instance_extensions array.
type Extension struct {
	Name        string `json:"name"`
	SpecVersion string `json:"spec_version"`
}

// DeviceExtension is one entry of a layer's device_extensions array.
type DeviceExtension struct {
	Name        string   `json:"name"`
	SpecVersion string   `json:"spec_version"`
	Entrypoints []string `json:"entrypoints,omitempty"`
}

// ICDDetails holds the fields of an ICD-like manifest: Vulkan ICDs, EGL
// ICDs, EGL external platforms and OpenXR runtimes.
type ICDDetails struct {
	// LibraryPath is the library reference exactly as declared: an
	// absolute path, a path relative to the manifest, or a bare soname.
	LibraryPath string `json:"library_path"`
	// APIVersion is the implemented API version. Required for Vulkan
	// ICDs, synthesized for OpenXR runtimes, absent for EGL.
	APIVersion string `json:"api_version,omitempty"`
	// LibraryArch describes the architecture of the library. The values
	// allowed by the Vulkan specification are "32" and "64", but the
	// reference loader accepts anything, and so do we.
	LibraryArch string `json:"library_arch,omitempty"`
	// PortabilityDriver is true for Vulkan portability drivers, which
	// implement only a subset of the API.
	PortabilityDriver bool `json:"is_portability_driver,omitempty"`
}

// LayerDetails holds the fields of one Vulkan layer. Exactly one of
// LibraryPath and ComponentLayers is set: a meta-layer references other
// layers by name instead of a library.
type LayerDetails struct {
	Name                  string            `json:"name"`
	Type                  string            `json:"type"`
	LibraryPath           string            `json:"library_path,omitempty"`
	LibraryArch           string            `json:"library_arch,omitempty"`
	APIVersion            string            `json:"api_version"`
	ImplementationVersion string            `json:"implementation_version"`
	Description           string            `json:"description"`
	ComponentLayers       []string          `json:"component_layers,omitempty"`
	Functions             map[string]string `json:"functions,omitempty"`
	PreInstanceFunctions  map[string]string `json:"pre_instance_functions,omitempty"`
	InstanceExtensions    []Extension       `json:"instance_extensions,omitempty"`
	DeviceExtensions      []DeviceExtension `json:"device_extensions,omitempty"`
	EnableEnvironment     *EnvVar           `json:"enable_environment,omitempty"`
	DisableEnvironment    *EnvVar           `json:"disable_environment,omitempty"`
}

// Descriptor is the result of loading one entry from one manifest file.
//
// A Descriptor is either populated (ICD or Layer set, Err nil) or in an
// error state (Err set, details nil) — never both. Descriptors are value
// objects: nothing mutates them after parsing. Deduplication reports its
// findings separately and the loader merges them into copies.
type Descriptor struct {
	// Family identifies the discovery protocol this manifest follows.
	Family Family
	// JSONPath is the absolute path to the manifest, expressed as though
	// the sysroot it was found in was the root directory.
	JSONPath string
	// FileFormatVersion is the declared file_format_version, when one
	// was successfully read.
	FileFormatVersion string
	// Issues flags problems found while loading this descriptor.
	Issues Issues
	// Err is the diagnostic for an error-state descriptor.
	Err error

	// ICD is set for every family except VulkanLayer.
	ICD *ICDDetails
	// Layer is set for VulkanLayer.
	Layer *LayerDetails

	// raw is the original manifest text, retained so an unmodified
	// descriptor can be written back byte for byte.
	raw []byte
}

// CheckError returns nil if the manifest was loaded successfully, or the
// diagnostic explaining why it was not. It never dlopens anything.
func (d *Descriptor) CheckError() error {
	if d.Err != nil {
		return d.Err
	}
	if d.ICD == nil && d.Layer == nil {
		return errors.New("descriptor has no details")
	}
	return nil
}

// Name returns the layer name, or "" for ICD-like families and
// error-state descriptors.
func (d *Descriptor) Name() string {
	if d.Layer != nil {
		return d.Layer.Name
	}
	return ""
}

// LibraryPath returns the declared library reference, or "" if the
// descriptor is in an error state or is a meta-layer.
func (d *Descriptor) LibraryPath() string {
	switch {
	case d.ICD != nil:
		return d.ICD.LibraryPath
	case d.Layer != nil:
		return d.Layer.LibraryPath
	default:
		return ""
	}
}

// ResolveLibraryPath returns the string to hand to the platform loader
// for this descriptor's library:
//
//   - "" if there is no library reference (error state or meta-layer);
//   - the reference unchanged if it is absolute;
//   - the reference unchanged if it contains no "/" — a bare soname is
//     left to the platform's shared library search path, never resolved
//     against the filesystem here;
//   - otherwise the reference interpreted relative to the manifest's
//     directory, which is always absolute because JSONPath is.
func (d *Descriptor) ResolveLibraryPath() string {
	return ResolveLibraryPath(d.LibraryPath(), d.JSONPath)
}

// ResolveLibraryPath applies the library reference resolution rules shared
// by every manifest family. Pure computation, no filesystem access.
func ResolveLibraryPath(libraryPath, jsonPath string) string {
	if libraryPath == "" {
		return ""
	}
	if strings.HasPrefix(libraryPath, "/") {
		return libraryPath
	}
	if !strings.Contains(libraryPath, "/") {
		return libraryPath
	}
	return path.Join(path.Dir(jsonPath), libraryPath)
}

// ReplaceLibraryPath returns a copy of the descriptor with the library
// reference changed to libraryPath, e.g. to describe where the same
// library will appear inside a container. The retained original JSON is
// dropped so that serialization regenerates the manifest.
//
// Error-state descriptors, and layers without a library reference, are
// returned unchanged.
func (d *Descriptor) ReplaceLibraryPath(libraryPath string) *Descriptor {
	if d.Err != nil {
		return d
	}

	out := *d
	out.raw = nil

	switch {
	case d.ICD != nil:
		icd := *d.ICD
		icd.LibraryPath = libraryPath
		out.ICD = &icd
	case d.Layer != nil:
		if d.Layer.LibraryPath == "" {
			return d
		}
		layer := cloneLayer(d.Layer)
		layer.LibraryPath = libraryPath
		out.Layer = layer
	}

	return &out
}

// WithLibraryArch returns a copy of the descriptor with the architecture
// hint set, raising FileFormatVersion to the minimum version able to
// describe library_arch if the declared one is older (Vulkan ICD "1.0.1",
// layer "1.2.1"). Error-state descriptors are returned unchanged.
func (d *Descriptor) WithLibraryArch(arch string) *Descriptor {
	if d.Err != nil {
		return d
	}

	out := *d
	out.raw = nil

	var minVersion string
	switch {
	case d.ICD != nil:
		icd := *d.ICD
		icd.LibraryArch = arch
		out.ICD = &icd
		minVersion = "1.0.1"
	case d.Layer != nil:
		layer := cloneLayer(d.Layer)
		layer.LibraryArch = arch
		out.Layer = layer
		minVersion = "1.2.1"
	}

	if out.FileFormatVersion == "" || compareVersions(out.FileFormatVersion, minVersion) < 0 {
		out.FileFormatVersion = minVersion
	}
	return &out
}

// WithIssues returns a copy of the descriptor with extra issue flags
// merged in, or the receiver itself if there is nothing to add. Duplicate
// detection runs after parsing and reports its findings this way instead
// of mutating parsed descriptors.
func (d *Descriptor) WithIssues(extra Issues) *Descriptor {
	if extra == IssueNone {
		return d
	}
	out := *d
	out.Issues |= extra
	return &out
}

func cloneLayer(l *LayerDetails) *LayerDetails {
	out := *l
	out.ComponentLayers = append([]string(nil), l.ComponentLayers...)
	out.InstanceExtensions = append([]Extension(nil), l.InstanceExtensions...)
	if l.Functions != nil {
		out.Functions = make(map[string]string, len(l.Functions))
		for k, v := range l.Functions {
			out.Functions[k] = v
		}
	}
	if l.PreInstanceFunctions != nil {
		out.PreInstanceFunctions = make(map[string]string, len(l.PreInstanceFunctions))
		for k, v := range l.PreInstanceFunctions {
			out.PreInstanceFunctions[k] = v
		}
	}
	if l.DeviceExtensions != nil {
		out.DeviceExtensions = make([]DeviceExtension, len(l.DeviceExtensions))
		for i, de := range l.DeviceExtensions {
			out.DeviceExtensions[i] = de
			out.DeviceExtensions[i].Entrypoints = append([]string(nil), de.Entrypoints...)
		}
	}
	if l.EnableEnvironment != nil {
		env := *l.EnableEnvironment
		out.EnableEnvironment = &env
	}
	if l.DisableEnvironment != nil {
		env := *l.DisableEnvironment
		out.DisableEnvironment = &env
	}
	return &out
}
