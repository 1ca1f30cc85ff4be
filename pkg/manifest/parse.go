// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"gfxprobe/pkg/sysroot"
)

// maxManifestSize is the largest manifest we are willing to parse. Real
// manifests are a few hundred bytes; anything in the megabytes is either
// corrupt or not a manifest at all.
const maxManifestSize = 16 << 20

// Load reads and parses one manifest file from the sysroot. jsonPath is
// interpreted as though the sysroot was the root directory.
//
// The returned slice is never empty: a file that cannot be read or parsed
// yields one error-state descriptor, and a layer manifest using the
// "layers" array yields one descriptor per entry.
func Load(fam Family, sys sysroot.Sysroot, jsonPath string) []*Descriptor {
	data, err := sys.Load(jsonPath)
	if err != nil {
		return []*Descriptor{errorDescriptor(fam, jsonPath, "", IssueCannotLoad,
			fmt.Errorf("loading %q: %w", jsonPath, err))}
	}
	return Parse(fam, jsonPath, data)
}

// Parse parses the contents of one manifest file. See Load.
func Parse(fam Family, jsonPath string, data []byte) []*Descriptor {
	fail := func(err error) []*Descriptor {
		return []*Descriptor{errorDescriptor(fam, jsonPath, "", IssueCannotLoad, err)}
	}

	if len(data) > maxManifestSize {
		return fail(fmt.Errorf("%q is implausibly large (%d bytes)", jsonPath, len(data)))
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return fail(fmt.Errorf("%q contains an embedded NUL byte", jsonPath))
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fail(fmt.Errorf("%q is not a JSON object: %w", jsonPath, err))
	}

	ffvRaw, ok := top["file_format_version"]
	if !ok {
		return fail(fmt.Errorf("%q does not declare file_format_version", jsonPath))
	}
	ffv, ok := asString(ffvRaw)
	if !ok {
		return fail(fmt.Errorf("%q: file_format_version is not a string", jsonPath))
	}

	if !fam.supportsVersion(ffv) {
		return []*Descriptor{errorDescriptor(fam, jsonPath, ffv, IssueUnsupported,
			fmt.Errorf("%q: file format version %q is not supported for %v", jsonPath, ffv, fam))}
	}

	if fam == VulkanLayer {
		return parseLayers(jsonPath, ffv, top, data)
	}
	return []*Descriptor{parseICD(fam, jsonPath, ffv, top, data)}
}

func errorDescriptor(fam Family, jsonPath, ffv string, issues Issues, err error) *Descriptor {
	return &Descriptor{
		Family:            fam,
		JSONPath:          jsonPath,
		FileFormatVersion: ffv,
		Issues:            issues,
		Err:               err,
	}
}

// parseICD handles every family with a single library per manifest:
// Vulkan ICDs, EGL ICDs, EGL external platforms and OpenXR runtimes.
func parseICD(fam Family, jsonPath, ffv string, top map[string]json.RawMessage, data []byte) *Descriptor {
	key := fam.topLevelKey()

	fail := func(err error) *Descriptor {
		return errorDescriptor(fam, jsonPath, ffv, IssueCannotLoad, err)
	}

	raw, ok := top[key]
	if !ok {
		return fail(fmt.Errorf("%q has no %q member", jsonPath, key))
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fail(fmt.Errorf("%q: %q is not an object: %w", jsonPath, key, err))
	}

	details := &ICDDetails{}
	issues := IssueNone

	details.LibraryPath, ok = asString(fields["library_path"])
	if !ok {
		return fail(fmt.Errorf("%q: %s.library_path is missing or not a string", jsonPath, key))
	}

	switch fam {
	case VulkanICD:
		details.APIVersion, ok = asString(fields["api_version"])
		if !ok {
			return fail(fmt.Errorf("%q: %s.api_version is missing or not a string", jsonPath, key))
		}
		if arch, ok := asString(fields["library_arch"]); ok {
			details.LibraryArch = arch
		}
		if raw, ok := fields["is_portability_driver"]; ok {
			var portability bool
			if err := json.Unmarshal(raw, &portability); err != nil {
				return fail(fmt.Errorf("%q: %s.is_portability_driver is not a boolean", jsonPath, key))
			}
			details.PortabilityDriver = portability
			if portability {
				issues |= IssueAPISubset
			}
		}

	case OpenXRRuntime:
		// The OpenXR manifest format has no api_version member, but
		// this family reports the major version the loader implies.
		details.APIVersion = "1"
	}

	return &Descriptor{
		Family:            fam,
		JSONPath:          jsonPath,
		FileFormatVersion: ffv,
		Issues:            issues,
		ICD:               details,
		raw:               data,
	}
}

// parseLayers handles Vulkan layer manifests, which describe either one
// layer under "layer" or several under "layers".
func parseLayers(jsonPath, ffv string, top map[string]json.RawMessage, data []byte) []*Descriptor {
	single, hasSingle := top["layer"]
	multi, hasMulti := top["layers"]

	switch {
	case hasSingle && hasMulti:
		return []*Descriptor{errorDescriptor(VulkanLayer, jsonPath, ffv, IssueCannotLoad,
			fmt.Errorf("%q has both \"layer\" and \"layers\"", jsonPath))}
	case hasSingle:
		return []*Descriptor{parseLayer(jsonPath, ffv, single, data)}
	case hasMulti:
		var entries []json.RawMessage
		if err := json.Unmarshal(multi, &entries); err != nil {
			return []*Descriptor{errorDescriptor(VulkanLayer, jsonPath, ffv, IssueCannotLoad,
				fmt.Errorf("%q: \"layers\" is not an array: %w", jsonPath, err))}
		}
		if len(entries) == 0 {
			return []*Descriptor{errorDescriptor(VulkanLayer, jsonPath, ffv, IssueCannotLoad,
				fmt.Errorf("%q: \"layers\" is empty", jsonPath))}
		}
		out := make([]*Descriptor, 0, len(entries))
		for _, entry := range entries {
			out = append(out, parseLayer(jsonPath, ffv, entry, data))
		}
		return out
	default:
		return []*Descriptor{errorDescriptor(VulkanLayer, jsonPath, ffv, IssueCannotLoad,
			fmt.Errorf("%q has neither \"layer\" nor \"layers\"", jsonPath))}
	}
}

func parseLayer(jsonPath, ffv string, raw json.RawMessage, data []byte) *Descriptor {
	fail := func(err error) *Descriptor {
		return errorDescriptor(VulkanLayer, jsonPath, ffv, IssueCannotLoad, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fail(fmt.Errorf("%q: layer entry is not an object: %w", jsonPath, err))
	}

	layer := &LayerDetails{}
	var ok bool

	for _, req := range []struct {
		name string
		dest *string
	}{
		{"name", &layer.Name},
		{"type", &layer.Type},
		{"api_version", &layer.APIVersion},
		{"implementation_version", &layer.ImplementationVersion},
		{"description", &layer.Description},
	} {
		if *req.dest, ok = asString(fields[req.name]); !ok {
			return fail(fmt.Errorf("%q: layer %q is missing or not a string", jsonPath, req.name))
		}
	}

	if path, ok := asString(fields["library_path"]); ok {
		layer.LibraryPath = path
	}
	if raw, ok := fields["component_layers"]; ok {
		if err := json.Unmarshal(raw, &layer.ComponentLayers); err != nil {
			return fail(fmt.Errorf("%q: layer component_layers is not an array of strings", jsonPath))
		}
	}
	// A normal layer has a library, a meta-layer has component layers.
	// There is no third kind.
	if (layer.LibraryPath == "") == (len(layer.ComponentLayers) == 0) {
		return fail(fmt.Errorf("%q: layer must have exactly one of library_path and component_layers", jsonPath))
	}

	if arch, ok := asString(fields["library_arch"]); ok {
		layer.LibraryArch = arch
	}

	for _, m := range []struct {
		name string
		dest *map[string]string
	}{
		{"functions", &layer.Functions},
		{"pre_instance_functions", &layer.PreInstanceFunctions},
	} {
		raw, ok := fields[m.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, m.dest); err != nil {
			return fail(fmt.Errorf("%q: layer %s is not an object of strings", jsonPath, m.name))
		}
	}

	layer.InstanceExtensions = parseInstanceExtensions(jsonPath, fields["instance_extensions"])
	layer.DeviceExtensions = parseDeviceExtensions(jsonPath, fields["device_extensions"])

	layer.EnableEnvironment = parseEnvVar(jsonPath, "enable_environment", fields["enable_environment"])
	layer.DisableEnvironment = parseEnvVar(jsonPath, "disable_environment", fields["disable_environment"])

	return &Descriptor{
		Family:            VulkanLayer,
		JSONPath:          jsonPath,
		FileFormatVersion: ffv,
		Layer:             layer,
		raw:               data,
	}
}

// parseInstanceExtensions extracts the valid entries of an
// instance_extensions array. Entries missing a name or spec_version are
// skipped, matching the tolerance of the reference Vulkan loader.
func parseInstanceExtensions(jsonPath string, raw json.RawMessage) []Extension {
	if raw == nil {
		return nil
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Debug("ignoring malformed instance_extensions", "path", jsonPath, "error", err)
		return nil
	}
	var out []Extension
	for _, entry := range entries {
		name, okName := asString(entry["name"])
		spec, okSpec := asString(entry["spec_version"])
		if !okName || !okSpec {
			log.Debug("skipping invalid instance extension entry", "path", jsonPath)
			continue
		}
		out = append(out, Extension{Name: name, SpecVersion: spec})
	}
	return out
}

func parseDeviceExtensions(jsonPath string, raw json.RawMessage) []DeviceExtension {
	if raw == nil {
		return nil
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Debug("ignoring malformed device_extensions", "path", jsonPath, "error", err)
		return nil
	}
	var out []DeviceExtension
	for _, entry := range entries {
		name, okName := asString(entry["name"])
		spec, okSpec := asString(entry["spec_version"])
		if !okName || !okSpec {
			log.Debug("skipping invalid device extension entry", "path", jsonPath)
			continue
		}
		ext := DeviceExtension{Name: name, SpecVersion: spec}
		if eps, ok := entry["entrypoints"]; ok {
			if err := json.Unmarshal(eps, &ext.Entrypoints); err != nil {
				log.Debug("ignoring malformed entrypoints", "path", jsonPath, "extension", name)
				ext.Entrypoints = nil
			}
		}
		out = append(out, ext)
	}
	return out
}

// parseEnvVar reads an enable_environment or disable_environment object.
// Only the first member is meaningful; extra members are ignored with a
// debug message, as the reference loader does.
func parseEnvVar(jsonPath, member string, raw json.RawMessage) *EnvVar {
	if raw == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		log.Debug("ignoring non-object environment member", "path", jsonPath, "member", member)
		return nil
	}
	if !dec.More() {
		return nil
	}
	keyTok, err := dec.Token()
	if err != nil {
		return nil
	}
	name, _ := keyTok.(string)
	var value string
	if err := dec.Decode(&value); err != nil {
		log.Debug("ignoring non-string environment value", "path", jsonPath, "member", member, "name", name)
		return nil
	}
	if dec.More() {
		log.Debug("ignoring extra environment members", "path", jsonPath, "member", member)
	}
	return &EnvVar{Name: name, Value: value}
}

func asString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
