// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Serialize renders the descriptor back into manifest JSON.
//
// An unmodified descriptor round-trips byte for byte: the original file
// contents are returned unchanged, including comments-by-convention such
// as unknown members. A descriptor changed through ReplaceLibraryPath or
// WithLibraryArch is regenerated instead, with a file_format_version new
// enough to describe every member being written.
//
// Error-state descriptors cannot be serialized.
func (d *Descriptor) Serialize() ([]byte, error) {
	if err := d.CheckError(); err != nil {
		return nil, fmt.Errorf("cannot serialize %q: %w", d.JSONPath, err)
	}
	if d.raw != nil {
		return d.raw, nil
	}

	doc := manifestDoc{}

	switch {
	case d.Layer != nil:
		doc.FileFormatVersion = d.layerFormatVersion()
		doc.Layer = d.Layer
	case d.Family == VulkanICD:
		doc.FileFormatVersion = "1.0.0"
		if d.ICD.PortabilityDriver || d.ICD.LibraryArch != "" {
			doc.FileFormatVersion = "1.0.1"
		}
		doc.ICD = &icdBody{
			LibraryPath:       d.ICD.LibraryPath,
			APIVersion:        d.ICD.APIVersion,
			LibraryArch:       d.ICD.LibraryArch,
			PortabilityDriver: d.ICD.PortabilityDriver,
		}
	case d.Family == OpenXR1Runtime || d.Family == OpenXRRuntime:
		doc.FileFormatVersion = "1.0.0"
		doc.Runtime = &icdBody{LibraryPath: d.ICD.LibraryPath}
	default:
		doc.FileFormatVersion = "1.0.0"
		doc.ICD = &icdBody{
			LibraryPath: d.ICD.LibraryPath,
			LibraryArch: d.ICD.LibraryArch,
		}
	}

	data, err := json.MarshalIndent(&doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("serializing %q: %w", d.JSONPath, err)
	}
	return append(data, '\n'), nil
}

// WriteFile serializes the descriptor and writes it to filename on the
// host filesystem, e.g. to reproduce a discovered manifest inside a
// container at a new location.
func (d *Descriptor) WriteFile(filename string) error {
	data, err := d.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", filename, err)
	}
	return nil
}

// layerFormatVersion picks the file_format_version for a regenerated
// layer manifest: the declared one if any, else the oldest version able
// to describe the members present.
func (d *Descriptor) layerFormatVersion() string {
	if d.FileFormatVersion != "" {
		return d.FileFormatVersion
	}
	switch {
	case d.Layer.LibraryArch != "":
		return "1.2.1"
	case len(d.Layer.PreInstanceFunctions) > 0:
		return "1.1.2"
	case len(d.Layer.ComponentLayers) > 0:
		return "1.1.1"
	default:
		return "1.1.0"
	}
}

type manifestDoc struct {
	FileFormatVersion string        `json:"file_format_version"`
	ICD               *icdBody      `json:"ICD,omitempty"`
	Runtime           *icdBody      `json:"runtime,omitempty"`
	Layer             *LayerDetails `json:"layer,omitempty"`
}

type icdBody struct {
	LibraryPath       string `json:"library_path"`
	APIVersion        string `json:"api_version,omitempty"`
	LibraryArch       string `json:"library_arch,omitempty"`
	PortabilityDriver bool   `json:"is_portability_driver,omitempty"`
}
