// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"testing"
)

func TestResolveLibraryPath(t *testing.T) {
	tests := []struct {
		name     string
		library  string
		jsonPath string
		want     string
	}{
		{"empty reference", "", "/etc/vulkan/icd.d/a.json", ""},
		{"absolute reference", "/usr/lib/libvk.so", "/etc/vulkan/icd.d/a.json", "/usr/lib/libvk.so"},
		{"bare name stays bare", "libvk.so.1", "/etc/vulkan/icd.d/a.json", "libvk.so.1"},
		{"relative resolves against manifest dir", "./libvk.so", "/etc/vulkan/icd.d/a.json", "/etc/vulkan/icd.d/libvk.so"},
		{"parent-relative", "../../lib/libvk.so", "/usr/share/vulkan/icd.d/a.json", "/usr/share/lib/libvk.so"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLibraryPath(tt.library, tt.jsonPath); got != tt.want {
				t.Errorf("ResolveLibraryPath(%q, %q) = %q, want %q", tt.library, tt.jsonPath, got, tt.want)
			}
		})
	}
}

func TestDescriptor_ReplaceLibraryPath(t *testing.T) {
	descs := Parse(VulkanICD, "/t.json", []byte(vulkanICDManifest))
	if len(descs) != 1 {
		t.Fatalf("Parse returned %d descriptors", len(descs))
	}
	orig := descs[0]

	replaced := orig.ReplaceLibraryPath("/overrides/libvulkan_test.so")
	if replaced.ICD.LibraryPath != "/overrides/libvulkan_test.so" {
		t.Errorf("LibraryPath = %q after replace", replaced.ICD.LibraryPath)
	}
	if orig.ICD.LibraryPath != "libvulkan_test.so" {
		t.Errorf("ReplaceLibraryPath mutated the original: %q", orig.ICD.LibraryPath)
	}
	// Other fields survive the copy.
	if replaced.ICD.APIVersion != "1.3.0" || replaced.ICD.LibraryArch != "64" {
		t.Errorf("replace lost fields: %+v", replaced.ICD)
	}
}

func TestDescriptor_ReplaceLibraryPath_ErrorState(t *testing.T) {
	d := &Descriptor{
		Family:   VulkanICD,
		JSONPath: "/broken.json",
		Issues:   IssueCannotLoad,
		Err:      errors.New("unparseable"),
	}
	if got := d.ReplaceLibraryPath("/x.so"); got != d {
		t.Error("ReplaceLibraryPath on an error-state descriptor should return it unchanged")
	}
}

func TestDescriptor_ReplaceLibraryPath_MetaLayer(t *testing.T) {
	d := &Descriptor{
		Family:   VulkanLayer,
		JSONPath: "/meta.json",
		Layer: &LayerDetails{
			Name:            "VK_LAYER_TEST_meta",
			ComponentLayers: []string{"VK_LAYER_TEST_one"},
		},
	}
	if got := d.ReplaceLibraryPath("/x.so"); got != d {
		t.Error("ReplaceLibraryPath on a meta-layer should return it unchanged")
	}
}

func TestDescriptor_WithLibraryArch(t *testing.T) {
	tests := []struct {
		name        string
		descriptor  *Descriptor
		wantVersion string
	}{
		{
			name: "ICD version bumped to 1.0.1",
			descriptor: &Descriptor{
				Family:            VulkanICD,
				FileFormatVersion: "1.0.0",
				ICD:               &ICDDetails{LibraryPath: "lib.so", APIVersion: "1.0.0"},
			},
			wantVersion: "1.0.1",
		},
		{
			name: "newer ICD version kept",
			descriptor: &Descriptor{
				Family:            VulkanICD,
				FileFormatVersion: "1.0.2",
				ICD:               &ICDDetails{LibraryPath: "lib.so", APIVersion: "1.0.0"},
			},
			wantVersion: "1.0.2",
		},
		{
			name: "layer version bumped to 1.2.1",
			descriptor: &Descriptor{
				Family:            VulkanLayer,
				FileFormatVersion: "1.1.0",
				Layer:             &LayerDetails{Name: "VK_LAYER_X", LibraryPath: "lib.so"},
			},
			wantVersion: "1.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.descriptor.WithLibraryArch("64")
			if got.FileFormatVersion != tt.wantVersion {
				t.Errorf("FileFormatVersion = %q, want %q", got.FileFormatVersion, tt.wantVersion)
			}
			switch {
			case got.ICD != nil:
				if got.ICD.LibraryArch != "64" {
					t.Errorf("ICD.LibraryArch = %q", got.ICD.LibraryArch)
				}
			case got.Layer != nil:
				if got.Layer.LibraryArch != "64" {
					t.Errorf("Layer.LibraryArch = %q", got.Layer.LibraryArch)
				}
			}
		})
	}
}

func TestDescriptor_WithIssues(t *testing.T) {
	d := &Descriptor{Family: VulkanICD, ICD: &ICDDetails{LibraryPath: "lib.so"}}

	same := d.WithIssues(IssueNone)
	if same != d {
		t.Error("WithIssues(IssueNone) should return the receiver")
	}

	flagged := d.WithIssues(IssueDuplicated)
	if !flagged.Issues.Has(IssueDuplicated) {
		t.Error("WithIssues did not set the flag")
	}
	if d.Issues != IssueNone {
		t.Error("WithIssues mutated the receiver")
	}
}
