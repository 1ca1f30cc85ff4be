// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vulkanICDManifest = `{
    "file_format_version": "1.0.1",
    "ICD": {
        "library_path": "libvulkan_test.so",
        "api_version": "1.3.0",
        "library_arch": "64"
    }
}`

func TestParse_VulkanICD(t *testing.T) {
	descs := Parse(VulkanICD, "/etc/vulkan/icd.d/test.json", []byte(vulkanICDManifest))
	require.Len(t, descs, 1)

	d := descs[0]
	require.NoError(t, d.CheckError())
	assert.Equal(t, VulkanICD, d.Family)
	assert.Equal(t, "/etc/vulkan/icd.d/test.json", d.JSONPath)
	assert.Equal(t, "1.0.1", d.FileFormatVersion)
	assert.Equal(t, IssueNone, d.Issues)

	require.NotNil(t, d.ICD)
	assert.Equal(t, "libvulkan_test.so", d.ICD.LibraryPath)
	assert.Equal(t, "1.3.0", d.ICD.APIVersion)
	assert.Equal(t, "64", d.ICD.LibraryArch)
	assert.False(t, d.ICD.PortabilityDriver)

	// A bare library name is never resolved against the filesystem.
	assert.Equal(t, "libvulkan_test.so", d.ResolveLibraryPath())
}

func TestParse_PortabilityDriver(t *testing.T) {
	descs := Parse(VulkanICD, "/t.json", []byte(`{
        "file_format_version": "1.0.1",
        "ICD": {
            "library_path": "libMoltenVK.so",
            "api_version": "1.2.0",
            "is_portability_driver": true
        }
    }`))
	require.Len(t, descs, 1)
	require.NoError(t, descs[0].CheckError())
	assert.True(t, descs[0].Issues.Has(IssueAPISubset))
	assert.True(t, descs[0].ICD.PortabilityDriver)
}

func TestParse_ErrorStates(t *testing.T) {
	tests := []struct {
		name       string
		family     Family
		input      string
		wantIssues Issues
	}{
		{"not JSON", VulkanICD, `not json`, IssueCannotLoad},
		{"top level array", VulkanICD, `[]`, IssueCannotLoad},
		{"top level string", VulkanICD, `"hello"`, IssueCannotLoad},
		{"missing file_format_version", VulkanICD, `{"ICD": {}}`, IssueCannotLoad},
		{"non-string file_format_version", VulkanICD, `{"file_format_version": 1}`, IssueCannotLoad},
		{"unsupported Vulkan ICD version", VulkanICD, `{"file_format_version": "2.0.0"}`, IssueUnsupported},
		{"unsupported OpenXR version", OpenXR1Runtime, `{"file_format_version": "1.0.1"}`, IssueUnsupported},
		{"unsupported layer version", VulkanLayer, `{"file_format_version": "1.10.0"}`, IssueUnsupported},
		{"missing top-level key", VulkanICD, `{"file_format_version": "1.0.0"}`, IssueCannotLoad},
		{"top-level key not object", VulkanICD, `{"file_format_version": "1.0.0", "ICD": []}`, IssueCannotLoad},
		{"missing library_path", VulkanICD, `{"file_format_version": "1.0.0", "ICD": {"api_version": "1.0.0"}}`, IssueCannotLoad},
		{"missing api_version", VulkanICD, `{"file_format_version": "1.0.0", "ICD": {"library_path": "x.so"}}`, IssueCannotLoad},
		{"EGL missing library_path", EGLICD, `{"file_format_version": "1.0.0", "ICD": {}}`, IssueCannotLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descs := Parse(tt.family, "/x.json", []byte(tt.input))
			require.Len(t, descs, 1)

			d := descs[0]
			assert.Error(t, d.CheckError())
			assert.Error(t, d.Err)
			assert.Equal(t, tt.wantIssues, d.Issues)
			assert.Nil(t, d.ICD)
			assert.Nil(t, d.Layer)
			assert.Equal(t, "/x.json", d.JSONPath)
		})
	}
}

func TestParse_EmbeddedNUL(t *testing.T) {
	input := append([]byte(`{"file_format_version": "1.0.0"`), 0)
	descs := Parse(VulkanICD, "/x.json", input)
	require.Len(t, descs, 1)
	assert.True(t, descs[0].Issues.Has(IssueCannotLoad))
}

func TestParse_UnsupportedKeepsVersion(t *testing.T) {
	descs := Parse(EGLICD, "/x.json", []byte(`{"file_format_version": "9.9.9"}`))
	require.Len(t, descs, 1)
	// The rejected version is still recorded for diagnostics.
	assert.Equal(t, "9.9.9", descs[0].FileFormatVersion)
	assert.True(t, descs[0].Issues.Has(IssueUnsupported))
}

func TestParse_OpenXRRuntime(t *testing.T) {
	descs := Parse(OpenXR1Runtime, "/etc/openxr/1/active_runtime.json", []byte(`{
        "file_format_version": "1.0.0",
        "runtime": {"library_path": "../../../usr/lib/libopenxr_monado.so"}
    }`))
	require.Len(t, descs, 1)

	d := descs[0]
	require.NoError(t, d.CheckError())
	assert.Equal(t, "../../../usr/lib/libopenxr_monado.so", d.LibraryPath())
	// Relative references resolve against the manifest's directory.
	assert.Equal(t, "/usr/lib/libopenxr_monado.so", d.ResolveLibraryPath())
	// The version-restricted family carries no API version of its own.
	assert.Empty(t, d.ICD.APIVersion)
}

func TestParse_OpenXRRuntimeAPIVersion(t *testing.T) {
	descs := Parse(OpenXRRuntime, "/etc/openxr/1/active_runtime.json", []byte(`{
        "file_format_version": "1.0.0",
        "runtime": {"library_path": "/usr/lib/libopenxr_monado.so"}
    }`))
	require.Len(t, descs, 1)

	d := descs[0]
	require.NoError(t, d.CheckError())
	// The manifest has no api_version member; the unrestricted family
	// reports the implied major version.
	assert.Equal(t, "1", d.ICD.APIVersion)
}

func TestParse_SingleLayer(t *testing.T) {
	descs := Parse(VulkanLayer, "/l.json", []byte(`{
        "file_format_version": "1.2.1",
        "layer": {
            "name": "VK_LAYER_TEST_basic",
            "type": "GLOBAL",
            "library_path": "/usr/lib/libtest.so",
            "library_arch": "64",
            "api_version": "1.3.0",
            "implementation_version": "7",
            "description": "A test layer",
            "functions": {"vkGetInstanceProcAddr": "test_gipa"},
            "pre_instance_functions": {"vkEnumerateInstanceVersion": "test_eiv"},
            "instance_extensions": [
                {"name": "VK_EXT_direct_mode_display", "spec_version": "1"},
                {"name": "broken entry missing spec_version"}
            ],
            "device_extensions": [
                {"name": "VK_EXT_debug_marker", "spec_version": "2", "entrypoints": ["vkDebugMarkerSetObjectTagEXT"]}
            ],
            "enable_environment": {"ENABLE_TEST_LAYER": "1"},
            "disable_environment": {"DISABLE_TEST_LAYER": "1"}
        }
    }`))
	require.Len(t, descs, 1)

	d := descs[0]
	require.NoError(t, d.CheckError())
	require.NotNil(t, d.Layer)
	assert.Equal(t, "VK_LAYER_TEST_basic", d.Layer.Name)
	assert.Equal(t, "GLOBAL", d.Layer.Type)
	assert.Equal(t, "/usr/lib/libtest.so", d.Layer.LibraryPath)
	assert.Equal(t, "64", d.Layer.LibraryArch)
	assert.Equal(t, "7", d.Layer.ImplementationVersion)
	assert.Equal(t, map[string]string{"vkGetInstanceProcAddr": "test_gipa"}, d.Layer.Functions)
	assert.Equal(t, map[string]string{"vkEnumerateInstanceVersion": "test_eiv"}, d.Layer.PreInstanceFunctions)

	// Invalid extension entries are skipped, valid ones kept.
	require.Len(t, d.Layer.InstanceExtensions, 1)
	assert.Equal(t, "VK_EXT_direct_mode_display", d.Layer.InstanceExtensions[0].Name)
	require.Len(t, d.Layer.DeviceExtensions, 1)
	assert.Equal(t, []string{"vkDebugMarkerSetObjectTagEXT"}, d.Layer.DeviceExtensions[0].Entrypoints)

	require.NotNil(t, d.Layer.EnableEnvironment)
	assert.Equal(t, EnvVar{Name: "ENABLE_TEST_LAYER", Value: "1"}, *d.Layer.EnableEnvironment)
	require.NotNil(t, d.Layer.DisableEnvironment)
	assert.Equal(t, EnvVar{Name: "DISABLE_TEST_LAYER", Value: "1"}, *d.Layer.DisableEnvironment)
}

func TestParse_MultipleLayers(t *testing.T) {
	descs := Parse(VulkanLayer, "/l.json", []byte(`{
        "file_format_version": "1.1.1",
        "layers": [
            {
                "name": "VK_LAYER_TEST_one",
                "type": "INSTANCE",
                "library_path": "libone.so",
                "api_version": "1.1.0",
                "implementation_version": "1",
                "description": "first"
            },
            {
                "name": "VK_LAYER_TEST_meta",
                "type": "GLOBAL",
                "component_layers": ["VK_LAYER_TEST_one"],
                "api_version": "1.1.0",
                "implementation_version": "1",
                "description": "meta"
            }
        ]
    }`))
	require.Len(t, descs, 2)

	require.NoError(t, descs[0].CheckError())
	require.NoError(t, descs[1].CheckError())
	// Every layer shares the manifest's file_format_version.
	assert.Equal(t, "1.1.1", descs[0].FileFormatVersion)
	assert.Equal(t, "1.1.1", descs[1].FileFormatVersion)
	assert.Equal(t, "VK_LAYER_TEST_one", descs[0].Name())
	assert.Equal(t, "VK_LAYER_TEST_meta", descs[1].Name())
	assert.Empty(t, descs[1].LibraryPath())
	assert.Equal(t, []string{"VK_LAYER_TEST_one"}, descs[1].Layer.ComponentLayers)
}

func TestParse_LayerLibraryComponentExclusivity(t *testing.T) {
	base := `"name": "VK_LAYER_TEST_x", "type": "GLOBAL", "api_version": "1.0.0",
             "implementation_version": "1", "description": "d"`

	tests := []struct {
		name  string
		extra string
	}{
		{"both present", `, "library_path": "lib.so", "component_layers": ["VK_LAYER_A"]`},
		{"both absent", ``},
		{"empty component_layers", `, "component_layers": []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"file_format_version": "1.1.1", "layer": {` + base + tt.extra + `}}`
			descs := Parse(VulkanLayer, "/l.json", []byte(input))
			require.Len(t, descs, 1)
			assert.Error(t, descs[0].CheckError())
			assert.True(t, descs[0].Issues.Has(IssueCannotLoad))
		})
	}
}

func TestParse_LayerMissingRequiredField(t *testing.T) {
	descs := Parse(VulkanLayer, "/l.json", []byte(`{
        "file_format_version": "1.1.0",
        "layer": {
            "name": "VK_LAYER_TEST_x",
            "library_path": "lib.so",
            "api_version": "1.0.0",
            "implementation_version": "1",
            "description": "missing type"
        }
    }`))
	require.Len(t, descs, 1)
	assert.Error(t, descs[0].CheckError())
}

func TestParse_BothLayerAndLayers(t *testing.T) {
	descs := Parse(VulkanLayer, "/l.json", []byte(`{
        "file_format_version": "1.1.0",
        "layer": {},
        "layers": []
    }`))
	require.Len(t, descs, 1)
	assert.True(t, descs[0].Issues.Has(IssueCannotLoad))
}
