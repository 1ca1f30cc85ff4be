// SPDX-License-Identifier: MPL-2.0

package manifest

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int // sign only
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		// Numeric segments compare by value, not lexically.
		{"1.10.0", "1.2.1", 1},
		{"1.2.1", "1.10.0", -1},
		{"1.1.2", "1.2.1", -1},
		// Longer version sorts after its prefix.
		{"1.0.0.1", "1.0.0", 1},
		{"1.0", "1.0.0", -1},
		// Leading zeroes do not change the value.
		{"1.02.0", "1.2.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := compareVersions(tt.a, tt.b)
			if sign(got) != tt.want {
				t.Errorf("compareVersions(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestFamily_SupportsVersion(t *testing.T) {
	tests := []struct {
		family  Family
		version string
		want    bool
	}{
		{VulkanICD, "1.0.0", true},
		{VulkanICD, "1.0.2", true},
		{VulkanICD, "1.1.0", false},
		{VulkanICD, "2.0.0", false},
		{VulkanLayer, "1.0.0", true},
		{VulkanLayer, "1.2.1", true},
		{VulkanLayer, "1.2.2", false},
		{VulkanLayer, "1.10.0", false},
		{EGLICD, "1.0.0", true},
		{EGLICD, "1.0.9", true},
		{EGLICD, "1.1.0", false},
		{EGLExternalPlatform, "1.0.1", true},
		{EGLExternalPlatform, "2.0.0", false},
		{OpenXR1Runtime, "1.0.0", true},
		{OpenXR1Runtime, "1.0.1", false},
		{OpenXRRuntime, "1.0.0", true},
		{OpenXRRuntime, "1.1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.family.String()+" "+tt.version, func(t *testing.T) {
			if got := tt.family.supportsVersion(tt.version); got != tt.want {
				t.Errorf("%v.supportsVersion(%q) = %v, want %v", tt.family, tt.version, got, tt.want)
			}
		})
	}
}
