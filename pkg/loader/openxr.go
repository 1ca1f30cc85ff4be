// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"

	"gfxprobe/pkg/manifest"
)

// envOpenXRRuntimeJSON overrides OpenXR runtime discovery with one
// manifest file.
const envOpenXRRuntimeJSON = "XR_RUNTIME_JSON"

// OpenXRRuntimes lists OpenXR runtime manifests, most important first.
// This is the 1.1-capable family: each well-formed descriptor records
// the runtime's major API version.
//
// If XR_RUNTIME_JSON is set, only that manifest is considered.
// Otherwise the XDG configuration directories are scanned.
func (l *Loader) OpenXRRuntimes(ctx context.Context) []*manifest.Descriptor {
	if override, ok := l.env.Lookup(envOpenXRRuntimeJSON); ok {
		return l.finish(ctx, l.loadFiles(manifest.OpenXRRuntime, []string{override}))
	}
	return l.finish(ctx, l.scanDirs(manifest.OpenXRRuntime, l.openxrSearchPaths()))
}

// OpenXR1Runtimes lists OpenXR runtime manifests restricted to major
// version 1, most important first. The search is the same as
// OpenXRRuntimes; only the reported family differs.
func (l *Loader) OpenXR1Runtimes(ctx context.Context) []*manifest.Descriptor {
	if override, ok := l.env.Lookup(envOpenXRRuntimeJSON); ok {
		return l.finish(ctx, l.loadFiles(manifest.OpenXR1Runtime, []string{override}))
	}
	return l.finish(ctx, l.scanDirs(manifest.OpenXR1Runtime, l.openxrSearchPaths()))
}
