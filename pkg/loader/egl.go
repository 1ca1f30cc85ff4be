// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"

	"gfxprobe/pkg/manifest"
)

// Environment variables recognized by GLVND and by EGL external platform
// loaders.
const (
	envEGLVendorFilenames   = "__EGL_VENDOR_LIBRARY_FILENAMES"
	envEGLVendorDirs        = "__EGL_VENDOR_LIBRARY_DIRS"
	envEGLPlatformFilenames = "__EGL_EXTERNAL_PLATFORM_CONFIG_FILENAMES"
	envEGLPlatformDirs      = "__EGL_EXTERNAL_PLATFORM_CONFIG_DIRS"
)

// EGLICDs lists EGL driver manifests following GLVND's rules, most
// important first: an explicit file list wins, then an explicit
// directory list, then the standard locations.
func (l *Loader) EGLICDs(ctx context.Context) []*manifest.Descriptor {
	return l.glvndStyle(ctx, manifest.EGLICD,
		envEGLVendorFilenames, envEGLVendorDirs,
		l.eglSearchPaths(eglVendorSuffix, true))
}

// EGLExternalPlatforms lists EGL external platform manifests, such as
// the Wayland and xlib platform modules shipped by NVIDIA drivers.
func (l *Loader) EGLExternalPlatforms(ctx context.Context) []*manifest.Descriptor {
	return l.glvndStyle(ctx, manifest.EGLExternalPlatform,
		envEGLPlatformFilenames, envEGLPlatformDirs,
		l.eglSearchPaths(eglExternalPlatformSuffix, false))
}

func (l *Loader) glvndStyle(ctx context.Context, fam manifest.Family, filesVar, dirsVar string, searchPath []string) []*manifest.Descriptor {
	if files, ok := l.env.Lookup(filesVar); ok {
		return l.finish(ctx, l.loadFiles(fam, splitFileList(files)))
	}
	if dirs, ok := l.env.Lookup(dirsVar); ok {
		return l.finish(ctx, l.scanDirs(fam, splitFileList(dirs)))
	}
	return l.finish(ctx, l.scanDirs(fam, searchPath))
}
