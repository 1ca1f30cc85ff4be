// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"path"
	"strings"
)

// Per-family search path suffixes, appended to each base directory.
const (
	vulkanICDSuffix           = "vulkan/icd.d"
	vulkanExplicitLayerSuffix = "vulkan/explicit_layer.d"
	vulkanImplicitLayerSuffix = "vulkan/implicit_layer.d"
	eglVendorSuffix           = "glvnd/egl_vendor.d"
	eglExternalPlatformSuffix = "egl/egl_external_platform.d"
	openxr1Suffix             = "openxr/1"
)

// flatpakSentinel marks a container-builder-style runtime, whose base
// images keep per-architecture GL drivers outside the standard XDG
// locations.
const flatpakSentinel = "/.flatpak-info"

// vulkanSearchPaths returns the directories the Vulkan loader would
// search for the given suffix, highest priority first.
func (l *Loader) vulkanSearchPaths(suffix string) []string {
	var dirs []string

	if configHome := l.configHome(); configHome != "" {
		dirs = append(dirs, path.Join(configHome, suffix))
	}
	for _, dir := range l.configDirs() {
		dirs = append(dirs, path.Join(dir, suffix))
	}
	dirs = append(dirs, path.Join("/etc", suffix))

	if len(l.tuples) > 0 && l.sys.Exists(flatpakSentinel) {
		for _, tuple := range l.tuples {
			dirs = append(dirs,
				path.Join("/usr/lib", tuple, "GL", suffix),
				path.Join("/usr/lib", tuple, suffix))
		}
		dirs = append(dirs, path.Join("/usr/lib/extensions/vulkan/share", suffix))
	}

	dataHome := l.dataHome()
	if dataHome != "" {
		dirs = append(dirs, path.Join(dataHome, suffix))
	}
	// Steam historically misread the basedir spec and looked in
	// ~/.local/share even when XDG_DATA_HOME points elsewhere, so users
	// have manifests there that other launchers still find. Search it
	// too, unless it is the same directory as $XDG_DATA_HOME.
	if home := l.env.Get("HOME"); home != "" {
		fallback := path.Join(home, ".local/share")
		if dataHome == "" || !l.sameRealDir(path.Join(dataHome, suffix), path.Join(fallback, suffix)) {
			dirs = append(dirs, path.Join(fallback, suffix))
		}
	}
	for _, dir := range l.dataDirs() {
		dirs = append(dirs, path.Join(dir, suffix))
	}

	return dirs
}

// openxrSearchPaths returns the directories the OpenXR loader would
// search for major version 1. Unlike Vulkan, the OpenXR loader only
// consults the XDG configuration directories and sysconfdir.
func (l *Loader) openxrSearchPaths() []string {
	var dirs []string
	if configHome := l.configHome(); configHome != "" {
		dirs = append(dirs, path.Join(configHome, openxr1Suffix))
	}
	for _, dir := range l.configDirs() {
		dirs = append(dirs, path.Join(dir, openxr1Suffix))
	}
	return append(dirs, path.Join("/etc", openxr1Suffix))
}

// eglSearchPaths returns the directories GLVND-style loaders search.
// vendorGL selects the per-architecture GL directories of a
// container-builder runtime, which replace the standard locations and
// only apply to EGL ICDs, not external platforms.
func (l *Loader) eglSearchPaths(suffix string, vendorGL bool) []string {
	if vendorGL && len(l.tuples) > 0 && l.sys.Exists(flatpakSentinel) {
		dirs := make([]string, 0, len(l.tuples))
		for _, tuple := range l.tuples {
			dirs = append(dirs, path.Join("/usr/lib", tuple, "GL", suffix))
		}
		return dirs
	}
	return []string{
		path.Join("/etc", suffix),
		path.Join("/usr/share", suffix),
	}
}

// configHome returns $XDG_CONFIG_HOME used verbatim when set, even if
// it is not absolute, matching what the platform loaders do. The
// ~/.config fallback only applies when the variable is unset.
func (l *Loader) configHome() string {
	if dir := l.env.Get("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home := l.env.Get("HOME"); home != "" {
		return path.Join(home, ".config")
	}
	return ""
}

func (l *Loader) configDirs() []string {
	value := l.env.Get("XDG_CONFIG_DIRS")
	if value == "" {
		value = "/etc/xdg"
	}
	return splitDirList(value)
}

// dataHome returns $XDG_DATA_HOME used verbatim when set, else "".
// The ~/.local/share default is handled separately by vulkanSearchPaths
// because of the compatibility double search.
func (l *Loader) dataHome() string {
	return l.env.Get("XDG_DATA_HOME")
}

func (l *Loader) dataDirs() []string {
	value := l.env.Get("XDG_DATA_DIRS")
	if value == "" {
		value = "/usr/local/share:/usr/share"
	}
	return splitDirList(value)
}

// sameRealDir reports whether two paths resolve to the same directory in
// the sysroot. Paths that cannot be resolved compare unequal.
func (l *Loader) sameRealDir(a, b string) bool {
	realA, err := l.sys.RealPath(a)
	if err != nil {
		return false
	}
	realB, err := l.sys.RealPath(b)
	if err != nil {
		return false
	}
	return realA == realB
}

// splitDirList splits a colon-separated directory list, keeping only
// absolute entries as the basedir spec requires.
func splitDirList(value string) []string {
	var dirs []string
	for _, dir := range strings.Split(value, ":") {
		if strings.HasPrefix(dir, "/") {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// splitFileList splits a colon-separated file list, such as
// VK_DRIVER_FILES, dropping empty entries.
func splitFileList(value string) []string {
	var files []string
	for _, file := range strings.Split(value, ":") {
		if file != "" {
			files = append(files, file)
		}
	}
	return files
}
