// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"path"
	"strings"

	"gfxprobe/pkg/manifest"
)

// scanDirs loads every manifest under the given directories, in order.
// Directories that cannot be read are skipped, and two list entries that
// resolve to the same real directory are only scanned once. Within a
// directory, manifests are read in name order, so results are
// deterministic regardless of filesystem layout. Some platform loaders
// use raw directory order here, which cannot be reproduced.
func (l *Loader) scanDirs(fam manifest.Family, dirs []string) []*manifest.Descriptor {
	var out []*manifest.Descriptor
	seen := make(map[string]bool, len(dirs))

	for _, dir := range dirs {
		real, err := l.sys.RealPath(dir)
		if err != nil {
			l.logger.Debug("skipping search directory", "family", fam, "dir", dir, "error", err)
			continue
		}
		if seen[real] {
			l.logger.Debug("already scanned", "family", fam, "dir", dir)
			continue
		}
		seen[real] = true

		entries, err := l.sys.ReadDir(dir)
		if err != nil {
			l.logger.Debug("skipping unreadable directory", "family", fam, "dir", dir, "error", err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			out = append(out, manifest.Load(fam, l.sys, path.Join(dir, entry.Name()))...)
		}
	}
	return out
}

// loadFiles loads the manifests named by an override variable such as
// VK_DRIVER_FILES. A file that does not exist still produces an
// error-state descriptor, so a typo in the variable is visible in the
// results instead of silently yielding nothing.
func (l *Loader) loadFiles(fam manifest.Family, files []string) []*manifest.Descriptor {
	var out []*manifest.Descriptor
	for _, file := range files {
		out = append(out, manifest.Load(fam, l.sys, file)...)
	}
	return out
}
