// SPDX-License-Identifier: MPL-2.0

// Package sysroot abstracts a root directory that discovery code inspects.
// All paths handed to a Sysroot are absolute paths interpreted as though
// the sysroot was the root directory, so the same scanning logic can look
// at the live system (root "/") or at a prospective container root.
package sysroot

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Sysroot is the read-only filesystem view used by manifest discovery.
//
// Implementations must treat every argument as an absolute path inside the
// sysroot: "/etc/vulkan/icd.d" with a sysroot of "/srv/container" refers to
// "/srv/container/etc/vulkan/icd.d" on the host.
type Sysroot interface {
	// Path returns the host path of the sysroot itself, e.g. "/".
	Path() string

	// Load reads the file at the given sysroot-relative absolute path,
	// following symbolic links without escaping the sysroot.
	Load(name string) ([]byte, error)

	// ReadDir lists the directory at the given sysroot-relative absolute
	// path, in directory order.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Exists reports whether the given sysroot-relative absolute path can
	// be resolved to an existing file or directory.
	Exists(name string) bool

	// RealPath resolves symbolic links in name and returns the canonical
	// sysroot-relative absolute path, still expressed as though the
	// sysroot was "/".
	RealPath(name string) (string, error)
}

// Dir is a Sysroot rooted at a host directory.
type Dir struct {
	root string
}

// New returns a Dir rooted at the host directory root. root must exist and
// be a directory.
func New(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving sysroot %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening sysroot %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sysroot %q is not a directory", root)
	}

	return &Dir{root: abs}, nil
}

// Direct returns a Dir for the real root directory "/".
func Direct() *Dir {
	return &Dir{root: "/"}
}

// Path returns the host path of the sysroot.
func (d *Dir) Path() string { return d.root }

// Load implements Sysroot.
func (d *Dir) Load(name string) ([]byte, error) {
	resolved, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(d.hostPath(resolved))
}

// ReadDir implements Sysroot.
func (d *Dir) ReadDir(name string) ([]fs.DirEntry, error) {
	resolved, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(d.hostPath(resolved))
}

// Exists implements Sysroot.
func (d *Dir) Exists(name string) bool {
	resolved, err := d.resolve(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(d.hostPath(resolved))
	return err == nil
}

// RealPath implements Sysroot.
func (d *Dir) RealPath(name string) (string, error) {
	return d.resolve(name)
}

// hostPath converts a resolved sysroot-relative absolute path to the
// corresponding host path.
func (d *Dir) hostPath(resolved string) string {
	return filepath.Join(d.root, resolved)
}

// maxSymlinkDepth bounds symlink chains during resolution, mirroring the
// kernel's ELOOP limit.
const maxSymlinkDepth = 40

// resolve walks name component by component, expanding symbolic links
// relative to the sysroot: an absolute symlink target is reinterpreted as
// sysroot-relative rather than escaping to the host root.
func (d *Dir) resolve(name string) (string, error) {
	if !path.IsAbs(name) {
		name = "/" + name
	}
	name = path.Clean(name)

	var depth int
	resolved := "/"
	remaining := strings.Split(strings.TrimPrefix(name, "/"), "/")

	for len(remaining) > 0 {
		component := remaining[0]
		remaining = remaining[1:]

		switch component {
		case "", ".":
			continue
		case "..":
			// ".." cannot escape the sysroot root.
			resolved = path.Dir(resolved)
			continue
		}

		candidate := path.Join(resolved, component)
		info, err := os.Lstat(filepath.Join(d.root, candidate))
		if err != nil {
			return "", err
		}

		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = candidate
			continue
		}

		depth++
		if depth > maxSymlinkDepth {
			return "", fmt.Errorf("resolving %q in %q: too many levels of symbolic links", name, d.root)
		}

		target, err := os.Readlink(filepath.Join(d.root, candidate))
		if err != nil {
			return "", err
		}

		if path.IsAbs(target) {
			resolved = "/"
		}
		remaining = append(strings.Split(strings.TrimPrefix(target, "/"), "/"), remaining...)
	}

	return resolved, nil
}
