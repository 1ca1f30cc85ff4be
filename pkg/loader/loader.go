// SPDX-License-Identifier: MPL-2.0

// Package loader discovers graphics and XR capability manifests the way
// the platform loaders do: Vulkan ICDs and layers, EGL ICDs and external
// platforms, and OpenXR runtimes.
//
// Each List method reproduces one loader's search protocol against a
// sysroot and an environment snapshot, returning descriptors in
// most-important-first order. Broken manifests are reported as
// error-state descriptors rather than aborting the scan, and duplicate
// entries naming the same library are flagged, not removed.
package loader

import (
	"github.com/charmbracelet/log"

	"gfxprobe/internal/envutil"
	"gfxprobe/internal/inspect"
	"gfxprobe/pkg/sysroot"
)

// Options configures a Loader. The zero value inspects the live system
// with the current process environment.
type Options struct {
	// Sysroot is the filesystem to inspect. Defaults to the real root.
	Sysroot sysroot.Sysroot

	// Environ is the environment snapshot consulted for override
	// variables and XDG base directories. Defaults to a capture of the
	// process environment.
	Environ envutil.Snapshot

	// MultiarchTuples lists the Debian-style architecture tuples to
	// consider, e.g. "x86_64-linux-gnu". They select per-architecture
	// search directories in container-builder layouts and enable
	// per-architecture library canonicalization during duplicate
	// detection.
	MultiarchTuples []string

	// Canonicalizer resolves a library reference for one tuple. Defaults
	// to running the <tuple>-inspect-library helpers from $PATH. Only
	// consulted when MultiarchTuples is non-empty.
	Canonicalizer inspect.Canonicalizer

	// SkipSlowChecks disables duplicate detection, which may run one
	// helper process per tuple per descriptor.
	SkipSlowChecks bool

	// Logger receives debug detail about skipped directories and
	// entries. Defaults to the standard logger.
	Logger *log.Logger
}

// Loader lists capability manifests for each supported family. Loaders
// are stateless between calls; the same Loader may be used from multiple
// goroutines if its Sysroot and Canonicalizer are.
type Loader struct {
	sys      sysroot.Sysroot
	env      envutil.Snapshot
	tuples   []string
	canon    inspect.Canonicalizer
	skipSlow bool
	logger   *log.Logger
}

// New returns a Loader for the given options.
func New(opts Options) *Loader {
	l := &Loader{
		sys:      opts.Sysroot,
		env:      opts.Environ,
		tuples:   opts.MultiarchTuples,
		canon:    opts.Canonicalizer,
		skipSlow: opts.SkipSlowChecks,
		logger:   opts.Logger,
	}
	if l.sys == nil {
		l.sys = sysroot.Direct()
	}
	if l.env == nil {
		l.env = envutil.Capture()
	}
	if l.canon == nil {
		l.canon = &inspect.Helper{}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}
