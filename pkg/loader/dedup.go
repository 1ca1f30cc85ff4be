// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"

	"gfxprobe/pkg/manifest"
)

// flagDuplicates marks every descriptor whose library deduplication key
// collides with an earlier one. Both sides of a collision are flagged:
// the caller cannot tell which copy the platform loader would pick, only
// that the entry appears more than once.
//
// Without architecture tuples the key is the resolved library reference
// as written, prefixed with "<name>//" for layers. With tuples, each
// descriptor gets one key per tuple whose loader can actually find the
// library, via the canonicalization helper; tuples that cannot resolve
// it are skipped for that descriptor.
func (l *Loader) flagDuplicates(ctx context.Context, descriptors []*manifest.Descriptor) []*manifest.Descriptor {
	seen := make(map[string]int)
	dup := make([]bool, len(descriptors))

	record := func(i int, key string) {
		j, ok := seen[key]
		switch {
		case !ok:
			seen[key] = i
		case j != i:
			// Two tuples of the same descriptor may produce the same
			// key; that is not a duplicate.
			dup[j] = true
			dup[i] = true
		}
	}

	for i, d := range descriptors {
		resolved := d.ResolveLibraryPath()

		// A descriptor with nothing to key on cannot collide. For
		// layers the name still identifies a meta-layer without a
		// library of its own.
		if resolved == "" && d.Name() == "" {
			continue
		}

		if resolved == "" || len(l.tuples) == 0 {
			record(i, dedupKey(d, resolved))
			continue
		}

		for _, tuple := range l.tuples {
			canonical, err := l.canon.Canonicalize(ctx, tuple, resolved)
			if err != nil {
				l.logger.Debug("library not loadable for tuple",
					"path", d.JSONPath, "tuple", tuple, "library", resolved, "error", err)
				continue
			}
			record(i, dedupKey(d, canonical))
		}
	}

	out := make([]*manifest.Descriptor, len(descriptors))
	for i, d := range descriptors {
		if dup[i] {
			d = d.WithIssues(manifest.IssueDuplicated)
		}
		out[i] = d
	}
	return out
}

// dedupKey builds the collision key for one descriptor and one resolved
// library path. Layer keys include the layer name; "//" cannot appear in
// a well-formed name or an absolute path, so the composite is
// unambiguous in practice.
func dedupKey(d *manifest.Descriptor, resolved string) string {
	if d.Layer != nil {
		return d.Name() + "//" + resolved
	}
	return resolved
}

// finish applies duplicate detection unless slow checks are disabled.
func (l *Loader) finish(ctx context.Context, descriptors []*manifest.Descriptor) []*manifest.Descriptor {
	if l.skipSlow {
		return descriptors
	}
	return l.flagDuplicates(ctx, descriptors)
}
