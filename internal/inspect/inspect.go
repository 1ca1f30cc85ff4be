// SPDX-License-Identifier: MPL-2.0

// Package inspect locates shared libraries the way the platform's dynamic
// linker would, one multiarch tuple at a time. The loader uses it to tell
// whether two manifests that name the same soname actually resolve to the
// same file.
package inspect

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// A Canonicalizer resolves a library reference to the absolute, symlink
// free path of the file the given architecture's loader would open.
type Canonicalizer interface {
	Canonicalize(ctx context.Context, tuple, library string) (string, error)
}

// Func adapts a function to the Canonicalizer interface.
type Func func(ctx context.Context, tuple, library string) (string, error)

func (f Func) Canonicalize(ctx context.Context, tuple, library string) (string, error) {
	return f(ctx, tuple, library)
}

// Helper canonicalizes libraries by running the per-architecture
// <tuple>-inspect-library helper, which dlopens the library with that
// architecture's loader and prints where it was found.
type Helper struct {
	// HelpersPath is the directory holding the helper executables. If
	// empty, they are looked up on $PATH.
	HelpersPath string
}

func (h *Helper) Canonicalize(ctx context.Context, tuple, library string) (string, error) {
	name := tuple + "-inspect-library"
	if h.HelpersPath != "" {
		name = filepath.Join(h.HelpersPath, name)
	}

	out, err := exec.CommandContext(ctx, name, library).Output()
	if err != nil {
		return "", fmt.Errorf("inspecting %q for %s: %w", library, tuple, err)
	}

	found, err := parseHelperOutput(out)
	if err != nil {
		return "", fmt.Errorf("inspecting %q for %s: %w", library, tuple, err)
	}

	resolved, err := filepath.EvalSymlinks(found)
	if err != nil {
		return "", fmt.Errorf("resolving %q for %s: %w", found, tuple, err)
	}
	return resolved, nil
}

// parseHelperOutput extracts the library path from the helper's
// line-based output. The first non-empty line is the absolute path of
// the library as loaded; later lines list its dependencies.
func parseHelperOutput(out []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			return "", fmt.Errorf("unexpected helper output %q", line)
		}
		return line, nil
	}
	return "", fmt.Errorf("helper printed no library path")
}
