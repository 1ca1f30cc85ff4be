// SPDX-License-Identifier: MPL-2.0

// Package envutil provides an explicit environment snapshot: an ordered
// list of "NAME=value" entries passed around instead of reading the real
// process environment. Discovery results must depend only on the snapshot
// they were given, so the same code can answer "what would this container
// see" as easily as "what does this host see".
package envutil

import (
	"os"
	"strings"
)

// Snapshot is an ordered list of "NAME=value" entries. The zero value is an
// empty environment, not the process environment; call Capture for that.
type Snapshot []string

// Capture returns a snapshot of the current process environment. This is
// the only place the package reads the real environment.
func Capture() Snapshot {
	return Snapshot(os.Environ())
}

// Lookup returns the value of name and whether it is present. If name
// appears more than once, the first occurrence wins.
func (s Snapshot) Lookup(name string) (string, bool) {
	prefix := name + "="
	for _, entry := range s {
		if strings.HasPrefix(entry, prefix) {
			return entry[len(prefix):], true
		}
	}
	return "", false
}

// Get returns the value of name, or "" if it is unset.
func (s Snapshot) Get(name string) string {
	value, _ := s.Lookup(name)
	return value
}

// With returns a copy of the snapshot with name set to value, replacing
// any existing entries for name. The receiver is not modified.
func (s Snapshot) With(name, value string) Snapshot {
	out := make(Snapshot, 0, len(s)+1)
	prefix := name + "="
	for _, entry := range s {
		if !strings.HasPrefix(entry, prefix) {
			out = append(out, entry)
		}
	}
	return append(out, prefix+value)
}

// Without returns a copy of the snapshot with all entries for name removed.
func (s Snapshot) Without(name string) Snapshot {
	out := make(Snapshot, 0, len(s))
	prefix := name + "="
	for _, entry := range s {
		if !strings.HasPrefix(entry, prefix) {
			out = append(out, entry)
		}
	}
	return out
}
