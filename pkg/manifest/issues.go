// SPDX-License-Identifier: MPL-2.0

package manifest

import "strings"

// Issues is an additive bitset of problems found while loading a manifest.
// Flags only accumulate; nothing ever clears one.
type Issues uint32

const (
	// IssueCannotLoad means the manifest file was missing, unreadable or
	// malformed.
	IssueCannotLoad Issues = 1 << iota
	// IssueUnsupported means the manifest declared a file_format_version
	// that this code does not understand.
	IssueUnsupported
	// IssueDuplicated means another descriptor resolves to the same
	// underlying library.
	IssueDuplicated
	// IssueAPISubset means the module only implements a subset of the
	// API, e.g. a Vulkan portability driver.
	IssueAPISubset
	// IssueUnknown is reserved for problems reported by a newer producer
	// that this code cannot classify.
	IssueUnknown

	// IssueNone is the empty set.
	IssueNone Issues = 0
)

// Has reports whether all bits in flag are set.
func (i Issues) Has(flag Issues) bool {
	return i&flag == flag
}

// String returns a comma-separated list of flag names, or "none".
func (i Issues) String() string {
	if i == IssueNone {
		return "none"
	}

	var names []string
	for _, f := range []struct {
		bit  Issues
		name string
	}{
		{IssueCannotLoad, "cannot-load"},
		{IssueUnsupported, "unsupported"},
		{IssueDuplicated, "duplicated"},
		{IssueAPISubset, "api-subset"},
		{IssueUnknown, "unknown"},
	} {
		if i.Has(f.bit) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, ",")
}
