// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines an error type that carries the failed operation, the
// resource involved and remediation steps, improving the experience when a
// probe cannot run at all (a missing sysroot, an unreadable config file).
// Per-manifest problems are not errors in this sense; they are reported as
// descriptor issue flags by pkg/manifest.
package issue
