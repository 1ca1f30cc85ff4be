// SPDX-License-Identifier: MPL-2.0

// Package config loads gfxprobe's own configuration file.
//
// The configuration only affects the CLI: which sysroot to probe, which
// multiarch tuples to consider, and how to present results. The discovery
// engine in pkg/loader never reads it.
package config
