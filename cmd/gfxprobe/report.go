// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gfxprobe/pkg/manifest"
)

// reportEntry is the JSON shape of one descriptor in --json output.
type reportEntry struct {
	JSONPath          string                 `json:"json_path"`
	FileFormatVersion string                 `json:"file_format_version,omitempty"`
	Issues            []string               `json:"issues,omitempty"`
	Error             string                 `json:"error,omitempty"`
	LibraryPath       string                 `json:"library_path,omitempty"`
	ResolvedLibrary   string                 `json:"resolved_library,omitempty"`
	ICD               *manifest.ICDDetails   `json:"icd,omitempty"`
	Layer             *manifest.LayerDetails `json:"layer,omitempty"`
}

// printReport renders descriptors in most-important-first order, either
// as styled text or as a JSON array when --json is set.
func printReport(w io.Writer, title string, descriptors []*manifest.Descriptor) error {
	if jsonOutput {
		return printJSONReport(w, descriptors)
	}

	fmt.Fprintln(w, TitleStyle.Render(title))
	if len(descriptors) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  (none found)"))
		return nil
	}

	for _, d := range descriptors {
		printDescriptor(w, d)
	}
	return nil
}

func printDescriptor(w io.Writer, d *manifest.Descriptor) {
	switch {
	case d.Err != nil:
		fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("✗"), PathStyle.Render(d.JSONPath))
		fmt.Fprintf(w, "      %s\n", ErrorStyle.Render(d.Err.Error()))
	case d.Issues != manifest.IssueNone:
		fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render("!"), PathStyle.Render(d.JSONPath))
	default:
		fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), PathStyle.Render(d.JSONPath))
	}

	if d.Err == nil {
		if name := d.Name(); name != "" {
			fmt.Fprintf(w, "      name: %s\n", name)
		}
		if lib := d.LibraryPath(); lib != "" {
			fmt.Fprintf(w, "      library: %s\n", lib)
			if resolved := d.ResolveLibraryPath(); resolved != lib {
				fmt.Fprintf(w, "      resolved: %s\n", resolved)
			}
		} else if d.Layer != nil && len(d.Layer.ComponentLayers) > 0 {
			fmt.Fprintf(w, "      component layers: %v\n", d.Layer.ComponentLayers)
		}
	}
	if d.Issues != manifest.IssueNone {
		fmt.Fprintf(w, "      issues: %s\n", WarningStyle.Render(d.Issues.String()))
	}
	if verbose && d.FileFormatVersion != "" {
		fmt.Fprintf(w, "      %s\n", VerboseStyle.Render("file format version: "+d.FileFormatVersion))
	}
}

func printJSONReport(w io.Writer, descriptors []*manifest.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reportEntries(descriptors))
}

func reportEntries(descriptors []*manifest.Descriptor) []reportEntry {
	entries := make([]reportEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entry := reportEntry{
			JSONPath:          d.JSONPath,
			FileFormatVersion: d.FileFormatVersion,
			ICD:               d.ICD,
			Layer:             d.Layer,
		}
		if d.Err != nil {
			entry.Error = d.Err.Error()
		}
		if lib := d.LibraryPath(); lib != "" {
			entry.LibraryPath = lib
			entry.ResolvedLibrary = d.ResolveLibraryPath()
		}
		for _, flag := range []manifest.Issues{
			manifest.IssueCannotLoad,
			manifest.IssueUnsupported,
			manifest.IssueDuplicated,
			manifest.IssueAPISubset,
			manifest.IssueUnknown,
		} {
			if d.Issues.Has(flag) {
				entry.Issues = append(entry.Issues, flag.String())
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
