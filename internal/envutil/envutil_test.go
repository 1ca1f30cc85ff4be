// SPDX-License-Identifier: MPL-2.0

package envutil

import (
	"testing"
)

func TestSnapshot_Lookup(t *testing.T) {
	snap := Snapshot{
		"HOME=/home/user",
		"EMPTY=",
		"HOME=/home/shadowed",
		"WEIRD=a=b=c",
	}

	tests := []struct {
		name      string
		key       string
		want      string
		wantFound bool
	}{
		{"first occurrence wins", "HOME", "/home/user", true},
		{"empty value is still set", "EMPTY", "", true},
		{"value containing equals", "WEIRD", "a=b=c", true},
		{"missing variable", "MISSING", "", false},
		{"prefix is not a match", "HOM", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := snap.Lookup(tt.key)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestSnapshot_Get(t *testing.T) {
	snap := Snapshot{"XDG_DATA_HOME=/data"}

	if got := snap.Get("XDG_DATA_HOME"); got != "/data" {
		t.Errorf("Get(XDG_DATA_HOME) = %q, want /data", got)
	}
	if got := snap.Get("MISSING"); got != "" {
		t.Errorf("Get(MISSING) = %q, want empty", got)
	}
}

func TestSnapshot_With(t *testing.T) {
	snap := Snapshot{"A=1", "B=2"}
	modified := snap.With("A", "changed").With("C", "3")

	if got := modified.Get("A"); got != "changed" {
		t.Errorf("With did not replace A: got %q", got)
	}
	if got := modified.Get("C"); got != "3" {
		t.Errorf("With did not add C: got %q", got)
	}
	// The original snapshot must be untouched.
	if got := snap.Get("A"); got != "1" {
		t.Errorf("With mutated the receiver: A = %q", got)
	}
}

func TestSnapshot_Without(t *testing.T) {
	snap := Snapshot{"A=1", "B=2", "A=3"}
	modified := snap.Without("A")

	if _, found := modified.Lookup("A"); found {
		t.Error("Without(A) left A set")
	}
	if got := modified.Get("B"); got != "2" {
		t.Errorf("Without(A) dropped B: got %q", got)
	}
	if got := snap.Get("A"); got != "1" {
		t.Errorf("Without mutated the receiver: A = %q", got)
	}
}

func TestCapture(t *testing.T) {
	t.Setenv("ENVUTIL_CAPTURE_PROBE", "present")

	snap := Capture()
	if got := snap.Get("ENVUTIL_CAPTURE_PROBE"); got != "present" {
		t.Errorf("Capture missed ENVUTIL_CAPTURE_PROBE: got %q", got)
	}
}
