// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "open sysroot"},
			want: "failed to open sysroot",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "open sysroot", Resource: "/srv/rt"},
			want: "failed to open sysroot: /srv/rt",
		},
		{
			name: "full context",
			err:  &ActionableError{Operation: "open sysroot", Resource: "/srv/rt", Cause: cause},
			want: "failed to open sysroot: /srv/rt: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapWithOperation(cause, "load configuration")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	err := NewErrorContext().
		WithOperation("open sysroot").
		WithResource("/srv/rt").
		WithSuggestion("Check the path exists").
		WithSuggestion("Check permissions").
		Wrap(errors.New("boom")).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "open sysroot" || err.Resource != "/srv/rt" {
		t.Errorf("Build() lost context: %+v", err)
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", err.Suggestions)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if got := NewErrorContext().WithResource("/x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Delete the file to use defaults").
		Wrap(errors.New("bad yaml")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Delete the file to use defaults") {
		t.Errorf("Format(false) missing suggestion:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "bad yaml") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}
