package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/location"
)

// RequirePath fails the test with a readable diff when the paths differ.
func RequirePath(t *testing.T, want, got []location.Location) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

// AssertLogged checks that the captured log output contains a substring.
func AssertLogged(t *testing.T, buf *SafeBuffer, substr string) {
	t.Helper()
	require.True(t, strings.Contains(buf.String(), substr),
		"expected log output to contain %q, got:\n%s", substr, buf.String())
}
