package integration_tests

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/app"
	"github.com/specialistvlad/surveynav/internal/hcl_adapter"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/testutil"
)

func bootApp(t *testing.T, files map[string]string) error {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	cfg := &app.Config{
		SchemaPath:         filepath.Join(dir, "survey.hcl"),
		LogFormat:          "text",
		LogLevel:           "debug",
		MaxRepeatInstances: 50,
	}
	if _, ok := files["snapshot.yaml"]; ok {
		cfg.SnapshotPath = filepath.Join(dir, "snapshot.yaml")
	}
	_, err := app.NewApp(context.Background(), &testutil.SafeBuffer{}, cfg, hcl_adapter.NewLoader())
	return err
}

// Test for: invalid hcl is rejected
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		survey "broken" {
			section "s" {
		// Missing closing braces here
	`

	// --- Act ---
	err := bootApp(t, map[string]string{"survey.hcl": invalidHCL})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

// Test for: authoring defects are reported together as an invalid schema
func TestErrorHandling_InvalidSchema_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
survey "defects" {
  section "s" {
    group "g" {
      block "a" {
        type = "Interstitial"

        routing_rule {
          goto_block = "nowhere"
        }
      }

      block "a" {
        type = "Interstitial"
      }
    }
  }
}
`

	// --- Act ---
	err := bootApp(t, map[string]string{"survey.hcl": src})

	// --- Assert ---
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInvalidSchema), "got %v", err)
	assert.Contains(t, err.Error(), `duplicate block id "a" in group "g"`)
	assert.Contains(t, err.Error(), `goto references block "nowhere"`)
}

// Test for: a snapshot with an unknown section status is rejected
func TestErrorHandling_InvalidSnapshot_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"survey.hcl":    testutil.HubHCL,
		"snapshot.yaml": "sections:\n  - section_id: about-you\n    status: DONE\n",
	}

	// --- Act ---
	err := bootApp(t, files)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown completion status "DONE"`)
}
