package integration_tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/app"
	"github.com/specialistvlad/surveynav/internal/hcl_adapter"
	"github.com/specialistvlad/surveynav/internal/testutil"
)

// newApp writes the schema and snapshot into a temp dir and boots the app
// on them, the same way the CLI does.
func newApp(t *testing.T, schemaHCL, snapshotYAML string) *app.App {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{
		"survey.hcl":    schemaHCL,
		"snapshot.yaml": snapshotYAML,
	})

	cfg, err := app.NewConfig(app.Config{
		SchemaPath:         filepath.Join(dir, "survey.hcl"),
		SnapshotPath:       filepath.Join(dir, "snapshot.yaml"),
		LogFormat:          "text",
		LogLevel:           "debug",
		MaxRepeatInstances: 50,
	})
	require.NoError(t, err)

	a, err := app.NewApp(context.Background(), &testutil.SafeBuffer{}, cfg, hcl_adapter.NewLoader())
	require.NoError(t, err)
	return a
}
