package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/hcl_adapter"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/metadata"
	"github.com/specialistvlad/surveynav/internal/progress"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/snapshot"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a debug logger that writes to buf.
// Set SURVEYNAV_TEST_LOGS=true to echo the captured logs when the test ends.
func Context(t *testing.T, buf *SafeBuffer) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("SURVEYNAV_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger)
}

// WriteFiles writes the files, keyed by relative path, into a fresh
// temporary directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// LoadSurvey loads a single HCL schema through the real loader.
func LoadSurvey(t *testing.T, src string) *schema.Survey {
	t.Helper()
	survey, err := LoadSurveyFiles(t, map[string]string{"survey.hcl": src})
	require.NoError(t, err)
	return survey
}

// LoadSurveyFiles writes the files to a temporary directory and loads it.
func LoadSurveyFiles(t *testing.T, files map[string]string) (*schema.Survey, error) {
	t.Helper()
	dir := WriteFiles(t, files)
	return hcl_adapter.NewLoader().Load(Context(t, &SafeBuffer{}), dir)
}

// Answer builds a recorded answer.
func Answer(groupID string, groupInstance int, blockID, answerID string, answerInstance int, value any) answers.Answer {
	return answers.Answer{
		GroupID:        groupID,
		GroupInstance:  groupInstance,
		BlockID:        blockID,
		AnswerID:       answerID,
		AnswerInstance: answerInstance,
		Value:          answers.MustValue(value),
	}
}

// Snapshot bundles answers, metadata and completed locations.
func Snapshot(md map[string]any, completed []location.Location, recorded ...answers.Answer) snapshot.Snapshot {
	return snapshot.New(
		answers.NewStore(recorded...),
		metadata.New(md),
		progress.NewStore(completed, nil),
	)
}

// Loc is shorthand for location.New.
func Loc(groupID string, groupInstance int, blockID string) location.Location {
	return location.New(groupID, groupInstance, blockID)
}
