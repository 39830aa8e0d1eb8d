package app

import (
	"fmt"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/snapshot"
)

// LoadSurvey loads the schema from the configured path.
func (a *App) LoadSurvey() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Loading survey schema...", "schema_path", a.config.SchemaPath)

	survey, err := a.loader.Load(a.ctx, a.config.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	a.survey = survey
	logger.Info("Survey loaded.", "survey_id", survey.ID, "sections", len(survey.Sections))
	return nil
}

// LoadSnapshot loads the respondent snapshot. Without a snapshot path the
// app runs against an empty snapshot.
func (a *App) LoadSnapshot() error {
	logger := ctxlog.FromContext(a.ctx)
	if a.config.SnapshotPath == "" {
		logger.Debug("No snapshot configured, using an empty one.")
		a.snap = snapshot.Empty()
		return nil
	}

	logger.Debug("Loading snapshot...", "snapshot_path", a.config.SnapshotPath)
	snap, err := snapshot.LoadFile(a.ctx, a.config.SnapshotPath)
	if err != nil {
		return err
	}

	a.snap = snap
	logger.Info("Snapshot loaded.", "answers", snap.Answers.Len())
	return nil
}
