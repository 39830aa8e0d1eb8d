package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/metadata"
	"github.com/specialistvlad/surveynav/internal/progress"
)

// file is the on-disk layout of a snapshot.
type file struct {
	Metadata  map[string]any      `yaml:"metadata"`
	Answers   []answerRecord      `yaml:"answers"`
	Completed []location.Location `yaml:"completed"`
	Sections  []sectionRecord     `yaml:"sections"`
}

type answerRecord struct {
	GroupID        string `yaml:"group_id"`
	GroupInstance  int    `yaml:"group_instance"`
	BlockID        string `yaml:"block_id"`
	AnswerID       string `yaml:"answer_id"`
	AnswerInstance int    `yaml:"answer_instance"`
	Value          any    `yaml:"value"`
}

type sectionRecord struct {
	SectionID string `yaml:"section_id"`
	Instance  int    `yaml:"instance"`
	Status    string `yaml:"status"`
}

// LoadFile reads a YAML snapshot from disk.
func LoadFile(ctx context.Context, path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(ctx, f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Decode reads a YAML snapshot. An empty document yields an empty snapshot.
func Decode(ctx context.Context, r io.Reader) (Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("failed to decode yaml: %w", err)
	}

	recorded := make([]answers.Answer, 0, len(doc.Answers))
	for i, rec := range doc.Answers {
		if rec.AnswerID == "" {
			return Snapshot{}, fmt.Errorf("answer %d: answer_id is required", i)
		}
		if rec.GroupInstance < 0 || rec.AnswerInstance < 0 {
			return Snapshot{}, fmt.Errorf("answer %d (%s): instances must be non-negative", i, rec.AnswerID)
		}
		v, err := answers.ValueOf(rec.Value)
		if err != nil {
			return Snapshot{}, fmt.Errorf("answer %d (%s): %w", i, rec.AnswerID, err)
		}
		recorded = append(recorded, answers.Answer{
			GroupID:        rec.GroupID,
			GroupInstance:  rec.GroupInstance,
			BlockID:        rec.BlockID,
			AnswerID:       rec.AnswerID,
			AnswerInstance: rec.AnswerInstance,
			Value:          v,
		})
	}

	statuses := make(map[progress.SectionKey]progress.CompletionStatus, len(doc.Sections))
	for i, rec := range doc.Sections {
		status, err := progress.ParseStatus(rec.Status)
		if err != nil {
			return Snapshot{}, fmt.Errorf("section %d (%s): %w", i, rec.SectionID, err)
		}
		statuses[progress.SectionKey{SectionID: rec.SectionID, Instance: rec.Instance}] = status
	}

	logger.Debug("Snapshot decoded.",
		"answers", len(recorded),
		"completed", len(doc.Completed),
		"sections", len(statuses),
	)

	return New(
		answers.NewStore(recorded...),
		metadata.New(doc.Metadata),
		progress.NewStore(doc.Completed, statuses),
	), nil
}
