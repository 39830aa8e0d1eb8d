package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/fsutil"
	"github.com/specialistvlad/surveynav/internal/schema"
)

// Loader reads survey schemas from HCL files.
type Loader struct{}

// NewLoader creates a new HCL schema loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and returns the
// validated survey. Exactly one `survey` block must be present; top-level
// `section` blocks are appended to it in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*schema.Survey, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	var (
		survey        *surveyBlock
		extraSections []*sectionBlock
	)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, s := range root.Surveys {
			if survey != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, hcl.Diagnostics{{
					Severity: hcl.DiagError,
					Summary:  "Duplicate survey block",
					Detail:   fmt.Sprintf("Only one survey block is allowed. Another was defined at %s.", survey.DefRange),
					Subject:  s.DefRange.Ptr(),
				}})
			}
			survey = s
		}
		extraSections = append(extraSections, root.Sections...)
	}

	if survey == nil {
		return nil, fmt.Errorf("no survey block found in %d HCL file(s)", len(hclFiles))
	}
	survey.Sections = append(survey.Sections, extraSections...)

	result, err := l.translateSurvey(ctx, survey)
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"survey_id", result.ID,
		"sections", len(result.Sections),
		"groups", len(result.Groups()),
	)
	return result, nil
}

// findAllHCLFiles returns the .hcl files under every path, without duplicates.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; wasSeen {
				continue
			}
			seen[f] = struct{}{}
			allFiles = append(allFiles, f)
		}
	}
	return allFiles, nil
}
