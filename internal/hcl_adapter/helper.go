package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with a
// zero-width placeholder, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file, while a placeholder for an
	// omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// exprStrings evaluates a literal expression into the strings a condition
// compares against. A single value and a list of values are both accepted.
func exprStrings(expr hcl.Expression, attrName string) ([]string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	values := answers.Strings(val)
	if len(values) == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s value", attrName),
			Detail:   fmt.Sprintf("The %s attribute must be a non-empty string, number, bool or list of them.", attrName),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return values, nil
}

func errorDiag(subject hcl.Range, summary, detailFormat string, args ...any) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(detailFormat, args...),
		Subject:  subject.Ptr(),
	}
}
