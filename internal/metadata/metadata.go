// Package metadata exposes survey and respondent metadata to routing
// conditions. Keys are addressed by dotted paths such as
// "variant_flags.flag_1".
package metadata

import (
	"maps"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/surveynav/internal/answers"
)

// VariantFlagsKey is the sub-map holding boolean routing flags.
const VariantFlagsKey = "variant_flags"

// Metadata is a read-only view over decoded metadata.
type Metadata struct {
	raw map[string]any
}

// New wraps decoded metadata. The top level map is copied; nested values are
// shared and must not be modified by the caller afterwards.
func New(raw map[string]any) Metadata {
	return Metadata{raw: maps.Clone(raw)}
}

// Raw returns the top level values, e.g. for URL rendering.
func (m Metadata) Raw() map[string]any {
	return m.raw
}

// Lookup resolves a dotted path. It reports false when any segment is missing
// or when an intermediate value is not a map.
func (m Metadata) Lookup(path string) (cty.Value, bool) {
	if path == "" {
		return cty.NilVal, false
	}

	var cur any = m.raw
	for _, segment := range strings.Split(path, ".") {
		next, ok := child(cur, segment)
		if !ok {
			return cty.NilVal, false
		}
		cur = next
	}

	v, err := answers.ValueOf(cur)
	if err != nil || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

// Flag returns variant_flags.<name> when it is a boolean.
func (m Metadata) Flag(name string) (value bool, ok bool) {
	v, ok := m.Lookup(VariantFlagsKey + "." + name)
	if !ok || v.Type() != cty.Bool || !v.IsKnown() {
		return false, false
	}
	return v.True(), true
}

func child(v any, key string) (any, bool) {
	switch node := v.(type) {
	case map[string]any:
		c, ok := node[key]
		return c, ok
	case map[any]any:
		c, ok := node[key]
		return c, ok
	case map[string]bool:
		c, ok := node[key]
		return c, ok
	case map[string]string:
		c, ok := node[key]
		return c, ok
	default:
		return nil, false
	}
}
