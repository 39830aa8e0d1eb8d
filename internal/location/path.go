// internal/location/path.go
package location

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex validates a group or block id segment.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// URLPrefix is the root of every questionnaire URL.
const URLPrefix = "/questionnaire"

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return segmentRegex.MatchString(name)
}

// String serializes the Location into its canonical path representation.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.GroupID)
	sb.WriteRune('/')
	sb.WriteString(strconv.Itoa(l.GroupInstance))
	sb.WriteRune('/')
	sb.WriteString(l.BlockID)
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler so a Location can be stored
// directly in session state.
func (l Location) MarshalText() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Validate checks that the location can be rendered and parsed back.
func (l Location) Validate() error {
	if !isValidSegmentName(l.GroupID) {
		return fmt.Errorf("invalid group id: %q", l.GroupID)
	}
	if !isValidSegmentName(l.BlockID) {
		return fmt.Errorf("invalid block id: %q", l.BlockID)
	}
	if l.GroupInstance < 0 {
		return fmt.Errorf("group instance must be non-negative, got %d", l.GroupInstance)
	}
	return nil
}

// Parse creates a Location from its canonical `group/instance/block` form.
func Parse(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("location cannot be empty")
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return Location{}, fmt.Errorf("location must have 3 segments, got %d: %q", len(parts), raw)
	}
	for _, part := range parts {
		if part == "" {
			return Location{}, fmt.Errorf("location contains empty segment: %q", raw)
		}
	}

	instance, err := strconv.Atoi(parts[1])
	if err != nil {
		return Location{}, fmt.Errorf("invalid group instance %q: %w", parts[1], err)
	}

	loc := Location{GroupID: parts[0], GroupInstance: instance, BlockID: parts[2]}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// URL renders the questionnaire URL for the location. The respondent-specific
// prefix comes from the eq_id, form_type and collection_exercise_sid metadata
// keys; missing keys render as empty segments.
func (l Location) URL(md map[string]any) string {
	segments := []string{
		metadataSegment(md, "eq_id"),
		metadataSegment(md, "form_type"),
		metadataSegment(md, "collection_exercise_sid"),
		l.GroupID,
		strconv.Itoa(l.GroupInstance),
		l.BlockID,
	}
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return URLPrefix + "/" + strings.Join(segments, "/") + "/"
}

// ParseURL extracts the Location from a URL produced by URL.
func ParseURL(raw string) (Location, error) {
	trimmed := strings.Trim(strings.TrimPrefix(raw, URLPrefix), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return Location{}, fmt.Errorf("url %q does not end with a location", raw)
	}
	tail := parts[len(parts)-3:]
	for i, p := range tail {
		unescaped, err := url.PathUnescape(p)
		if err != nil {
			return Location{}, fmt.Errorf("invalid url segment %q: %w", p, err)
		}
		tail[i] = unescaped
	}
	return Parse(strings.Join(tail, "/"))
}

func metadataSegment(md map[string]any, key string) string {
	v, ok := md[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
