package navigator

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/surveynav/internal/location"
)

// ErrLocationNotFound is matched by every *LocationNotFoundError.
var ErrLocationNotFound = errors.New("location not found in path")

// LocationNotFoundError reports a position that is not on the respondent's
// current path, usually a stale or tampered URL.
type LocationNotFoundError struct {
	Location location.Location
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location %s not found in path", e.Location)
}

func (e *LocationNotFoundError) Unwrap() error {
	return ErrLocationNotFound
}
