// internal/location/types.go
package location

// Location identifies a single screen. Two locations are equal iff all three
// fields match, so the type is safe to use with == and as a map key.
type Location struct {
	GroupID       string
	GroupInstance int
	BlockID       string
}

// New creates a Location.
func New(groupID string, groupInstance int, blockID string) Location {
	return Location{GroupID: groupID, GroupInstance: groupInstance, BlockID: blockID}
}

// InGroupInstance reports whether the location belongs to the given group instance.
func (l Location) InGroupInstance(groupID string, groupInstance int) bool {
	return l.GroupID == groupID && l.GroupInstance == groupInstance
}

// Index returns the position of loc within path, or -1 if it is not present.
// Only the first occurrence counts; re-entrant paths may contain a location twice.
func Index(path []Location, loc Location) int {
	for i, candidate := range path {
		if candidate == loc {
			return i
		}
	}
	return -1
}
