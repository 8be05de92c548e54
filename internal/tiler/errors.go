package tiler

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// A required source file or metadata document is absent. Fatal.
type MissingInputError struct {
	Path   string
	Reason string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s: %s", e.Path, e.Reason)
}

// No usable reference system identifier could be determined. Fatal: the run aborts rather than
// silently tiling points in an unknown frame.
type UnsupportedProjectionError struct {
	Srs    string
	Reason string
}

func (e *UnsupportedProjectionError) Error() string {
	if e.Srs == "" {
		return "unsupported projection: " + e.Reason
	}
	return fmt.Sprintf("unsupported projection %q: %s", e.Srs, e.Reason)
}

// A single input file failed to decode. The file is skipped and the run continues.
type CorruptSourceFileError struct {
	Path string
	Err  error
}

func (e *CorruptSourceFileError) Error() string {
	return fmt.Sprintf("corrupt source file %s: %v", e.Path, e.Err)
}

func (e *CorruptSourceFileError) Unwrap() error {
	return e.Err
}

// Resume validation failed. Non-fatal, triggers a full regeneration.
type InvalidTilesetStateError struct {
	Dir    string
	Reason string
}

func (e *InvalidTilesetStateError) Error() string {
	return fmt.Sprintf("invalid tileset state in %s: %s", e.Dir, e.Reason)
}

// A builder invariant did not hold. This is a defect, not a user error.
type InvariantViolationError struct {
	Depth     int
	BoundsMin r3.Vector
	BoundsMax r3.Vector
	Reason    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation at depth %d bounds [%v %v]: %s", e.Depth, e.BoundsMin, e.BoundsMax, e.Reason)
}
