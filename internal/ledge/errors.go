package ledge

import "errors"

// Pipeline errors. Only ErrInvalidMesh is fatal for a mesh; the rest are
// reported per mesh or per region and never abort other regions.
var (
	ErrInvalidMesh    = errors.New("invalid mesh")
	ErrNoMarkup       = errors.New("mesh has no vertex colors other than the sentinel")
	ErrEmptyRegion    = errors.New("color region has no boundary edges")
	ErrRibbonMismatch = errors.New("ribbon top and bottom point counts differ")
	ErrRibbonTooShort = errors.New("ribbon needs at least 2 points")
)
