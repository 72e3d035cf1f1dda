package cursor

import "errors"

var (
	// ErrNoRegistry is returned when a marker or span is created without a registry.
	ErrNoRegistry = errors.New("no marker registry")

	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("marker not found")

	// ErrAmbiguous is returned when a lookup that expects one match finds several.
	// The operation is aborted without mutating anything.
	ErrAmbiguous = errors.New("marker selector is ambiguous")

	// ErrInvalidSelector is returned for selectors that are neither "all", an id,
	// a list of ids, nor a marker.
	ErrInvalidSelector = errors.New("invalid marker selector")

	// ErrDuplicateID is returned when a new label would show an id that another
	// marker in the registry already shows.
	ErrDuplicateID = errors.New("display id already in use")

	// ErrNoEventSource is returned when pointer interaction is requested on a
	// registry that was built without an event source.
	ErrNoEventSource = errors.New("registry has no pointer event source")
)

// ErrRemoved is returned when an operation targets a marker that is no longer on its surface.
var ErrRemoved = errors.New("marker has been removed")
