package sim

import "errors"

var (
	// ErrMissingDependency is returned when a module needs a sibling module that
	// is not attached to the same entity.
	ErrMissingDependency = errors.New("missing module dependency")

	// ErrUnsupportedShape is returned when a shape pair (or shape/constraint pair)
	// has no geometric test.
	ErrUnsupportedShape = errors.New("unsupported collision shape")

	// ErrDuplicateModule is returned when an entity already holds a module of the
	// same kind.
	ErrDuplicateModule = errors.New("duplicate module kind")

	// ErrForeignModule is returned when a module is added to an entity other than
	// the one it was constructed for.
	ErrForeignModule = errors.New("module belongs to another entity")

	// ErrFrictionMode is returned by a FrictionModule without an explicit mode.
	ErrFrictionMode = errors.New("friction mode not set")

	// ErrEntityRemoved is returned when updating an entity after OnRemove.
	ErrEntityRemoved = errors.New("entity removed")
)
