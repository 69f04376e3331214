package domain

import "errors"

// Sentinel errors shared across the domain. Callers classify with
// errors.Is; the wrapped message carries the specifics.
var (
	// ErrValidation marks an entity that violates an invariant.
	ErrValidation = errors.New("validation failed")

	// ErrMissingField marks a canonical map without a required key.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidValue marks a field whose value has the wrong type or
	// is outside the accepted set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrStaleFix marks a fix whose target file changed after the fix
	// was generated.
	ErrStaleFix = errors.New("stale fix")

	// ErrNotRepository marks a git query against a directory that is
	// not a repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNotMonorepo marks a monorepo query against a single-package
	// project.
	ErrNotMonorepo = errors.New("not a monorepo")
)
