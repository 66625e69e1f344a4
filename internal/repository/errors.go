package repository

import "errors"

// ErrUniqueViolation is surfaced when a unique index rejects an insert
// or update. For slugs this is the storage-enforced half of the
// optimistic allocation cycle in internal/slug.
var ErrUniqueViolation = errors.New("unique constraint violation")
