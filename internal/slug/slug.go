// Package slug derives URL-safe identifiers and allocates them without
// collisions inside one collection. Allocation is optimistic: the unique
// index at the storage layer is the actual guarantee, and inserts that
// lose the race are retried with the next counter value.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/sethvargo/go-retry"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/maisonbleue/backend/internal/repository"
)

// ErrConflict is returned once insert retries are exhausted.
var ErrConflict = errors.New("could not allocate a unique slug")

// Placeholder is used when normalization leaves nothing, so a bare
// numeric suffix can never become the whole slug.
const Placeholder = "item"

const maxInsertAttempts = 5

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
var multiDash = regexp.MustCompile(`-{2,}`)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make normalizes free-form text into a slug: accents folded to ASCII,
// lowercased, runs of anything else collapsed to a single hyphen.
func Make(s string) string {
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return Placeholder
	}
	return s
}

// ExistsFunc reports whether a candidate is already taken within the
// target collection.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// InsertFunc persists the entity under the given slug. It must surface
// repository.ErrUniqueViolation when the slug index rejects the row.
type InsertFunc func(ctx context.Context, slug string) error

// Allocate returns the first candidate the predicate reports free:
// base, base-1, base-2, ...
func Allocate(ctx context.Context, desired string, exists ExistsFunc) (string, error) {
	base := Make(desired)

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// AllocateInsert runs the full optimistic cycle: allocate a free slug,
// try to insert, and on a storage uniqueness violation re-allocate
// (the predicate now sees the winner's row) up to maxInsertAttempts
// times before giving up with ErrConflict.
func AllocateInsert(ctx context.Context, desired string, exists ExistsFunc, insert InsertFunc) (string, error) {
	var allocated string

	backoff := retry.WithMaxRetries(maxInsertAttempts-1, retry.NewConstant(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		s, err := Allocate(ctx, desired, exists)
		if err != nil {
			return err
		}

		if err := insert(ctx, s); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return retry.RetryableError(err)
			}
			return err
		}

		allocated = s
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return "", ErrConflict
		}
		return "", err
	}

	return allocated, nil
}
