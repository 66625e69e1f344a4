// Package storage abstracts where uploaded images end up: a local
// directory served statically, or an S3 bucket.
package storage

import "context"

type Store interface {
	// Save persists the blob under filename and returns its public URL.
	Save(ctx context.Context, filename string, content []byte, contentType string) (string, error)
}
