package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	saved map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{saved: map[string][]byte{}}
}

func (f *fakeBlobStore) Save(_ context.Context, filename string, content []byte, _ string) (string, error) {
	f.saved[filename] = content
	return "/uploads/" + filename, nil
}

// Smallest payloads http.DetectContentType recognizes as images.
var pngHeader = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 8))
var gifHeader = []byte("GIF89a" + strings.Repeat("\x00", 8))

func TestUpload(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	svc := NewUploadService(store, 1024)

	res, err := svc.Upload(context.Background(), "photo.png", "image/png", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(res.Filename, ".png"))
	assert.Contains(t, store.saved, res.Filename)
}

func TestUploadUnsupportedType(t *testing.T) {
	t.Parallel()

	svc := NewUploadService(newFakeBlobStore(), 1024)

	_, err := svc.Upload(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadTooLarge(t *testing.T) {
	t.Parallel()

	svc := NewUploadService(newFakeBlobStore(), 4)

	_, err := svc.Upload(context.Background(), "photo.gif", "image/gif", gifHeader)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

// A text file renamed to .png with a spoofed MIME type must be caught
// by the content sniff.
func TestUploadSpoofedImage(t *testing.T) {
	t.Parallel()

	svc := NewUploadService(newFakeBlobStore(), 1024)

	_, err := svc.Upload(context.Background(), "fake.png", "image/png", []byte("just some text, not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestUploadRandomizesFilename(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	svc := NewUploadService(store, 1024)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "same.png", "image/png", pngHeader)
	require.NoError(t, err)
	second, err := svc.Upload(ctx, "same.png", "image/png", pngHeader)
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}
