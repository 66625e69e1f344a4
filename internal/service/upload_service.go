package service

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/maisonbleue/backend/internal/storage"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrInvalidImage    = errors.New("file is not a valid image")
)

// allowedImageTypes maps accepted MIME types to the extension used when
// the original filename has none.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type UploadService struct {
	store    storage.Store
	maxBytes int64
}

func NewUploadService(store storage.Store, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes}
}

type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload validates the image and stores it under a random name. The
// declared MIME type is checked first, then the actual bytes are
// sniffed so a renamed non-image is rejected.
func (s *UploadService) Upload(ctx context.Context, originalName, declaredType string, content []byte) (*UploadResult, error) {
	if _, ok := allowedImageTypes[declaredType]; !ok {
		return nil, ErrUnsupportedType
	}

	if int64(len(content)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	sniffed := http.DetectContentType(content)
	if _, ok := allowedImageTypes[sniffed]; !ok {
		return nil, ErrInvalidImage
	}

	ext := allowedImageTypes[sniffed]
	if i := strings.LastIndex(originalName, "."); i >= 0 && i < len(originalName)-1 {
		ext = strings.ToLower(originalName[i+1:])
	}

	u := uuid.New()
	filename := hex.EncodeToString(u[:]) + "." + ext

	url, err := s.store.Save(ctx, filename, content, sniffed)
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: url, Filename: filename}, nil
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}
