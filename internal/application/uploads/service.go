package uploads

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

var (
	ErrFileNameRequired       = errors.New("fileName is required")
	ErrUnsupportedContentType = errors.New("Only image uploads are allowed")
	ErrStorageUnavailable     = errors.New("Image storage is not configured")
)

// Presigner is the object store. *storage.Client implements it.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
	TTL() time.Duration
}

type Service struct {
	Storage Presigner
	Now     func() time.Time // defaults to time.Now
}

type UploadResult struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// PresignListingImage reserves listings/{owner}/{unixMillis}_{file} and returns
// a URL the browser can PUT the image to, plus the URL to store on the listing.
func (s *Service) PresignListingImage(ctx context.Context, ownerID, fileName, contentType string) (*UploadResult, error) {
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	name := SanitizeFileName(fileName)
	if name == "" {
		return nil, ErrFileNameRequired
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedContentType
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	key := fmt.Sprintf("listings/%s/%d_%s", ownerID, now().UnixMilli(), name)

	uploadURL, err := s.Storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}
	return &UploadResult{
		UploadURL: uploadURL,
		PublicURL: s.Storage.PublicURL(key),
		Key:       key,
		ExpiresIn: int(s.Storage.TTL().Seconds()),
	}, nil
}

// SanitizeFileName keeps the base name and replaces anything outside
// letters, digits, dot, dash and underscore with "_".
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	return out
}
