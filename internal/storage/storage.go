package storage

import (
	"context"
	"strings"
)

// Service resolves and removes profile images kept in object storage.
type Service interface {
	ObjectURL(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// IsAbsoluteURL reports whether ref already points somewhere outside the bucket.
func IsAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
