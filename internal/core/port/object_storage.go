package port

import "context"

// ObjectStoragePort is the outbound port for the binary object store.
type ObjectStoragePort interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	// PublicURL returns the externally reachable URL for a stored key.
	PublicURL(key string) string
}
