// Package blob is the storage collaborator for image artifacts: original
// artwork and exported annotations. Implementations return a stable retrieval
// URL; the session record stores that URL, never the bytes.
package blob

import "context"

type Storage interface {
	// Put stores the bytes under a key derived from pathHint and returns the
	// stable public URL.
	Put(ctx context.Context, pathHint string, data []byte, contentType string) (string, error)
}
