// Package storage provides archive backends for finished report documents.
package storage

import "context"

// ArchiveStore persists a rendered report document under a key and returns
// the URL it can be retrieved from.
type ArchiveStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
