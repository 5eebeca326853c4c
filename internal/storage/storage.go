// Package storage provides blob storage for consent documents and
// signature rasters behind a narrow System interface.
package storage

import "context"

// System defines blob storage operations keyed by relative path.
type System interface {
	Init() error
	Store(ctx context.Context, key string, data []byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
