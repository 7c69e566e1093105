package storage

import "context"

// FileStorage abstracts the document file store.
type FileStorage interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
