package service

import (
	"context"
	"time"

	"github.com/assetlabel/inventory/internal/infra/blob"
)

// QRCache stores QR data URLs by asset identifier.
type QRCache interface {
	Get(ctx context.Context, assetID string) (string, bool, error)
	Set(ctx context.Context, assetID, dataURL string) error
	Delete(ctx context.Context, assetID string) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, body any) error
}

type JobQueue interface {
	Enqueue(ctx context.Context, queue string, body any) error
}

type BlobStore interface {
	Key(kind, fileName string) string
	UploadFile(ctx context.Context, key, localPath string) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error)
}
