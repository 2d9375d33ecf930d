package bootstrap

import (
	"context"

	"slabstock/internal/blob"
	"slabstock/internal/pkg/config"

	"go.uber.org/fx"
)

var BlobModule = fx.Module("blob",
	fx.Provide(
		NewBlobStore,
	),
)

func NewBlobStore(cfg config.Config) (blob.Store, error) {
	return blob.Open(context.Background(), cfg.Blob)
}
