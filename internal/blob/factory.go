package blob

import (
	"context"
	"fmt"

	"gestor/internal/config"
)

// Open constructs the blob store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Blob) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFSStore(cfg.Root)
	case DriverS3:
		return NewS3Store(ctx, S3Config{
			Region:   cfg.Region,
			Bucket:   cfg.Bucket,
			Endpoint: cfg.Endpoint,
		})
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
