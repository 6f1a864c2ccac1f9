// Package blob opens the object store that archives address book snapshots.
// Only this package imports the concrete drivers under internal/infra/blob.
package blob

import (
	"context"
	"fmt"
	"foodwhere/internal/blob/core"
	"foodwhere/internal/infra/blob/fs"
	"foodwhere/internal/infra/blob/memory"
	"foodwhere/internal/infra/blob/s3"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// Store is the interface for blob storage backends.
	Store = core.Store
	// S3Config configures the S3 driver.
	S3Config = s3.Config
)

// Config selects and configures a blob driver.
type Config struct {
	Driver Driver
	Root   string
	S3     S3Config
}

// Open constructs the configured store. An empty driver means fs.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", core.DriverFilesystem:
		return fs.New(cfg.Root)
	case core.DriverS3:
		return s3.New(ctx, cfg.S3)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
