package core

import (
	"context"
	"fmt"
	"foodwhere/internal/blob"
	"foodwhere/internal/config"
	"foodwhere/internal/infra/persistence/blobstore"
	"foodwhere/internal/infra/persistence/jsonfile"
	"foodwhere/internal/infra/persistence/memory"
	"foodwhere/internal/infra/persistence/postgres"
	"foodwhere/internal/infra/persistence/sqlite"
	"foodwhere/pkg/domain"
)

// OpenSnapshotStore builds the store named by cfg.Storage.Driver. Stores
// holding connections implement io.Closer.
func OpenSnapshotStore(ctx context.Context, cfg *config.Config) (domain.SnapshotStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case "", config.DriverFile:
		return jsonfile.NewStore(cfg.Storage.Path), nil
	case config.DriverSQLite:
		store, err := sqlite.NewStore(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverBlob:
		bucket, err := blob.Open(ctx, blob.Config{
			Driver: blob.Driver(cfg.Blob.Driver),
			Root:   cfg.Blob.Root,
			S3: blob.S3Config{
				Bucket:          cfg.Blob.S3.Bucket,
				Region:          cfg.Blob.S3.Region,
				Endpoint:        cfg.Blob.S3.Endpoint,
				AccessKeyID:     cfg.Blob.S3.AccessKeyID,
				SecretAccessKey: cfg.Blob.S3.SecretAccessKey,
				PathStyle:       cfg.Blob.S3.PathStyle,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		store := blobstore.New(bucket, cfg.Blob.Prefix)
		if cfg.Blob.Keep > 0 {
			return &pruningStore{Store: store, keep: cfg.Blob.Keep}, nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Storage.Driver)
	}
}

// pruningStore trims old snapshot versions after every save.
type pruningStore struct {
	*blobstore.Store
	keep int
}

func (p *pruningStore) Save(ctx context.Context, doc domain.Document) error {
	if err := p.Store.Save(ctx, doc); err != nil {
		return err
	}
	if _, err := p.Prune(ctx, p.keep); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
