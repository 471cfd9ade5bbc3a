package storage

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type bundleExporter interface {
	Export(ctx context.Context) (*model.SyncBundle, error)
}

type bundleReplacer interface {
	Replace(ctx context.Context, bundle model.SyncBundle) error
}

type uploader interface {
	Upload(ctx context.Context, bundle model.SyncBundle) (*cloud.SyncResult, error)
}

// MigrateToCloud uploads every local routine and workout. The server assigns
// new ids, so running it twice uploads the data twice.
func MigrateToCloud(ctx context.Context, from bundleExporter, to uploader) (*cloud.SyncResult, error) {
	bundle, err := from.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export local data: %w", err)
	}
	log.Debugf("uploading %d routines and %d workouts", len(bundle.Routines), len(bundle.Workouts))

	result, err := to.Upload(ctx, *bundle)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return result, nil
}

// MigrateToLocal replaces the local data with what the server holds.
func MigrateToLocal(ctx context.Context, from bundleExporter, to bundleReplacer) (*model.SyncBundle, error) {
	bundle, err := from.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if err := to.Replace(ctx, *bundle); err != nil {
		return nil, fmt.Errorf("replace local data: %w", err)
	}
	log.Debugf("downloaded %d routines and %d workouts", len(bundle.Routines), len(bundle.Workouts))
	return bundle, nil
}
