package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/storage"

	archiveclient "github.com/Fersca/YieldMaster/internal/client/archive"
	rowstoreclient "github.com/Fersca/YieldMaster/internal/client/rowstore"
	vertexclient "github.com/Fersca/YieldMaster/internal/client/vertex"
	workspaceclient "github.com/Fersca/YieldMaster/internal/client/workspace"
	"github.com/Fersca/YieldMaster/internal/config"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type Bootstrap struct {
	Log              *slog.Logger
	Firestore        *firestore.Client
	KMS              *gcpkms.KeyManagementClient
	Storage          *storage.Client
	VertexAdapter    *vertexclient.Adapter
	RowStoreAdapter  *rowstoreclient.Adapter
	WorkspaceAdapter *workspaceclient.Adapter
	ArchiveAdapter   *archiveclient.Adapter
	OAuthClientID    string
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.KMS, err = InitKMS(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.Storage, err = InitStorage(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.OAuthClientID, err = ResolveClientID(applicationCtx, cfg.ClientIDSecret)
	if err != nil {
		return bs, err
	}
	bs.VertexAdapter, err = vertexclient.NewAdapter(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
	if err != nil {
		return bs, err
	}
	bs.RowStoreAdapter = rowstoreclient.NewAdapter()
	bs.WorkspaceAdapter = workspaceclient.NewAdapter()
	bs.ArchiveAdapter = archiveclient.NewAdapter(bs.Storage, cfg.CaptureBucket)

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.VertexAdapter != nil {
		if err := bs.VertexAdapter.Close(); err != nil {
			bs.Log.Warn("vertex client close failed", "error", err)
		}
	}
	if bs.Storage != nil {
		if err := bs.Storage.Close(); err != nil {
			bs.Log.Warn("storage client close failed", "error", err)
		}
	}
	if bs.KMS != nil {
		if err := bs.KMS.Close(); err != nil {
			bs.Log.Warn("kms client close failed", "error", err)
		}
	}
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Warn("firestore client close failed", "error", err)
		}
	}
}
