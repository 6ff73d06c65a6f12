package cmd

import (
	"context"
	"database/sql"
	"errors"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/config"
	"assetdirectory/internal/core/container"
	"assetdirectory/pkg/auditlog"
	"assetdirectory/pkg/notification"

	"go.uber.org/zap"
)

// backend is the connected catalog plus the audit trail next to it.
type backend struct {
	catalog  catalog.Catalog
	auditLog *auditlog.Auditlog
	db       *sql.DB
}

func (b *backend) Close() {
	if b.db != nil {
		b.db.Close()
	}
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, db, err := container.NewCatalog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &backend{catalog: c, auditLog: container.NewAuditLog(db, log), db: db}, nil
}

// failureNotifier logs notifications and remembers the last one so a command
// can exit non-zero with it.
type failureNotifier struct {
	notification.Recorder
	log *notification.LogNotifier
}

func newFailureNotifier(log *zap.Logger) *failureNotifier {
	return &failureNotifier{log: notification.NewLogNotifier(log)}
}

func (n *failureNotifier) Error(msg string) {
	n.Recorder.Error(msg)
	n.log.Error(msg)
}

func (n *failureNotifier) Err() error {
	if msg := n.Last(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
