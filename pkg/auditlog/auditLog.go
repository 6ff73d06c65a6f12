package auditlog

import (
	"context"

	"assetdirectory/pkg/models"

	"go.uber.org/zap"
)

// Store persists audit entries. A nil Store keeps entries in the log only.
type Store interface {
	PersistLog(ctx context.Context, auditlog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	store  Store
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(ctx context.Context, action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	fields := []zap.Field{
		zap.String("action", action),
		zap.String("resource_type", auditLog.ResourceType),
		zap.String("resource_id", auditLog.ResourceID),
		zap.String("user_id", auditLog.UserID),
	}

	if a.store == nil {
		a.logger.Info("audit", append(fields, zap.Any("data", data))...)
		return
	}

	if err := a.store.PersistLog(ctx, auditLog, data); err != nil {
		a.logger.Error("Unable to create AuditLog entry", append(fields, zap.Error(err))...)
		return
	}

	a.logger.Debug("Created AuditLog entry", fields...)
}

func NewAuditLog(store Store, logger *zap.Logger) *Auditlog {
	return &Auditlog{store: store, logger: logger}
}
