package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"assetdirectory/internal/repository"
	"assetdirectory/pkg/auditlog"
	"assetdirectory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

var _ auditlog.Store = (*AuditLogRepository)(nil)

func (r *AuditLogRepository) PersistLog(ctx context.Context, auditlog models.AuditLog, auditLogData interface{}) error {
	query, err := r.insertQuery(auditlog, auditLogData)
	if err != nil {
		return err
	}

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) insertQuery(auditlog models.AuditLog, auditLogData interface{}) (*goqu.InsertDataset, error) {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	record := goqu.Record{
		"resource_id":   auditlog.ResourceID,
		"resource_type": auditlog.ResourceType,
		"action":        auditlog.Action,
		"data":          string(dataJSON),
	}
	if auditlog.UserID != "" {
		record["user_id"] = auditlog.UserID
	}

	return r.repository.GoquDBWrapper.Insert("audit_logs").Rows(record), nil
}

func (r *AuditLogRepository) GetResourceLog(ctx context.Context, resourceID, resourceType string) ([]models.AuditLog, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.data").As("data"),
			goqu.I("a.created_at").As("created_at"),
			goqu.COALESCE(goqu.I("a.user_id"), "").As("user_id"),
		).
		Where(goqu.Ex{
			"a.resource_id":   resourceID,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.created_at").Desc())

	var auditLogs []models.AuditLog
	if err := query.Executor().ScanStructsContext(ctx, &auditLogs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	for i := range auditLogs {
		auditLogs[i].LoadFromDB()
	}

	return auditLogs, nil
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}
