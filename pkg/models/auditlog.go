package models

import (
	"encoding/json"
	"time"
)

const ResourceAssetExport = "asset_export"

type AuditLog struct {
	ID           int                    `json:"id" db:"id"`
	ResourceID   string                 `json:"resource_id" db:"resource_id"`
	ResourceType string                 `json:"resource_type" db:"resource_type"`
	Action       string                 `json:"action" db:"action"` // e.g. export, publish
	DataRaw      string                 `json:"-" db:"data"`
	Data         map[string]interface{} `json:"data" db:"-"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UserID       string                 `json:"user_id,omitempty" db:"user_id"`
}

func (a *AuditLog) LoadFromDB() {
	if a.DataRaw != "" {
		_ = json.Unmarshal([]byte(a.DataRaw), &a.Data)
	}
}

// ExportEvent describes one completed export.
type ExportEvent struct {
	FacilityID string
	Format     string
	Records    int
	UserID     string
}

func (e ExportEvent) CreateLogView() AuditLog {
	scope := e.FacilityID
	if scope == "" {
		scope = "all"
	}

	return AuditLog{
		ResourceID:   scope,
		ResourceType: ResourceAssetExport,
		UserID:       e.UserID,
	}
}
