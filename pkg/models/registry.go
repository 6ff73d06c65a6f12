package models

// RegistryRecord is the registry entry behind a printed QR tag.
type RegistryRecord struct {
	AssetID  string `json:"id" db:"asset_id"`
	QRCodeID string `json:"qr_code_id" db:"qr_code_id"`
	Name     string `json:"name" db:"asset_name"`
}

// SearchKey is the catalog key the record resolves to. Older registry
// entries carry no code of their own, so the scanned code is used instead.
func (r *RegistryRecord) SearchKey(scanned string) string {
	if r.QRCodeID != "" {
		return r.QRCodeID
	}

	return scanned
}
