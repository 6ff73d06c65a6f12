package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"assetdirectory/pkg/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q, use %s or %s", value, FormatJSON, FormatCSV)
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

type Serializer interface {
	Serialize(records []models.Asset) ([]byte, error)
}

type SerializerFunc func(records []models.Asset) ([]byte, error)

func (f SerializerFunc) Serialize(records []models.Asset) ([]byte, error) {
	return f(records)
}

// DefaultSerializers returns the JSON and CSV serializers.
func DefaultSerializers() map[Format]Serializer {
	return map[Format]Serializer{
		FormatJSON: SerializerFunc(SerializeJSON),
		FormatCSV:  SerializerFunc(SerializeCSV),
	}
}

func SerializeJSON(records []models.Asset) ([]byte, error) {
	return json.Marshal(records)
}

// CSVHeader is the column layout shared by CSV files and spreadsheets.
var CSVHeader = []string{
	"id",
	"name",
	"serial_number",
	"qr_code_id",
	"asset_class",
	"status",
	"is_working",
	"latest_status",
	"warranty_amc_end_of_validity",
	"location_id",
	"location_name",
	"facility_id",
	"facility_name",
}

// Row flattens a record into CSVHeader order.
func Row(a models.Asset) []string {
	return []string{
		a.ID,
		a.Name,
		a.SerialNumber,
		a.QRCodeID,
		a.AssetClass,
		a.Status,
		strconv.FormatBool(a.IsWorking),
		a.LatestStatus,
		a.WarrantyAMCEndOfValidity,
		a.Location.ID,
		a.Location.Name,
		a.Location.Facility.ID,
		a.Location.Facility.Name,
	}
}

func SerializeCSV(records []models.Asset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(Row(record)); err != nil {
			return nil, err
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
