package assets

import (
	"context"
	"errors"
	"fmt"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/repository"
	custom_error "assetdirectory/pkg/errors"
	"assetdirectory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// AssetsRepository serves the catalog from the local database.
type AssetsRepository struct {
	repository *repository.Repository
}

var _ catalog.Catalog = (*AssetsRepository)(nil)

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

var filterAliases = map[string]string{
	"serial_number": "a.serial_number",
	"qr_code_id":    "a.qr_code_id",
	"facility":      "f.id",
	"asset_class":   "a.asset_class",
	"location":      "l.id",
	"status":        "a.status",
}

func (r *AssetsRepository) Search(ctx context.Context, req catalog.SearchRequest) (*catalog.SearchResponse, error) {
	count, err := r.countQuery(req).CountContext(ctx)
	if err != nil {
		return nil, wrapQueryError("count assets", err)
	}

	var flatAssets []models.FlatAssetRecord
	if err := r.listQuery(req).Executor().ScanStructsContext(ctx, &flatAssets); err != nil {
		return nil, wrapQueryError("select assets", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return &catalog.SearchResponse{Results: assets, Count: int(count)}, nil
}

func (r *AssetsRepository) LookupRegistry(ctx context.Context, code string) (*models.RegistryRecord, error) {
	var record models.RegistryRecord
	found, err := r.registryQuery(code).Executor().ScanStructContext(ctx, &record)
	if err != nil {
		return nil, wrapQueryError("lookup qr code", err)
	}
	if !found {
		return nil, fmt.Errorf("lookup qr code %s: %w", code, catalog.ErrNotFound)
	}

	return &record, nil
}

func (r *AssetsRepository) Facility(ctx context.Context, id string) (*models.Facility, error) {
	var facility models.Facility
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("f.id").As("facility_id"),
			goqu.I("f.name").As("facility_name"),
		).
		From(goqu.T("facilities").As("f")).
		Where(goqu.Ex{"f.id": id})

	found, err := query.Executor().ScanStructContext(ctx, &facility)
	if err != nil {
		return nil, wrapQueryError("select facility", err)
	}
	if !found {
		return nil, fmt.Errorf("get facility %s: %w", id, catalog.ErrNotFound)
	}

	return &facility, nil
}

func (r *AssetsRepository) listQuery(req catalog.SearchRequest) *goqu.SelectDataset {
	query := r.getAssetQuery().
		Where(r.filters(req)...).
		Order(goqu.I("a.name").Asc(), goqu.I("a.id").Asc())

	if req.Limit > 0 {
		query = query.Limit(uint(req.Limit))
	}
	if req.Offset > 0 {
		query = query.Offset(uint(req.Offset))
	}

	return query
}

func (r *AssetsRepository) countQuery(req catalog.SearchRequest) *goqu.SelectDataset {
	return r.joinedAssets().Where(r.filters(req)...)
}

func (r *AssetsRepository) registryQuery(code string) *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("q.asset_id").As("asset_id"),
			goqu.I("q.qr_code_id").As("qr_code_id"),
			goqu.I("a.name").As("asset_name"),
		).
		From(goqu.T("asset_qr_registry").As("q")).
		InnerJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"q.asset_id": goqu.I("a.id")}),
		).
		Where(goqu.Ex{"q.code": code})
}

func (r *AssetsRepository) filters(req catalog.SearchRequest) []goqu.Expression {
	conditions := repository.NewQueryBuilder().
		AddCondition("serial_number", req.SerialNumber).
		AddCondition("qr_code_id", req.QRCodeID).
		AddCondition("facility", req.Facility).
		AddCondition("asset_class", req.AssetClass).
		AddCondition("location", req.Location).
		AddCondition("status", req.Status)

	var expressions []goqu.Expression
	if conditions.Len() > 0 {
		expressions = append(expressions, conditions.BuildConditions(filterAliases))
	}

	if req.Name != "" {
		expressions = append(expressions, goqu.I("a.name").ILike(contains(req.Name)))
	}
	if req.SearchText != "" {
		pattern := contains(req.SearchText)
		expressions = append(expressions, goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("a.serial_number").ILike(pattern),
			goqu.I("a.qr_code_id").ILike(pattern),
		))
	}
	if req.WarrantyAMCEndOfValidityBefore != "" {
		expressions = append(expressions, goqu.I("a.warranty_amc_end_of_validity").Lte(req.WarrantyAMCEndOfValidityBefore))
	}
	if req.WarrantyAMCEndOfValidityAfter != "" {
		expressions = append(expressions, goqu.I("a.warranty_amc_end_of_validity").Gte(req.WarrantyAMCEndOfValidityAfter))
	}

	return expressions
}

func (r *AssetsRepository) joinedAssets() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("asset_locations").As("l"),
			goqu.On(goqu.Ex{"a.location_id": goqu.I("l.id")}),
		).
		LeftJoin(
			goqu.T("facilities").As("f"),
			goqu.On(goqu.Ex{"l.facility_id": goqu.I("f.id")}),
		)
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.joinedAssets().Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.name").As("asset_name"),
		"a.serial_number",
		"a.qr_code_id",
		"a.asset_class",
		"a.status",
		"a.is_working",
		"a.latest_status",
		"a.warranty_amc_end_of_validity",
		goqu.I("l.id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("f.id").As("facility_id"),
		goqu.I("f.name").As("facility_name"),
	)
}

func contains(value string) string {
	return "%" + value + "%"
}

func wrapQueryError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return custom_error.WrapDBError(action, string(pqErr.Code))
	}
	return fmt.Errorf("unable to %s: %w", action, err)
}
