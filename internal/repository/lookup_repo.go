package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/catalog_api/internal/models"
)

// LookupRepository reads the reference tables the product form selects from.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) ListBrands(ctx context.Context) ([]models.BrandLookup, error) {
	const q = `SELECT id, name, description, ecosystem_id FROM brand_lookup ORDER BY name, id`
	out := []models.BrandLookup{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) ListEcosystems(ctx context.Context) ([]models.Ecosystem, error) {
	const q = `SELECT ecosystem_id, ecosystem_name, profession_id, brand_id FROM ecosystem ORDER BY ecosystem_name, ecosystem_id`
	out := []models.Ecosystem{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) ListFulfillmentPlatforms(ctx context.Context) ([]models.FulfillmentPlatform, error) {
	const q = `
        SELECT fulfillment_platform_id, name, url, description_short, description_long, active, create_date
        FROM fulfillment_platform
        ORDER BY name, fulfillment_platform_id`
	out := []models.FulfillmentPlatform{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) ListFeatures(ctx context.Context) ([]models.ProductFeature, error) {
	const q = `
        SELECT product_feature_id, feature_name, feature_description, active
        FROM product_features
        ORDER BY feature_name, product_feature_id`
	out := []models.ProductFeature{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) ListLanguages(ctx context.Context) ([]models.LanguageLookup, error) {
	const q = `SELECT language_id, language_name, language_abbr FROM language_lookup ORDER BY language_name, language_id`
	out := []models.LanguageLookup{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LookupRepository) ListCostCenters(ctx context.Context) ([]models.CostCenter, error) {
	const q = `SELECT id, cost_center_name, cost_center_description FROM cost_center_lookup ORDER BY cost_center_name, id`
	out := []models.CostCenter{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}
