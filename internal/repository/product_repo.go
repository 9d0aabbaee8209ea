package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/catalog_api/internal/database"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// ProductRepository reads and writes the offering aggregate. Every write runs
// inside one transaction; reads go through List (see product_reader.go).
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const (
	qSelectBrand       = `SELECT id, ecosystem_id FROM brand_lookup WHERE id = $1`
	qFallbackEcosystem = `SELECT ecosystem_id FROM ecosystem ORDER BY ecosystem_id LIMIT 1`
	qLockOffering      = `SELECT active, description_short, description_long FROM offering WHERE offering_id = $1 FOR UPDATE`

	qInsertOffering = `
        INSERT INTO offering (offering_id, name, sku, active, description_short, description_long,
                              not_for_sale, sequence_order, ecosystem_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	qUpdateOffering = `
        UPDATE offering
        SET name = $2, sku = $3, active = $4, description_short = $5, description_long = $6,
            not_for_sale = $7, sequence_order = $8, ecosystem_id = $9
        WHERE offering_id = $1`

	qInsertSkuVersion = `INSERT INTO sku_version (offering_id, version_name) VALUES ($1, $2) RETURNING sku_version_id`
	qUpdateSkuVersion = `UPDATE sku_version SET version_name = $2 WHERE sku_version_id = $1`
	qFirstSkuVersion  = `SELECT sku_version_id FROM sku_version WHERE offering_id = $1 ORDER BY sku_version_id LIMIT 1`

	qInsertDetail = `
        INSERT INTO sku_version_detail (sku_version_id, version_name, active, qualifying_education,
                                        continuing_education, description_short, description_long,
                                        not_for_individual_sale, credit_hours, access_period, platform,
                                        hybrid_delivery, certifications_awarded, owner)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING sku_version_detail_id`

	qUpdateDetail = `
        UPDATE sku_version_detail
        SET version_name = $2, active = $3, qualifying_education = $4, continuing_education = $5,
            description_short = $6, description_long = $7, not_for_individual_sale = $8,
            credit_hours = $9, access_period = $10, platform = $11, hybrid_delivery = $12,
            certifications_awarded = $13, owner = $14
        WHERE sku_version_detail_id = $1`

	qFirstDetail = `SELECT sku_version_detail_id FROM sku_version_detail WHERE sku_version_id = $1 ORDER BY sku_version_detail_id LIMIT 1`

	qInsertPricing = `
        INSERT INTO sku_version_pricing (sku_version_detail_id, base_price, cogs, cost_center, delivery_cost,
                                         subscription_price, msrp, promotional_price, discount_percentage,
                                         recognition_period_months, revenue_allocation_method,
                                         discount_eligibility, discount_type, additional_certificate_price,
                                         recognition_start_trigger, deferred_revenue_account, income_account,
                                         profit_center, revenue_category, revenue_subcategory,
                                         revenue_forecast_category)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	qUpdatePricing = `
        UPDATE sku_version_pricing
        SET base_price = $2, cogs = $3, cost_center = $4, delivery_cost = $5, subscription_price = $6,
            msrp = $7, promotional_price = $8, discount_percentage = $9, recognition_period_months = $10,
            revenue_allocation_method = $11, discount_eligibility = $12, discount_type = $13,
            additional_certificate_price = $14, recognition_start_trigger = $15,
            deferred_revenue_account = $16, income_account = $17, profit_center = $18,
            revenue_category = $19, revenue_subcategory = $20, revenue_forecast_category = $21
        WHERE sku_version_pricing_id = $1`

	qFirstPricing = `SELECT sku_version_pricing_id FROM sku_version_pricing WHERE sku_version_detail_id = $1 ORDER BY sku_version_pricing_id LIMIT 1`

	qInsertContent = `
        INSERT INTO sku_version_content (sku_version_detail_id, content_version, content_format,
                                         mobile_compatible, description_short, description_long,
                                         content_length, instructor_information)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING sku_version_content_id`

	qInsertContentLanguage = `INSERT INTO content_language (sku_version_content_id, language_id) VALUES ($1, $2)`
	qInsertFeatureLink     = `INSERT INTO sku_version_features (sku_version_detail_id, feature_id) VALUES ($1, $2)`
	qInsertPlatformLink    = `INSERT INTO sku_version_fulfillment_platform (sku_version_id, fulfillment_platform_id) VALUES ($1, $2)`
	qInsertOfferingProduct = `INSERT INTO offering_product (offering_id, sku_version_id) VALUES ($1, $2)`
	qInsertOfferingBrand   = `INSERT INTO offering_brand (offering_id, brand_id) VALUES ($1, $2)`
	qUpdateOfferingBrand   = `UPDATE offering_brand SET brand_id = $2 WHERE offering_id = $1`
)

// deleteStatements remove an offering and everything it owns, children first.
var deleteStatements = []struct {
	name string
	q    string
}{
	{"content languages", `
        DELETE FROM content_language WHERE sku_version_content_id IN (
            SELECT c.sku_version_content_id FROM sku_version_content c
            JOIN sku_version_detail d ON d.sku_version_detail_id = c.sku_version_detail_id
            JOIN sku_version v ON v.sku_version_id = d.sku_version_id
            WHERE v.offering_id = $1)`},
	{"contents", `
        DELETE FROM sku_version_content WHERE sku_version_detail_id IN (
            SELECT d.sku_version_detail_id FROM sku_version_detail d
            JOIN sku_version v ON v.sku_version_id = d.sku_version_id
            WHERE v.offering_id = $1)`},
	{"feature links", `
        DELETE FROM sku_version_features WHERE sku_version_detail_id IN (
            SELECT d.sku_version_detail_id FROM sku_version_detail d
            JOIN sku_version v ON v.sku_version_id = d.sku_version_id
            WHERE v.offering_id = $1)`},
	{"pricing", `
        DELETE FROM sku_version_pricing WHERE sku_version_detail_id IN (
            SELECT d.sku_version_detail_id FROM sku_version_detail d
            JOIN sku_version v ON v.sku_version_id = d.sku_version_id
            WHERE v.offering_id = $1)`},
	{"details", `
        DELETE FROM sku_version_detail WHERE sku_version_id IN (
            SELECT sku_version_id FROM sku_version WHERE offering_id = $1)`},
	{"platform links", `
        DELETE FROM sku_version_fulfillment_platform WHERE sku_version_id IN (
            SELECT sku_version_id FROM sku_version WHERE offering_id = $1)`},
	{"offering products", `DELETE FROM offering_product WHERE offering_id = $1`},
	{"sku versions", `DELETE FROM sku_version WHERE offering_id = $1`},
	{"brand links", `DELETE FROM offering_brand WHERE offering_id = $1`},
	{"learning path prerequisites", `UPDATE learning_path_item SET prerequisite_offering_id = NULL WHERE prerequisite_offering_id = $1`},
	{"learning path items", `DELETE FROM learning_path_item WHERE offering_id = $1`},
	{"offering", `DELETE FROM offering WHERE offering_id = $1`},
}

// versionOwner carries the offering values a new detail inherits.
type versionOwner struct {
	Active           bool    `db:"active"`
	DescriptionShort *string `db:"description_short"`
	DescriptionLong  *string `db:"description_long"`
}

// Create inserts an offering with its first version, detail, pricing,
// optional content, links and brand link. It returns the new offering id.
func (r *ProductRepository) Create(ctx context.Context, form *models.ProductFormData) (uuid.UUID, error) {
	id := uuid.New()
	active, notForSale := form.ProductStatus.Flags()

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ecosystemID, err := resolveEcosystem(ctx, tx, form.BrandID, form.EcosystemID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, qInsertOffering,
			id, form.Name, form.SKU, active, form.DescriptionShort, form.DescriptionLong,
			notForSale, form.SequenceOrder, ecosystemID,
		); err != nil {
			return fmt.Errorf("insert offering: %w", err)
		}

		owner := versionOwner{Active: active, DescriptionShort: form.DescriptionShort, DescriptionLong: form.DescriptionLong}
		if _, err := insertVersion(ctx, tx, id, owner, &form.VersionFormData); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, qInsertOfferingBrand, id, form.BrandID); err != nil {
			return fmt.Errorf("insert offering brand: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update rewrites the offering, its first version, that version's first
// detail and first pricing row, and its brand link. Missing detail or
// pricing rows are inserted. Other versions are left untouched.
func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, form *models.ProductFormData) error {
	active, notForSale := form.ProductStatus.Flags()

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := lockOffering(ctx, tx, id); err != nil {
			return err
		}
		ecosystemID, err := resolveEcosystem(ctx, tx, form.BrandID, form.EcosystemID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, qUpdateOffering,
			id, form.Name, form.SKU, active, form.DescriptionShort, form.DescriptionLong,
			notForSale, form.SequenceOrder, ecosystemID,
		); err != nil {
			return fmt.Errorf("update offering: %w", err)
		}

		var versionID int
		err = sqlx.GetContext(ctx, tx, &versionID, qFirstSkuVersion, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("select first version: %w", err)
		default:
			owner := versionOwner{Active: active, DescriptionShort: form.DescriptionShort, DescriptionLong: form.DescriptionLong}
			if err := updateVersion(ctx, tx, versionID, owner, &form.VersionFormData); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, qUpdateOfferingBrand, id, form.BrandID)
		if err != nil {
			return fmt.Errorf("update offering brand: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, qInsertOfferingBrand, id, form.BrandID); err != nil {
				return fmt.Errorf("insert offering brand: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the offering and every row it owns.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := lockOffering(ctx, tx, id); err != nil {
			return err
		}
		for _, stmt := range deleteStatements {
			if _, err := tx.ExecContext(ctx, stmt.q, id); err != nil {
				return fmt.Errorf("delete %s: %w", stmt.name, err)
			}
		}
		return nil
	})
}

// AddVersion appends a new version with its detail, pricing, content and
// links to an existing offering. It returns the new version id.
func (r *ProductRepository) AddVersion(ctx context.Context, id uuid.UUID, form *models.VersionFormData) (int, error) {
	var versionID int
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		owner, err := lockOffering(ctx, tx, id)
		if err != nil {
			return err
		}
		versionID, err = insertVersion(ctx, tx, id, *owner, form)
		return err
	})
	if err != nil {
		return 0, err
	}
	return versionID, nil
}

func lockOffering(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*versionOwner, error) {
	var owner versionOwner
	if err := sqlx.GetContext(ctx, tx, &owner, qLockOffering, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("lock offering: %w", err)
	}
	return &owner, nil
}

// resolveEcosystem checks the brand exists and picks the offering's
// ecosystem: the explicit one, else the brand's, else the lowest ecosystem.
// A nil result means no ecosystem exists at all.
func resolveEcosystem(ctx context.Context, tx *sqlx.Tx, brandID int, explicit *int) (*int, error) {
	var brand models.BrandLookup
	if err := sqlx.GetContext(ctx, tx, &brand, qSelectBrand, brandID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrBrandNotFound
		}
		return nil, fmt.Errorf("select brand: %w", err)
	}
	if explicit != nil {
		return explicit, nil
	}
	if brand.EcosystemID != nil {
		return brand.EcosystemID, nil
	}

	var fallback int
	if err := sqlx.GetContext(ctx, tx, &fallback, qFallbackEcosystem); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select fallback ecosystem: %w", err)
	}
	return &fallback, nil
}

func insertVersion(ctx context.Context, tx *sqlx.Tx, offeringID uuid.UUID, owner versionOwner, v *models.VersionFormData) (int, error) {
	var versionID int
	if err := tx.QueryRowxContext(ctx, qInsertSkuVersion, offeringID, v.VersionName).Scan(&versionID); err != nil {
		return 0, fmt.Errorf("insert sku version: %w", err)
	}

	detailID, err := insertDetail(ctx, tx, versionID, owner, v)
	if err != nil {
		return 0, err
	}
	if err := insertPricing(ctx, tx, detailID, v); err != nil {
		return 0, err
	}

	if v.HasContent() {
		var contentID int
		if err := tx.QueryRowxContext(ctx, qInsertContent,
			detailID, v.ContentVersion, v.ContentFormat, v.MobileCompatible,
			orDefault(v.VersionDescriptionShort, owner.DescriptionShort),
			orDefault(v.VersionDescriptionLong, owner.DescriptionLong),
			v.ContentLength, v.InstructorInformation,
		).Scan(&contentID); err != nil {
			return 0, fmt.Errorf("insert content: %w", err)
		}
		for _, languageID := range uniqueIDs(v.LanguageIDs) {
			if _, err := tx.ExecContext(ctx, qInsertContentLanguage, contentID, languageID); err != nil {
				return 0, fmt.Errorf("insert content language %d: %w", languageID, err)
			}
		}
	}

	for _, featureID := range uniqueIDs(v.FeatureIDs) {
		if _, err := tx.ExecContext(ctx, qInsertFeatureLink, detailID, featureID); err != nil {
			return 0, fmt.Errorf("insert feature link %d: %w", featureID, err)
		}
	}
	for _, platformID := range uniqueIDs(v.FulfillmentPlatformIDs) {
		if _, err := tx.ExecContext(ctx, qInsertPlatformLink, versionID, platformID); err != nil {
			return 0, fmt.Errorf("insert platform link %d: %w", platformID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, qInsertOfferingProduct, offeringID, versionID); err != nil {
		return 0, fmt.Errorf("insert offering product: %w", err)
	}
	return versionID, nil
}

func updateVersion(ctx context.Context, tx *sqlx.Tx, versionID int, owner versionOwner, v *models.VersionFormData) error {
	if _, err := tx.ExecContext(ctx, qUpdateSkuVersion, versionID, v.VersionName); err != nil {
		return fmt.Errorf("update sku version: %w", err)
	}

	var detailID int
	err := sqlx.GetContext(ctx, tx, &detailID, qFirstDetail, versionID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		detailID, err = insertDetail(ctx, tx, versionID, owner, v)
		if err != nil {
			return err
		}
		return insertPricing(ctx, tx, detailID, v)
	case err != nil:
		return fmt.Errorf("select first detail: %w", err)
	}

	if _, err := tx.ExecContext(ctx, qUpdateDetail, append([]interface{}{detailID}, detailArgs(owner, v)...)...); err != nil {
		return fmt.Errorf("update detail: %w", err)
	}

	var pricingID int
	err = sqlx.GetContext(ctx, tx, &pricingID, qFirstPricing, detailID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return insertPricing(ctx, tx, detailID, v)
	case err != nil:
		return fmt.Errorf("select first pricing: %w", err)
	}
	if _, err := tx.ExecContext(ctx, qUpdatePricing, append([]interface{}{pricingID}, pricingArgs(v)...)...); err != nil {
		return fmt.Errorf("update pricing: %w", err)
	}
	return nil
}

func insertDetail(ctx context.Context, tx *sqlx.Tx, versionID int, owner versionOwner, v *models.VersionFormData) (int, error) {
	var detailID int
	args := append([]interface{}{versionID}, detailArgs(owner, v)...)
	if err := tx.QueryRowxContext(ctx, qInsertDetail, args...).Scan(&detailID); err != nil {
		return 0, fmt.Errorf("insert detail: %w", err)
	}
	return detailID, nil
}

func insertPricing(ctx context.Context, tx *sqlx.Tx, detailID int, v *models.VersionFormData) error {
	args := append([]interface{}{detailID}, pricingArgs(v)...)
	if _, err := tx.ExecContext(ctx, qInsertPricing, args...); err != nil {
		return fmt.Errorf("insert pricing: %w", err)
	}
	return nil
}

// detailArgs are the detail columns after the key, in statement order.
func detailArgs(owner versionOwner, v *models.VersionFormData) []interface{} {
	return []interface{}{
		v.VersionName,
		owner.Active,
		v.QualifyingEducation,
		v.ContinuingEducation,
		orDefault(v.VersionDescriptionShort, owner.DescriptionShort),
		orDefault(v.VersionDescriptionLong, owner.DescriptionLong),
		v.NotForIndividualSale,
		v.CreditHours,
		v.AccessPeriod,
		v.Platform,
		v.HybridDelivery,
		v.CertificationsAwarded,
		v.Owner,
	}
}

// pricingArgs are the pricing columns after the key, in statement order.
func pricingArgs(v *models.VersionFormData) []interface{} {
	return []interface{}{
		models.Price(v.BasePrice).Decimal,
		models.Price(v.COGS),
		v.CostCenter,
		models.Price(v.DeliveryCost),
		models.Price(v.SubscriptionPrice),
		models.Price(v.MSRP),
		models.Price(v.PromotionalPrice),
		models.Price(v.DiscountPercentage),
		v.RecognitionPeriodMonths,
		v.RevenueAllocationMethod,
		v.DiscountEligibility,
		v.DiscountType,
		models.Price(v.AdditionalCertificatePrice),
		v.RecognitionStartTrigger,
		v.DeferredRevenueAccount,
		v.IncomeAccount,
		v.ProfitCenter,
		v.RevenueCategory,
		v.RevenueSubcategory,
		v.RevenueForecastCategory,
	}
}

func orDefault(v, fallback *string) *string {
	if v != nil {
		return v
	}
	return fallback
}

// uniqueIDs drops repeated ids, keeping first occurrences in order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
