package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

const offeringColumns = `o.offering_id, o.name, o.sku, o.active, o.description_short, o.description_long,
        o.not_for_sale, o.sequence_order, o.ecosystem_id`

const (
	qBrandLinksByOfferings = `
        SELECT ob.id, ob.offering_id, ob.brand_id,
               b.name AS brand_name, b.description AS brand_description, b.ecosystem_id AS brand_ecosystem_id
        FROM offering_brand ob
        JOIN brand_lookup b ON b.id = ob.brand_id
        WHERE ob.offering_id = ANY($1::uuid[])
        ORDER BY ob.id`

	qOfferingProductsByOfferings = `
        SELECT offering_id, sku_version_id
        FROM offering_product
        WHERE offering_id = ANY($1::uuid[])
        ORDER BY sku_version_id`

	qVersionsByOfferings = `
        SELECT sku_version_id, offering_id, version_name
        FROM sku_version
        WHERE offering_id = ANY($1::uuid[])
        ORDER BY sku_version_id`

	qDetailsByVersions = `
        SELECT sku_version_detail_id, sku_version_id, version_name, active, qualifying_education,
               continuing_education, description_short, description_long, not_for_individual_sale,
               credit_hours, access_period, platform, hybrid_delivery, certifications_awarded, owner
        FROM sku_version_detail
        WHERE sku_version_id = ANY($1)
        ORDER BY sku_version_detail_id`

	qPlatformLinksByVersions = `
        SELECT vp.sku_fulfillment_platform_id, vp.sku_version_id, vp.fulfillment_platform_id,
               fp.name AS platform_name, fp.url AS platform_url,
               fp.description_short AS platform_description_short,
               fp.description_long AS platform_description_long,
               fp.active AS platform_active, fp.create_date AS platform_create_date
        FROM sku_version_fulfillment_platform vp
        JOIN fulfillment_platform fp ON fp.fulfillment_platform_id = vp.fulfillment_platform_id
        WHERE vp.sku_version_id = ANY($1)
        ORDER BY vp.sku_fulfillment_platform_id`

	qPricingByDetails = `
        SELECT sku_version_pricing_id, sku_version_detail_id, base_price, cogs, cost_center,
               delivery_cost, subscription_price, msrp, promotional_price, discount_percentage,
               recognition_period_months, revenue_allocation_method, discount_eligibility,
               discount_type, additional_certificate_price, recognition_start_trigger,
               deferred_revenue_account, income_account, profit_center, revenue_category,
               revenue_subcategory, revenue_forecast_category
        FROM sku_version_pricing
        WHERE sku_version_detail_id = ANY($1)
        ORDER BY sku_version_pricing_id`

	qFeatureLinksByDetails = `
        SELECT vf.sku_feature_id, vf.sku_version_detail_id, vf.feature_id,
               vf.regulatory_modifier, vf.pricing_modifier,
               pf.feature_name, pf.feature_description, pf.active AS feature_active
        FROM sku_version_features vf
        JOIN product_features pf ON pf.product_feature_id = vf.feature_id
        WHERE vf.sku_version_detail_id = ANY($1)
        ORDER BY vf.sku_feature_id`

	qContentsByDetails = `
        SELECT sku_version_content_id, sku_version_detail_id, content_version, content_format,
               mobile_compatible, description_short, description_long, content_length,
               instructor_information, refresh_date, create_date
        FROM sku_version_content
        WHERE sku_version_detail_id = ANY($1)
        ORDER BY sku_version_content_id`

	qContentLanguagesByContents = `
        SELECT cl.content_language_id, cl.sku_version_content_id, cl.language_id,
               l.language_name, l.language_abbr
        FROM content_language cl
        JOIN language_lookup l ON l.language_id = cl.language_id
        WHERE cl.sku_version_content_id = ANY($1)
        ORDER BY cl.content_language_id`
)

type brandLinkRow struct {
	models.OfferingBrand
	BrandName        *string `db:"brand_name"`
	BrandDescription *string `db:"brand_description"`
	BrandEcosystemID *int    `db:"brand_ecosystem_id"`
}

type platformLinkRow struct {
	models.SkuVersionFulfillmentPlatform
	PlatformName             *string   `db:"platform_name"`
	PlatformURL              *string   `db:"platform_url"`
	PlatformDescriptionShort *string   `db:"platform_description_short"`
	PlatformDescriptionLong  *string   `db:"platform_description_long"`
	PlatformActive           bool      `db:"platform_active"`
	PlatformCreateDate       time.Time `db:"platform_create_date"`
}

type featureLinkRow struct {
	models.SkuVersionFeature
	FeatureName        *string `db:"feature_name"`
	FeatureDescription *string `db:"feature_description"`
	FeatureActive      bool    `db:"feature_active"`
}

type contentLanguageRow struct {
	models.ContentLanguage
	LanguageName *string `db:"language_name"`
	LanguageAbbr *string `db:"language_abbr"`
}

// relationSet holds every row fetched for one batch of offerings.
type relationSet struct {
	offerings        []models.Offering
	brandLinks       []brandLinkRow
	offeringProducts []models.OfferingProduct
	versions         []models.SkuVersion
	details          []models.SkuVersionDetail
	platformLinks    []platformLinkRow
	pricing          []models.SkuVersionPricing
	featureLinks     []featureLinkRow
	contents         []models.SkuVersionContent
	contentLanguages []contentLanguageRow
}

// List returns every offering matching filter with all of its relations.
// Phase 1 selects the roots, phase 2 batch-fetches each relation level by the
// id set of the level above and the rows are merged in memory.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductWithRelations, error) {
	q, args := buildOfferingQuery(filter)

	set := &relationSet{}
	if err := sqlx.SelectContext(ctx, r.db, &set.offerings, q, args...); err != nil {
		return nil, fmt.Errorf("select offerings: %w", err)
	}
	if len(set.offerings) == 0 {
		return []models.ProductWithRelations{}, nil
	}

	if err := r.fetchRelations(ctx, set); err != nil {
		return nil, err
	}
	return assembleProducts(set), nil
}

// GetByID returns one aggregate through the same path as List.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductWithRelations, error) {
	products, err := r.List(ctx, models.ProductFilter{IDs: []uuid.UUID{id}})
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].OfferingID == id {
			return &products[i], nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (r *ProductRepository) fetchRelations(ctx context.Context, set *relationSet) error {
	offeringIDs := make([]string, 0, len(set.offerings))
	for _, o := range set.offerings {
		offeringIDs = append(offeringIDs, o.OfferingID.String())
	}

	// Level 1: rows keyed by offering.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return selectRelation(gctx, r, &set.brandLinks, "brand links", qBrandLinksByOfferings, pq.Array(offeringIDs))
	})
	g.Go(func() error {
		return selectRelation(gctx, r, &set.offeringProducts, "offering products", qOfferingProductsByOfferings, pq.Array(offeringIDs))
	})
	g.Go(func() error {
		return selectRelation(gctx, r, &set.versions, "sku versions", qVersionsByOfferings, pq.Array(offeringIDs))
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(set.versions) == 0 {
		return nil
	}

	// Level 2: rows keyed by version.
	versionIDs := make([]int64, 0, len(set.versions))
	for _, v := range set.versions {
		versionIDs = append(versionIDs, int64(v.SkuVersionID))
	}
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		return selectRelation(gctx, r, &set.details, "version details", qDetailsByVersions, pq.Array(versionIDs))
	})
	g.Go(func() error {
		return selectRelation(gctx, r, &set.platformLinks, "platform links", qPlatformLinksByVersions, pq.Array(versionIDs))
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(set.details) == 0 {
		return nil
	}

	// Level 3: rows keyed by detail.
	detailIDs := make([]int64, 0, len(set.details))
	for _, d := range set.details {
		detailIDs = append(detailIDs, int64(d.SkuVersionDetailID))
	}
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		return selectRelation(gctx, r, &set.pricing, "pricing", qPricingByDetails, pq.Array(detailIDs))
	})
	g.Go(func() error {
		return selectRelation(gctx, r, &set.featureLinks, "feature links", qFeatureLinksByDetails, pq.Array(detailIDs))
	})
	g.Go(func() error {
		return selectRelation(gctx, r, &set.contents, "contents", qContentsByDetails, pq.Array(detailIDs))
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if len(set.contents) == 0 {
		return nil
	}

	// Level 4: languages keyed by content.
	contentIDs := make([]int64, 0, len(set.contents))
	for _, c := range set.contents {
		contentIDs = append(contentIDs, int64(c.SkuVersionContentID))
	}
	return selectRelation(ctx, r, &set.contentLanguages, "content languages", qContentLanguagesByContents, pq.Array(contentIDs))
}

func selectRelation(ctx context.Context, r *ProductRepository, dest interface{}, name, q string, args ...interface{}) error {
	if err := sqlx.SelectContext(ctx, r.db, dest, q, args...); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("select %s: %w", name, err)
	}
	return nil
}

// buildOfferingQuery builds the phase-1 root query for filter.
func buildOfferingQuery(filter models.ProductFilter) (string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, fmt.Sprintf("(o.name ILIKE $%d OR o.sku ILIKE $%d OR o.description_short ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+likeEscaper.Replace(s)+"%")
		argIdx++
	}
	if filter.EcosystemID > 0 {
		where = append(where, fmt.Sprintf("o.ecosystem_id = $%d", argIdx))
		args = append(args, filter.EcosystemID)
		argIdx++
	}
	if filter.BrandID > 0 {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM offering_brand ob WHERE ob.offering_id = o.offering_id AND ob.brand_id = $%d)", argIdx))
		args = append(args, filter.BrandID)
		argIdx++
	}
	switch filter.Status {
	case models.ProductStatusActive:
		where = append(where, "o.active = TRUE AND o.not_for_sale = FALSE")
	case models.ProductStatusNotForSale, models.ProductStatusInactive:
		where = append(where, "o.not_for_sale = TRUE")
	case models.ProductStatusDraft:
		where = append(where, "o.active = FALSE AND o.not_for_sale = FALSE")
	}
	if len(filter.IDs) > 0 {
		ids := make([]string, 0, len(filter.IDs))
		for _, id := range filter.IDs {
			ids = append(ids, id.String())
		}
		where = append(where, fmt.Sprintf("o.offering_id = ANY($%d::uuid[])", argIdx))
		args = append(args, pq.Array(ids))
	}

	q := `SELECT ` + offeringColumns + `
        FROM offering o
        WHERE ` + strings.Join(where, " AND ") + `
        ORDER BY o.sequence_order NULLS LAST, o.name, o.offering_id`
	return q, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// assembleProducts nests the fetched rows under their offerings. Every
// relation is deduplicated by its own primary key, so repeated rows never
// produce repeated children. Input order is preserved.
func assembleProducts(set *relationSet) []models.ProductWithRelations {
	products := make([]models.ProductWithRelations, 0, len(set.offerings))
	index := make(map[uuid.UUID]int, len(set.offerings))
	for _, o := range set.offerings {
		if _, dup := index[o.OfferingID]; dup {
			continue
		}
		index[o.OfferingID] = len(products)
		products = append(products, models.ProductWithRelations{
			Offering:         o,
			Status:           o.CatalogStatus(),
			OfferingBrands:   []models.OfferingBrandWithBrand{},
			OfferingProducts: []models.OfferingProduct{},
			SkuVersions:      []models.SkuVersionWithRelations{},
		})
	}

	seenBrandLinks := map[int]bool{}
	for _, row := range set.brandLinks {
		i, ok := index[row.OfferingID]
		if !ok || seenBrandLinks[row.ID] {
			continue
		}
		seenBrandLinks[row.ID] = true
		products[i].OfferingBrands = append(products[i].OfferingBrands, models.OfferingBrandWithBrand{
			OfferingBrand: row.OfferingBrand,
			Brand: &models.BrandLookup{
				ID:          row.BrandID,
				Name:        row.BrandName,
				Description: row.BrandDescription,
				EcosystemID: row.BrandEcosystemID,
			},
		})
	}

	type productLink struct {
		offering uuid.UUID
		version  int
	}
	seenProductLinks := map[productLink]bool{}
	for _, row := range set.offeringProducts {
		i, ok := index[row.OfferingID]
		key := productLink{row.OfferingID, row.SkuVersionID}
		if !ok || seenProductLinks[key] {
			continue
		}
		seenProductLinks[key] = true
		products[i].OfferingProducts = append(products[i].OfferingProducts, row)
	}

	// Details, contents and versions are built bottom-up and attached by id.
	contents := map[int]*models.SkuVersionContentWithLanguages{}
	contentOrder := map[int][]int{} // detail id -> content ids
	for _, c := range set.contents {
		if _, dup := contents[c.SkuVersionContentID]; dup {
			continue
		}
		contents[c.SkuVersionContentID] = &models.SkuVersionContentWithLanguages{
			SkuVersionContent: c,
			ContentLanguages:  []models.ContentLanguageWithLanguage{},
		}
		contentOrder[c.SkuVersionDetailID] = append(contentOrder[c.SkuVersionDetailID], c.SkuVersionContentID)
	}
	seenLanguages := map[int]bool{}
	for _, row := range set.contentLanguages {
		c, ok := contents[row.SkuVersionContentID]
		if !ok || seenLanguages[row.ContentLanguageID] {
			continue
		}
		seenLanguages[row.ContentLanguageID] = true
		c.ContentLanguages = append(c.ContentLanguages, models.ContentLanguageWithLanguage{
			ContentLanguage: row.ContentLanguage,
			Language: &models.LanguageLookup{
				LanguageID:   row.LanguageID,
				LanguageName: row.LanguageName,
				LanguageAbbr: row.LanguageAbbr,
			},
		})
	}

	// One detail per version by convention: the lowest id wins.
	details := map[int]*models.SkuVersionDetailWithRelations{}
	detailByVersion := map[int]int{}
	for _, d := range set.details {
		if _, dup := details[d.SkuVersionDetailID]; dup {
			continue
		}
		if _, has := detailByVersion[d.SkuVersionID]; has {
			continue
		}
		detailByVersion[d.SkuVersionID] = d.SkuVersionDetailID
		details[d.SkuVersionDetailID] = &models.SkuVersionDetailWithRelations{
			SkuVersionDetail:   d,
			SkuVersionPricing:  []models.SkuVersionPricing{},
			SkuVersionFeatures: []models.SkuVersionFeatureWithFeature{},
			SkuVersionContents: []models.SkuVersionContentWithLanguages{},
		}
	}
	seenPricing := map[int]bool{}
	for _, p := range set.pricing {
		d, ok := details[p.SkuVersionDetailID]
		if !ok || seenPricing[p.SkuVersionPricingID] {
			continue
		}
		seenPricing[p.SkuVersionPricingID] = true
		d.SkuVersionPricing = append(d.SkuVersionPricing, p)
	}
	seenFeatures := map[int]bool{}
	for _, row := range set.featureLinks {
		d, ok := details[row.SkuVersionDetailID]
		if !ok || seenFeatures[row.SkuFeatureID] {
			continue
		}
		seenFeatures[row.SkuFeatureID] = true
		d.SkuVersionFeatures = append(d.SkuVersionFeatures, models.SkuVersionFeatureWithFeature{
			SkuVersionFeature: row.SkuVersionFeature,
			Feature: &models.ProductFeature{
				ProductFeatureID:   row.FeatureID,
				FeatureName:        row.FeatureName,
				FeatureDescription: row.FeatureDescription,
				Active:             row.FeatureActive,
			},
		})
	}
	for detailID, ids := range contentOrder {
		d, ok := details[detailID]
		if !ok {
			continue
		}
		for _, id := range ids {
			d.SkuVersionContents = append(d.SkuVersionContents, *contents[id])
		}
	}

	platforms := map[int][]models.SkuVersionFulfillmentPlatformWithPlatform{}
	seenPlatforms := map[int]bool{}
	for _, row := range set.platformLinks {
		if seenPlatforms[row.SkuFulfillmentPlatformID] {
			continue
		}
		seenPlatforms[row.SkuFulfillmentPlatformID] = true
		platforms[row.SkuVersionID] = append(platforms[row.SkuVersionID], models.SkuVersionFulfillmentPlatformWithPlatform{
			SkuVersionFulfillmentPlatform: row.SkuVersionFulfillmentPlatform,
			FulfillmentPlatform: &models.FulfillmentPlatform{
				FulfillmentPlatformID: row.FulfillmentPlatformID,
				Name:                  row.PlatformName,
				URL:                   row.PlatformURL,
				DescriptionShort:      row.PlatformDescriptionShort,
				DescriptionLong:       row.PlatformDescriptionLong,
				Active:                row.PlatformActive,
				CreateDate:            row.PlatformCreateDate,
			},
		})
	}

	seenVersions := map[int]bool{}
	for _, v := range set.versions {
		i, ok := index[v.OfferingID]
		if !ok || seenVersions[v.SkuVersionID] {
			continue
		}
		seenVersions[v.SkuVersionID] = true
		version := models.SkuVersionWithRelations{
			SkuVersion:                     v,
			SkuVersionFulfillmentPlatforms: platforms[v.SkuVersionID],
		}
		if version.SkuVersionFulfillmentPlatforms == nil {
			version.SkuVersionFulfillmentPlatforms = []models.SkuVersionFulfillmentPlatformWithPlatform{}
		}
		if detailID, has := detailByVersion[v.SkuVersionID]; has {
			version.SkuVersionDetail = details[detailID]
		}
		products[i].SkuVersions = append(products[i].SkuVersions, version)
	}

	return products
}
