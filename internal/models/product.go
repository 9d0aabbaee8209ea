package models

import "github.com/google/uuid"

// ProductWithRelations is the denormalized read model of one offering and
// every row it owns. Slices are never nil so they serialize as [].
type ProductWithRelations struct {
	Offering
	Status           ProductStatus             `json:"status"`
	OfferingBrands   []OfferingBrandWithBrand  `json:"offering_brands"`
	OfferingProducts []OfferingProduct         `json:"offering_products"`
	SkuVersions      []SkuVersionWithRelations `json:"sku_versions"`
}

// OfferingBrandWithBrand is a brand link with its brand row.
type OfferingBrandWithBrand struct {
	OfferingBrand
	Brand *BrandLookup `json:"brand"`
}

// SkuVersionWithRelations is a version with its detail and platform links.
// Detail is nil when the version has none yet.
type SkuVersionWithRelations struct {
	SkuVersion
	SkuVersionDetail               *SkuVersionDetailWithRelations              `json:"sku_version_detail"`
	SkuVersionFulfillmentPlatforms []SkuVersionFulfillmentPlatformWithPlatform `json:"sku_version_fulfillment_platforms"`
}

// SkuVersionDetailWithRelations is a detail with pricing, features and content.
type SkuVersionDetailWithRelations struct {
	SkuVersionDetail
	SkuVersionPricing  []SkuVersionPricing              `json:"sku_version_pricing"`
	SkuVersionFeatures []SkuVersionFeatureWithFeature   `json:"sku_version_features"`
	SkuVersionContents []SkuVersionContentWithLanguages `json:"sku_version_contents"`
}

// SkuVersionFeatureWithFeature is a feature link with its feature row.
type SkuVersionFeatureWithFeature struct {
	SkuVersionFeature
	Feature *ProductFeature `json:"feature"`
}

// SkuVersionContentWithLanguages is a content row with its languages.
type SkuVersionContentWithLanguages struct {
	SkuVersionContent
	ContentLanguages []ContentLanguageWithLanguage `json:"content_languages"`
}

// ContentLanguageWithLanguage is a content language link with its language row.
type ContentLanguageWithLanguage struct {
	ContentLanguage
	Language *LanguageLookup `json:"language"`
}

// SkuVersionFulfillmentPlatformWithPlatform is a platform link with its platform row.
type SkuVersionFulfillmentPlatformWithPlatform struct {
	SkuVersionFulfillmentPlatform
	FulfillmentPlatform *FulfillmentPlatform `json:"fulfillment_platform"`
}

// FirstVersion returns the version with the lowest id, or nil.
func (p *ProductWithRelations) FirstVersion() *SkuVersionWithRelations {
	if len(p.SkuVersions) == 0 {
		return nil
	}
	return &p.SkuVersions[0]
}

// FirstBrandID returns the brand of the first brand link, or 0.
func (p *ProductWithRelations) FirstBrandID() int {
	if len(p.OfferingBrands) == 0 {
		return 0
	}
	return p.OfferingBrands[0].BrandID
}

// ProductFilter narrows a product listing. Zero values disable a filter.
type ProductFilter struct {
	Search      string
	EcosystemID int
	BrandID     int
	Status      ProductStatus
	IDs         []uuid.UUID
}
