package models

import "time"

// Ecosystem is a top-level grouping a brand belongs to.
type Ecosystem struct {
	EcosystemID   int     `db:"ecosystem_id" json:"ecosystem_id"`
	EcosystemName *string `db:"ecosystem_name" json:"ecosystem_name"`
	ProfessionID  *int    `db:"profession_id" json:"profession_id"`
	BrandID       *int    `db:"brand_id" json:"brand_id"`
}

// BrandLookup is a brand and its default ecosystem.
type BrandLookup struct {
	ID          int     `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	EcosystemID *int    `db:"ecosystem_id" json:"ecosystem_id"`
}

// FulfillmentPlatform is a system that delivers purchased versions.
type FulfillmentPlatform struct {
	FulfillmentPlatformID int       `db:"fulfillment_platform_id" json:"fulfillment_platform_id"`
	Name                  *string   `db:"name" json:"name"`
	URL                   *string   `db:"url" json:"url"`
	DescriptionShort      *string   `db:"description_short" json:"description_short"`
	DescriptionLong       *string   `db:"description_long" json:"description_long"`
	Active                bool      `db:"active" json:"active"`
	CreateDate            time.Time `db:"create_date" json:"create_date"`
}

// ProductFeature is an entry of the feature catalog.
type ProductFeature struct {
	ProductFeatureID   int     `db:"product_feature_id" json:"product_feature_id"`
	FeatureName        *string `db:"feature_name" json:"feature_name"`
	FeatureDescription *string `db:"feature_description" json:"feature_description"`
	Active             bool    `db:"active" json:"active"`
}

// LanguageLookup is a content language.
type LanguageLookup struct {
	LanguageID   int     `db:"language_id" json:"language_id"`
	LanguageName *string `db:"language_name" json:"language_name"`
	LanguageAbbr *string `db:"language_abbr" json:"language_abbr"`
}

// CostCenter is a revenue cost center referenced by pricing rows.
type CostCenter struct {
	ID                    int     `db:"id" json:"id"`
	CostCenterName        *string `db:"cost_center_name" json:"cost_center_name"`
	CostCenterDescription *string `db:"cost_center_description" json:"cost_center_description"`
}
