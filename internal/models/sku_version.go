package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SkuVersion is one labeled variant of an offering.
type SkuVersion struct {
	SkuVersionID int       `db:"sku_version_id" json:"sku_version_id"`
	OfferingID   uuid.UUID `db:"offering_id" json:"offering_id"`
	VersionName  *string   `db:"version_name" json:"version_name"`
}

// SkuVersionDetail holds the extended attributes of a version.
type SkuVersionDetail struct {
	SkuVersionDetailID    int     `db:"sku_version_detail_id" json:"sku_version_detail_id"`
	SkuVersionID          int     `db:"sku_version_id" json:"sku_version"`
	VersionName           *string `db:"version_name" json:"version_name"`
	Active                bool    `db:"active" json:"active"`
	QualifyingEducation   bool    `db:"qualifying_education" json:"qualifying_education"`
	ContinuingEducation   bool    `db:"continuing_education" json:"continuing_education"`
	DescriptionShort      *string `db:"description_short" json:"description_short"`
	DescriptionLong       *string `db:"description_long" json:"description_long"`
	NotForIndividualSale  bool    `db:"not_for_individual_sale" json:"not_for_individual_sale"`
	CreditHours           *int    `db:"credit_hours" json:"credit_hours"`
	AccessPeriod          *string `db:"access_period" json:"access_period"`
	Platform              *string `db:"platform" json:"platform"`
	HybridDelivery        bool    `db:"hybrid_delivery" json:"hybrid_delivery"`
	CertificationsAwarded *string `db:"certifications_awarded" json:"certifications_awarded"`
	Owner                 *string `db:"owner" json:"owner"`
}

// SkuVersionPricing holds the monetary terms of a version detail.
type SkuVersionPricing struct {
	SkuVersionPricingID        int                 `db:"sku_version_pricing_id" json:"sku_version_pricing_id"`
	SkuVersionDetailID         int                 `db:"sku_version_detail_id" json:"sku_version_detail_id"`
	BasePrice                  decimal.Decimal     `db:"base_price" json:"base_price"`
	COGS                       decimal.NullDecimal `db:"cogs" json:"cogs"`
	CostCenter                 *int                `db:"cost_center" json:"cost_center"`
	DeliveryCost               decimal.NullDecimal `db:"delivery_cost" json:"delivery_cost"`
	SubscriptionPrice          decimal.NullDecimal `db:"subscription_price" json:"subscription_price"`
	MSRP                       decimal.NullDecimal `db:"msrp" json:"msrp"`
	PromotionalPrice           decimal.NullDecimal `db:"promotional_price" json:"promotional_price"`
	DiscountPercentage         decimal.NullDecimal `db:"discount_percentage" json:"discount_percentage"`
	RecognitionPeriodMonths    *int                `db:"recognition_period_months" json:"recognition_period_months"`
	RevenueAllocationMethod    *string             `db:"revenue_allocation_method" json:"revenue_allocation_method"`
	DiscountEligibility        *string             `db:"discount_eligibility" json:"discount_eligibility"`
	DiscountType               *string             `db:"discount_type" json:"discount_type"`
	AdditionalCertificatePrice decimal.NullDecimal `db:"additional_certificate_price" json:"additional_certificate_price"`
	RecognitionStartTrigger    *string             `db:"recognition_start_trigger" json:"recognition_start_trigger"`
	DeferredRevenueAccount     *string             `db:"deferred_revenue_account" json:"deferred_revenue_account"`
	IncomeAccount              *string             `db:"income_account" json:"income_account"`
	ProfitCenter               *string             `db:"profit_center" json:"profit_center"`
	RevenueCategory            *string             `db:"revenue_category" json:"revenue_category"`
	RevenueSubcategory         *string             `db:"revenue_subcategory" json:"revenue_subcategory"`
	RevenueForecastCategory    *string             `db:"revenue_forecast_category" json:"revenue_forecast_category"`
}

// SkuVersionContent holds content delivery metadata of a version detail.
type SkuVersionContent struct {
	SkuVersionContentID   int        `db:"sku_version_content_id" json:"sku_version_content_id"`
	SkuVersionDetailID    int        `db:"sku_version_detail_id" json:"sku_version_detail_id"`
	ContentVersion        *string    `db:"content_version" json:"content_version"`
	ContentFormat         *string    `db:"content_format" json:"content_format"`
	MobileCompatible      bool       `db:"mobile_compatible" json:"mobile_compatible"`
	DescriptionShort      *string    `db:"description_short" json:"description_short"`
	DescriptionLong       *string    `db:"description_long" json:"description_long"`
	ContentLength         *string    `db:"content_length" json:"content_length"`
	InstructorInformation *string    `db:"instructor_information" json:"instructor_information"`
	RefreshDate           *time.Time `db:"refresh_date" json:"refresh_date"`
	CreateDate            time.Time  `db:"create_date" json:"create_date"`
}

// ContentLanguage links a content row to a language.
type ContentLanguage struct {
	ContentLanguageID   int `db:"content_language_id" json:"content_language_id"`
	SkuVersionContentID int `db:"sku_version_content_id" json:"sku_version_content_id"`
	LanguageID          int `db:"language_id" json:"language_id"`
}

// SkuVersionFeature links a version detail to a catalog feature.
type SkuVersionFeature struct {
	SkuFeatureID       int  `db:"sku_feature_id" json:"sku_feature_id"`
	SkuVersionDetailID int  `db:"sku_version_detail_id" json:"sku_version_detail_id"`
	FeatureID          int  `db:"feature_id" json:"feature_id"`
	RegulatoryModifier bool `db:"regulatory_modifier" json:"regulatory_modifier"`
	PricingModifier    bool `db:"pricing_modifier" json:"pricing_modifier"`
}

// SkuVersionFulfillmentPlatform links a version to a fulfillment platform.
type SkuVersionFulfillmentPlatform struct {
	SkuFulfillmentPlatformID int `db:"sku_fulfillment_platform_id" json:"sku_fulfillment_platform_id"`
	SkuVersionID             int `db:"sku_version_id" json:"sku_version_id"`
	FulfillmentPlatformID    int `db:"fulfillment_platform_id" json:"fulfillment_platform_id"`
}
