package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductFormData is the inbound payload for creating or updating a product.
// The version fields are embedded, so the JSON document is flat.
type ProductFormData struct {
	Name             string        `json:"name" validate:"required,max=128"`
	SKU              string        `json:"sku" validate:"required,max=255"`
	EcosystemID      *int          `json:"ecosystem_id,omitempty" validate:"omitempty,gt=0,lte=2147483647"`
	BrandID          int           `json:"brand_id" validate:"required,gt=0,lte=2147483647"`
	DescriptionShort *string       `json:"description_short,omitempty" validate:"omitempty,max=255"`
	DescriptionLong  *string       `json:"description_long,omitempty"`
	SequenceOrder    *int          `json:"sequence_order,omitempty" validate:"omitempty,gte=0,lte=255"`
	ProductStatus    ProductStatus `json:"product_status,omitempty" validate:"omitempty,oneof=active not_for_sale inactive draft"`

	VersionFormData
}

// VersionFormData describes one version: its detail, pricing, content and links.
type VersionFormData struct {
	VersionName             string  `json:"version_name" validate:"required,max=128"`
	VersionDescriptionShort *string `json:"version_description_short,omitempty" validate:"omitempty,max=256"`
	VersionDescriptionLong  *string `json:"version_description_long,omitempty"`
	QualifyingEducation     bool    `json:"qualifying_education"`
	ContinuingEducation     bool    `json:"continuing_education"`
	NotForIndividualSale    bool    `json:"not_for_individual_sale"`
	CreditHours             *int    `json:"credit_hours,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	AccessPeriod            *string `json:"access_period,omitempty" validate:"omitempty,max=128"`
	Platform                *string `json:"platform,omitempty" validate:"omitempty,max=128"`
	HybridDelivery          bool    `json:"hybrid_delivery"`
	CertificationsAwarded   *string `json:"certifications_awarded,omitempty" validate:"omitempty,max=256"`
	Owner                   *string `json:"owner,omitempty" validate:"omitempty,max=128"`

	BasePrice                  *float64 `json:"base_price" validate:"required,gte=0,lte=99999999.99"`
	MSRP                       *float64 `json:"msrp,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	COGS                       *float64 `json:"cogs,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	DeliveryCost               *float64 `json:"delivery_cost,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	SubscriptionPrice          *float64 `json:"subscription_price,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	PromotionalPrice           *float64 `json:"promotional_price,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	DiscountPercentage         *float64 `json:"discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	RecognitionPeriodMonths    *int     `json:"recognition_period_months,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	AdditionalCertificatePrice *float64 `json:"additional_certificate_price,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	CostCenter                 *int     `json:"cost_center,omitempty" validate:"omitempty,gt=0,lte=2147483647"`
	RevenueAllocationMethod    *string  `json:"revenue_allocation_method,omitempty" validate:"omitempty,max=64"`
	DiscountEligibility        *string  `json:"discount_eligibility,omitempty" validate:"omitempty,max=64"`
	DiscountType               *string  `json:"discount_type,omitempty" validate:"omitempty,max=64"`
	RecognitionStartTrigger    *string  `json:"recognition_start_trigger,omitempty" validate:"omitempty,max=64"`
	DeferredRevenueAccount     *string  `json:"deferred_revenue_account,omitempty" validate:"omitempty,max=64"`
	IncomeAccount              *string  `json:"income_account,omitempty" validate:"omitempty,max=64"`
	ProfitCenter               *string  `json:"profit_center,omitempty" validate:"omitempty,max=64"`
	RevenueCategory            *string  `json:"revenue_category,omitempty" validate:"omitempty,max=64"`
	RevenueSubcategory         *string  `json:"revenue_subcategory,omitempty" validate:"omitempty,max=64"`
	RevenueForecastCategory    *string  `json:"revenue_forecast_category,omitempty" validate:"omitempty,max=64"`

	ContentVersion        *string `json:"content_version,omitempty" validate:"omitempty,max=64"`
	ContentFormat         *string `json:"content_format,omitempty" validate:"omitempty,max=64"`
	MobileCompatible      bool    `json:"mobile_compatible"`
	ContentLength         *string `json:"content_length,omitempty" validate:"omitempty,max=64"`
	InstructorInformation *string `json:"instructor_information,omitempty" validate:"omitempty,max=256"`
	LanguageIDs           []int   `json:"language_ids" validate:"omitempty,dive,gt=0,lte=32767"`

	FulfillmentPlatformIDs []int `json:"fulfillment_platform_ids" validate:"omitempty,dive,gt=0,lte=2147483647"`
	FeatureIDs             []int `json:"feature_ids" validate:"omitempty,dive,gt=0,lte=2147483647"`
}

// ApplyDefaults fills the optional fields the way an empty form means them.
func (f *ProductFormData) ApplyDefaults() {
	if f.ProductStatus == "" {
		f.ProductStatus = ProductStatusActive
	}
	f.VersionFormData.ApplyDefaults()
}

// ApplyDefaults replaces nil link lists with empty ones.
func (v *VersionFormData) ApplyDefaults() {
	if v.LanguageIDs == nil {
		v.LanguageIDs = []int{}
	}
	if v.FulfillmentPlatformIDs == nil {
		v.FulfillmentPlatformIDs = []int{}
	}
	if v.FeatureIDs == nil {
		v.FeatureIDs = []int{}
	}
}

// HasContent reports whether any content field was supplied.
func (v *VersionFormData) HasContent() bool {
	return nonBlank(v.ContentVersion) ||
		nonBlank(v.ContentFormat) ||
		nonBlank(v.ContentLength) ||
		nonBlank(v.InstructorInformation) ||
		v.MobileCompatible ||
		len(v.LanguageIDs) > 0
}

// Price converts a validated money field to a two-place decimal.
func Price(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f).Round(2))
}

func nonBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// LearningPathType enumerates how a learning path groups offerings.
type LearningPathType string

const (
	LearningPathBundle   LearningPathType = "bundle"
	LearningPathPathway  LearningPathType = "pathway"
	LearningPathSequence LearningPathType = "sequence"
)

// LearningPathForm is the payload for creating a learning path.
type LearningPathForm struct {
	Name        string           `json:"name" validate:"required,max=128"`
	Description *string          `json:"description,omitempty"`
	PathType    LearningPathType `json:"path_type" validate:"required,oneof=bundle pathway sequence"`
	Active      *bool            `json:"active,omitempty"`
}

// LearningPathItemForm is the payload for adding an offering to a path.
type LearningPathItemForm struct {
	OfferingID             string  `json:"offering_id" validate:"required,uuid"`
	IsRequired             *bool   `json:"is_required,omitempty"`
	PrerequisiteOfferingID *string `json:"prerequisite_offering_id,omitempty"`
}
