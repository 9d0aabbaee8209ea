package models

import "github.com/google/uuid"

// ProductStatus is the catalog status shown to admins. It is derived from the
// offering's active and not_for_sale flags.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusNotForSale ProductStatus = "not_for_sale"
	ProductStatusInactive   ProductStatus = "inactive" // alias of not_for_sale
	ProductStatusDraft      ProductStatus = "draft"
)

// Flags maps a status to the (active, not_for_sale) pair stored on the offering.
// An empty status means active.
func (s ProductStatus) Flags() (active, notForSale bool) {
	switch s {
	case ProductStatusNotForSale, ProductStatusInactive:
		return false, true
	case ProductStatusDraft:
		return false, false
	default:
		return true, false
	}
}

// StatusFromFlags is the inverse of Flags.
func StatusFromFlags(active, notForSale bool) ProductStatus {
	switch {
	case notForSale:
		return ProductStatusNotForSale
	case active:
		return ProductStatusActive
	default:
		return ProductStatusDraft
	}
}

// Offering is a sellable product and the aggregate root of the catalog.
// OfferingID is assigned on creation and never changes.
type Offering struct {
	OfferingID       uuid.UUID `db:"offering_id" json:"offering_id"`
	Name             string    `db:"name" json:"name"`
	SKU              string    `db:"sku" json:"sku"`
	Active           bool      `db:"active" json:"active"`
	DescriptionShort *string   `db:"description_short" json:"description_short"`
	DescriptionLong  *string   `db:"description_long" json:"description_long"`
	NotForSale       bool      `db:"not_for_sale" json:"not_for_sale"`
	SequenceOrder    *int      `db:"sequence_order" json:"sequence_order"`
	EcosystemID      *int      `db:"ecosystem_id" json:"ecosystem_id"`
}

// CatalogStatus returns the status derived from the offering's flags.
func (o *Offering) CatalogStatus() ProductStatus {
	return StatusFromFlags(o.Active, o.NotForSale)
}

// OfferingBrand links an offering to a brand.
type OfferingBrand struct {
	ID         int       `db:"id" json:"id"`
	OfferingID uuid.UUID `db:"offering_id" json:"offering_id"`
	BrandID    int       `db:"brand_id" json:"brand_id"`
}

// OfferingProduct links an offering to one of its SKU versions.
type OfferingProduct struct {
	OfferingID   uuid.UUID `db:"offering_id" json:"offering_id"`
	SkuVersionID int       `db:"sku_version_id" json:"sku_version"`
}
