package service

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/catalog_api/internal/metrics"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/sse"
	"github.com/GTDGit/catalog_api/internal/utils"
)

//go:generate mockgen -source=product_service.go -destination=mocks/product_store.mock.go -package=mocks

// ProductStore is the persistence the product service writes through.
type ProductStore interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductWithRelations, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductWithRelations, error)
	Create(ctx context.Context, form *models.ProductFormData) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, form *models.ProductFormData) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVersion(ctx context.Context, id uuid.UUID, form *models.VersionFormData) (int, error)
}

// EventPublisher receives an event after every committed write.
type EventPublisher interface {
	Publish(ctx context.Context, event *sse.ProductEvent) error
}

const (
	cloneNameSuffix    = " (Copy)"
	cloneSKUSuffix     = "-COPY"
	defaultVersionName = "v1.0"

	// Column widths of offerings.name and offerings.sku.
	maxNameLen = 128
	maxSKULen  = 255
)

// ProductService validates product payloads, runs writes through the store
// and returns the re-read aggregate.
type ProductService struct {
	store     ProductStore
	validator *Validator
	events    EventPublisher
}

// NewProductService constructs a ProductService.
func NewProductService(store ProductStore, validator *Validator, events EventPublisher) *ProductService {
	if events == nil {
		events = sse.NopPublisher{}
	}
	return &ProductService{
		store:     store,
		validator: validator,
		events:    events,
	}
}

// List returns every product matching filter.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductWithRelations, error) {
	return s.store.List(ctx, filter)
}

// Get returns one product aggregate.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.ProductWithRelations, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates form and creates a new product.
func (s *ProductService) Create(ctx context.Context, form *models.ProductFormData) (*models.ProductWithRelations, error) {
	p, err := s.create(ctx, form)
	metrics.ObserveWrite("create", writeResult(err))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sse.NewProductEvent(sse.EventProductCreated, p.OfferingID.String(), p))
	return p, nil
}

func (s *ProductService) create(ctx context.Context, form *models.ProductFormData) (*models.ProductWithRelations, error) {
	form.ApplyDefaults()
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	log.Info().Str("offering_id", id.String()).Str("sku", form.SKU).Msg("Product created")

	return s.store.GetByID(ctx, id)
}

// Update validates form and rewrites the product.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, form *models.ProductFormData) (*models.ProductWithRelations, error) {
	p, err := s.update(ctx, id, form)
	metrics.ObserveWrite("update", writeResult(err))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sse.NewProductEvent(sse.EventProductUpdated, id.String(), p))
	return p, nil
}

func (s *ProductService) update(ctx context.Context, id uuid.UUID, form *models.ProductFormData) (*models.ProductWithRelations, error) {
	form.ApplyDefaults()
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, id, form); err != nil {
		return nil, err
	}
	log.Info().Str("offering_id", id.String()).Msg("Product updated")

	return s.store.GetByID(ctx, id)
}

// Delete removes the product and everything it owns.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	metrics.ObserveWrite("delete", writeResult(err))
	if err != nil {
		return err
	}
	log.Info().Str("offering_id", id.String()).Msg("Product deleted")

	s.publish(ctx, sse.NewProductEvent(sse.EventProductDeleted, id.String(), nil))
	return nil
}

// Clone creates an independent draft copy of the product's first version.
// Links to features, platforms and languages are not copied.
func (s *ProductService) Clone(ctx context.Context, id uuid.UUID) (*models.ProductWithRelations, error) {
	p, err := s.clone(ctx, id)
	metrics.ObserveWrite("clone", writeResult(err))
	if err != nil {
		return nil, err
	}
	event := sse.NewProductEvent(sse.EventProductCloned, p.OfferingID.String(), p)
	event.SourceID = id.String()
	s.publish(ctx, event)
	return p, nil
}

func (s *ProductService) clone(ctx context.Context, id uuid.UUID) (*models.ProductWithRelations, error) {
	src, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.create(ctx, CloneForm(src))
	if err != nil {
		return nil, err
	}
	log.Info().Str("offering_id", p.OfferingID.String()).Str("source_offering_id", id.String()).Msg("Product cloned")
	return p, nil
}

// AddVersion validates form and appends a version to the product.
func (s *ProductService) AddVersion(ctx context.Context, id uuid.UUID, form *models.VersionFormData) (*models.ProductWithRelations, error) {
	p, err := s.addVersion(ctx, id, form)
	metrics.ObserveWrite("add_version", writeResult(err))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sse.NewProductEvent(sse.EventProductVersionAdded, id.String(), p))
	return p, nil
}

func (s *ProductService) addVersion(ctx context.Context, id uuid.UUID, form *models.VersionFormData) (*models.ProductWithRelations, error) {
	form.ApplyDefaults()
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	versionID, err := s.store.AddVersion(ctx, id, form)
	if err != nil {
		return nil, err
	}
	log.Info().Str("offering_id", id.String()).Int("sku_version_id", versionID).Msg("Product version added")

	return s.store.GetByID(ctx, id)
}

// publish never fails the write that triggered it.
func (s *ProductService) publish(ctx context.Context, event *sse.ProductEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event", string(event.Event)).Str("offering_id", event.OfferingID).Msg("Failed to publish product event")
	}
}

// CloneForm builds the create payload for a copy of src. Scalar fields come
// from the first version, its detail, first pricing row and first content.
func CloneForm(src *models.ProductWithRelations) *models.ProductFormData {
	form := &models.ProductFormData{
		Name:             withSuffix(src.Name, cloneNameSuffix, maxNameLen),
		SKU:              withSuffix(src.SKU, cloneSKUSuffix, maxSKULen),
		EcosystemID:      copyInt(src.EcosystemID),
		BrandID:          src.FirstBrandID(),
		DescriptionShort: copyString(src.DescriptionShort),
		DescriptionLong:  copyString(src.DescriptionLong),
		SequenceOrder:    copyInt(src.SequenceOrder),
		ProductStatus:    models.ProductStatusDraft,
	}
	form.VersionName = defaultVersionName

	v := src.FirstVersion()
	if v != nil && v.VersionName != nil && strings.TrimSpace(*v.VersionName) != "" {
		form.VersionName = *v.VersionName
	}

	if v != nil && v.SkuVersionDetail != nil {
		d := v.SkuVersionDetail
		form.VersionDescriptionShort = copyString(d.DescriptionShort)
		form.VersionDescriptionLong = copyString(d.DescriptionLong)
		form.QualifyingEducation = d.QualifyingEducation
		form.ContinuingEducation = d.ContinuingEducation
		form.NotForIndividualSale = d.NotForIndividualSale
		form.CreditHours = copyInt(d.CreditHours)
		form.AccessPeriod = copyString(d.AccessPeriod)
		form.Platform = copyString(d.Platform)
		form.HybridDelivery = d.HybridDelivery
		form.CertificationsAwarded = copyString(d.CertificationsAwarded)
		form.Owner = copyString(d.Owner)

		if len(d.SkuVersionPricing) > 0 {
			pr := d.SkuVersionPricing[0]
			base, _ := pr.BasePrice.Float64()
			form.BasePrice = &base
			form.MSRP = money(pr.MSRP)
			form.COGS = money(pr.COGS)
			form.DeliveryCost = money(pr.DeliveryCost)
			form.SubscriptionPrice = money(pr.SubscriptionPrice)
			form.PromotionalPrice = money(pr.PromotionalPrice)
			form.DiscountPercentage = money(pr.DiscountPercentage)
			form.AdditionalCertificatePrice = money(pr.AdditionalCertificatePrice)
			form.RecognitionPeriodMonths = copyInt(pr.RecognitionPeriodMonths)
			form.CostCenter = copyInt(pr.CostCenter)
			form.RevenueAllocationMethod = copyString(pr.RevenueAllocationMethod)
			form.DiscountEligibility = copyString(pr.DiscountEligibility)
			form.DiscountType = copyString(pr.DiscountType)
			form.RecognitionStartTrigger = copyString(pr.RecognitionStartTrigger)
			form.DeferredRevenueAccount = copyString(pr.DeferredRevenueAccount)
			form.IncomeAccount = copyString(pr.IncomeAccount)
			form.ProfitCenter = copyString(pr.ProfitCenter)
			form.RevenueCategory = copyString(pr.RevenueCategory)
			form.RevenueSubcategory = copyString(pr.RevenueSubcategory)
			form.RevenueForecastCategory = copyString(pr.RevenueForecastCategory)
		}

		if len(d.SkuVersionContents) > 0 {
			c := d.SkuVersionContents[0]
			form.ContentVersion = copyString(c.ContentVersion)
			form.ContentFormat = copyString(c.ContentFormat)
			form.MobileCompatible = c.MobileCompatible
			form.ContentLength = copyString(c.ContentLength)
			form.InstructorInformation = copyString(c.InstructorInformation)
		}
	}

	form.LanguageIDs = []int{}
	form.FeatureIDs = []int{}
	form.FulfillmentPlatformIDs = []int{}
	return form
}

// writeResult labels a write outcome for metrics.
func writeResult(err error) string {
	var verr *utils.ValidationError
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &verr), errors.Is(err, utils.ErrBrandNotFound):
		return metrics.ResultInvalid
	case errors.Is(err, utils.ErrProductNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}

func money(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// withSuffix appends suffix to s, trimming s so the result is at most limit
// runes long.
func withSuffix(s, suffix string, limit int) string {
	keep := limit - utf8.RuneCountInString(suffix)
	if utf8.RuneCountInString(s) > keep {
		s = strings.TrimRightFunc(string([]rune(s)[:keep]), unicode.IsSpace)
	}
	return s + suffix
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
