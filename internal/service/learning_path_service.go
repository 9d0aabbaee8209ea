package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

//go:generate mockgen -source=learning_path_service.go -destination=mocks/learning_path_store.mock.go -package=mocks

// LearningPathStore is the persistence of learning paths.
type LearningPathStore interface {
	ListPaths(ctx context.Context) ([]models.LearningPath, error)
	ListItems(ctx context.Context, pathIDs []int) ([]models.LearningPathItem, error)
	CreatePath(ctx context.Context, form *models.LearningPathForm) (*models.LearningPath, error)
	AddItem(ctx context.Context, pathID int, offeringID uuid.UUID, isRequired bool, prerequisite *uuid.UUID) (*models.LearningPathItem, error)
	RemoveItem(ctx context.Context, pathID, itemID int) error
}

// LearningPathService manages bundles, pathways and sequences of products.
type LearningPathService struct {
	paths     LearningPathStore
	products  ProductStore
	validator *Validator
}

// NewLearningPathService constructs a LearningPathService.
func NewLearningPathService(paths LearningPathStore, products ProductStore, validator *Validator) *LearningPathService {
	return &LearningPathService{
		paths:     paths,
		products:  products,
		validator: validator,
	}
}

// List returns every path with its items in sequence order. Each item
// carries the aggregate of the product it references.
func (s *LearningPathService) List(ctx context.Context) ([]models.LearningPathWithItems, error) {
	paths, err := s.paths.ListPaths(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.LearningPathWithItems, 0, len(paths))
	if len(paths) == 0 {
		return out, nil
	}

	pathIDs := make([]int, 0, len(paths))
	for _, p := range paths {
		pathIDs = append(pathIDs, p.PathID)
	}
	items, err := s.paths.ListItems(ctx, pathIDs)
	if err != nil {
		return nil, err
	}

	products := map[uuid.UUID]*models.ProductWithRelations{}
	if len(items) > 0 {
		ids := make([]uuid.UUID, 0, len(items))
		seen := map[uuid.UUID]bool{}
		for _, it := range items {
			if !seen[it.OfferingID] {
				seen[it.OfferingID] = true
				ids = append(ids, it.OfferingID)
			}
		}
		list, err := s.products.List(ctx, models.ProductFilter{IDs: ids})
		if err != nil {
			return nil, err
		}
		for i := range list {
			products[list[i].OfferingID] = &list[i]
		}
	}

	byPath := map[int][]models.LearningPathItemWithProduct{}
	for _, it := range items {
		byPath[it.PathID] = append(byPath[it.PathID], models.LearningPathItemWithProduct{
			LearningPathItem: it,
			Product:          products[it.OfferingID],
		})
	}
	for _, p := range paths {
		entry := models.LearningPathWithItems{LearningPath: p, Items: byPath[p.PathID]}
		if entry.Items == nil {
			entry.Items = []models.LearningPathItemWithProduct{}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Create validates form and creates a path.
func (s *LearningPathService) Create(ctx context.Context, form *models.LearningPathForm) (*models.LearningPath, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	path, err := s.paths.CreatePath(ctx, form)
	if err != nil {
		return nil, err
	}
	log.Info().Int("path_id", path.PathID).Str("path_type", string(path.PathType)).Msg("Learning path created")
	return path, nil
}

// AddItem validates form and appends the product to the path.
func (s *LearningPathService) AddItem(ctx context.Context, pathID int, form *models.LearningPathItemForm) (*models.LearningPathItem, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	offeringID, err := uuid.Parse(form.OfferingID)
	if err != nil {
		return nil, utils.NewValidationError("offering_id", "uuid", "must be a valid UUID")
	}
	var prerequisite *uuid.UUID
	if form.PrerequisiteOfferingID != nil && *form.PrerequisiteOfferingID != "" {
		id, err := uuid.Parse(*form.PrerequisiteOfferingID)
		if err != nil {
			return nil, utils.NewValidationError("prerequisite_offering_id", "uuid", "must be a valid UUID")
		}
		prerequisite = &id
	}
	isRequired := true
	if form.IsRequired != nil {
		isRequired = *form.IsRequired
	}

	item, err := s.paths.AddItem(ctx, pathID, offeringID, isRequired, prerequisite)
	if err != nil {
		return nil, err
	}
	log.Info().Int("path_id", pathID).Str("offering_id", offeringID.String()).Msg("Learning path item added")
	return item, nil
}

// RemoveItem removes one item from the path.
func (s *LearningPathService) RemoveItem(ctx context.Context, pathID, itemID int) error {
	return s.paths.RemoveItem(ctx, pathID, itemID)
}
