package models

import (
	"time"

	"github.com/google/uuid"
)

// LearningPath groups offerings into a bundle, pathway or sequence.
type LearningPath struct {
	PathID      int              `db:"path_id" json:"path_id"`
	Name        string           `db:"name" json:"name"`
	Description *string          `db:"description" json:"description"`
	PathType    LearningPathType `db:"path_type" json:"path_type"`
	Active      bool             `db:"active" json:"active"`
	CreateDate  time.Time        `db:"create_date" json:"create_date"`
}

// LearningPathItem places one offering in a path.
type LearningPathItem struct {
	PathItemID             int        `db:"path_item_id" json:"path_item_id"`
	PathID                 int        `db:"path_id" json:"path_id"`
	OfferingID             uuid.UUID  `db:"offering_id" json:"offering_id"`
	SequenceOrder          int        `db:"sequence_order" json:"sequence_order"`
	IsRequired             bool       `db:"is_required" json:"is_required"`
	PrerequisiteOfferingID *uuid.UUID `db:"prerequisite_offering_id" json:"prerequisite_offering_id"`
}

// LearningPathWithItems is a path with its ordered items.
type LearningPathWithItems struct {
	LearningPath
	Items []LearningPathItemWithProduct `json:"items"`
}

// LearningPathItemWithProduct is an item with the offering it references.
type LearningPathItemWithProduct struct {
	LearningPathItem
	Product *ProductWithRelations `json:"product,omitempty"`
}
