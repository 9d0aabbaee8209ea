package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GTDGit/catalog_api/internal/database"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// LearningPathRepository handles learning paths and their items.
type LearningPathRepository struct {
	db *sqlx.DB
}

// NewLearningPathRepository creates a new LearningPathRepository.
func NewLearningPathRepository(db *sqlx.DB) *LearningPathRepository {
	return &LearningPathRepository{db: db}
}

const (
	learningPathColumns     = `path_id, name, description, path_type, active, create_date`
	learningPathItemColumns = `path_item_id, path_id, offering_id, sequence_order, is_required, prerequisite_offering_id`
)

// ListPaths returns every path ordered by name.
func (r *LearningPathRepository) ListPaths(ctx context.Context) ([]models.LearningPath, error) {
	q := `SELECT ` + learningPathColumns + ` FROM learning_path ORDER BY name, path_id`
	out := []models.LearningPath{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListItems returns the items of the given paths ordered by sequence.
func (r *LearningPathRepository) ListItems(ctx context.Context, pathIDs []int) ([]models.LearningPathItem, error) {
	out := []models.LearningPathItem{}
	if len(pathIDs) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(pathIDs))
	for _, id := range pathIDs {
		ids = append(ids, int64(id))
	}
	q := `SELECT ` + learningPathItemColumns + `
        FROM learning_path_item
        WHERE path_id = ANY($1)
        ORDER BY path_id, sequence_order, path_item_id`
	if err := r.db.SelectContext(ctx, &out, q, pq.Array(ids)); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePath inserts a new path. Active defaults to true.
func (r *LearningPathRepository) CreatePath(ctx context.Context, form *models.LearningPathForm) (*models.LearningPath, error) {
	active := true
	if form.Active != nil {
		active = *form.Active
	}
	q := `INSERT INTO learning_path (name, description, path_type, active)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + learningPathColumns
	var path models.LearningPath
	if err := r.db.GetContext(ctx, &path, q, form.Name, form.Description, form.PathType, active); err != nil {
		return nil, fmt.Errorf("insert learning path: %w", err)
	}
	return &path, nil
}

// AddItem appends an offering to the end of a path.
func (r *LearningPathRepository) AddItem(ctx context.Context, pathID int, offeringID uuid.UUID, isRequired bool, prerequisite *uuid.UUID) (*models.LearningPathItem, error) {
	var item models.LearningPathItem
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked int
		if err := tx.GetContext(ctx, &locked, `SELECT path_id FROM learning_path WHERE path_id = $1 FOR UPDATE`, pathID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.ErrLearningPathNotFound
			}
			return fmt.Errorf("lock learning path: %w", err)
		}

		if err := offeringExists(ctx, tx, offeringID); err != nil {
			return err
		}
		if prerequisite != nil {
			if err := offeringExists(ctx, tx, *prerequisite); err != nil {
				return err
			}
		}

		var next int
		if err := tx.GetContext(ctx, &next, `SELECT COALESCE(MAX(sequence_order), 0) + 1 FROM learning_path_item WHERE path_id = $1`, pathID); err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		q := `INSERT INTO learning_path_item (path_id, offering_id, sequence_order, is_required, prerequisite_offering_id)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING ` + learningPathItemColumns
		if err := tx.GetContext(ctx, &item, q, pathID, offeringID, next, isRequired, prerequisite); err != nil {
			return fmt.Errorf("insert learning path item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item of a path.
func (r *LearningPathRepository) RemoveItem(ctx context.Context, pathID, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM learning_path_item WHERE path_id = $1 AND path_item_id = $2`, pathID, itemID)
	if err != nil {
		return fmt.Errorf("delete learning path item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrLearningPathItemNotFound
	}
	return nil
}

func offeringExists(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	var found int
	if err := tx.GetContext(ctx, &found, `SELECT 1 FROM offering WHERE offering_id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return fmt.Errorf("select offering: %w", err)
	}
	return nil
}
