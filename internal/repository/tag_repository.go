package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/recipevault/engine/internal/models"
	appErr "github.com/recipevault/engine/pkg/errors"
	"gorm.io/gorm"
)

type TagRepository interface {
	BaseRepository[models.Tag]
	// ListByUser returns the user's tags ordered by name descending.
	// With assignedOnly set, only tags referenced by at least one recipe
	// are returned, each at most once regardless of how many recipes
	// reference it.
	ListByUser(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error)
	GetOwned(ctx context.Context, ids []uint, userID uuid.UUID) ([]models.Tag, error)
}

type tagRepository struct {
	BaseRepository[models.Tag]
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{BaseRepository: NewBaseRepository[models.Tag](db), db: db}
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	q := r.db.WithContext(ctx).Model(&models.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Distinct("tags.*").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id")
	}
	out := []models.Tag{}
	if err := q.Order("tags.name DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list tags by user failed")
	}
	return out, nil
}

// GetOwned resolves ids to tags, failing when any id is missing or owned
// by a different user.
func (r *tagRepository) GetOwned(ctx context.Context, ids []uint, userID uuid.UUID) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userID).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get tags by ids failed")
	}
	if len(out) != len(ids) {
		return nil, appErr.Invalid("one or more tag ids are unknown")
	}
	return out, nil
}
