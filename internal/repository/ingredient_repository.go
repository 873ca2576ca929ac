package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/recipevault/engine/internal/models"
	appErr "github.com/recipevault/engine/pkg/errors"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	BaseRepository[models.Ingredient]
	// ListByUser mirrors TagRepository.ListByUser for ingredients.
	ListByUser(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error)
	GetOwned(ctx context.Context, ids []uint, userID uuid.UUID) ([]models.Ingredient, error)
}

type ingredientRepository struct {
	BaseRepository[models.Ingredient]
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{BaseRepository: NewBaseRepository[models.Ingredient](db), db: db}
}

func (r *ingredientRepository) ListByUser(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Distinct("ingredients.*").
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id")
	}
	out := []models.Ingredient{}
	if err := q.Order("ingredients.name DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list ingredients by user failed")
	}
	return out, nil
}

func (r *ingredientRepository) GetOwned(ctx context.Context, ids []uint, userID uuid.UUID) ([]models.Ingredient, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userID).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get ingredients by ids failed")
	}
	if len(out) != len(ids) {
		return nil, appErr.Invalid("one or more ingredient ids are unknown")
	}
	return out, nil
}
