package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recipevault/engine/internal/models"
	appErr "github.com/recipevault/engine/pkg/errors"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	BaseRepository[models.Recipe]
	// ListByUser returns the user's recipes ordered by id descending.
	// Non-empty tagIDs narrow the result to recipes carrying any of the
	// given tags (OR within the set); ingredientIDs behave the same way.
	// When both are given a recipe must match each category (AND across
	// categories). A recipe matching several ids appears once.
	ListByUser(ctx context.Context, userID uuid.UUID, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	// GetOwned loads a recipe with its tag and ingredient sets, treating
	// a foreign-owned id the same as a missing one.
	GetOwned(ctx context.Context, id uint, userID uuid.UUID, dest *models.Recipe) error
}

type recipeRepository struct {
	BaseRepository[models.Recipe]
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{BaseRepository: NewBaseRepository[models.Recipe](db), db: db}
}

func (r *recipeRepository) ListByUser(ctx context.Context, userID uuid.UUID, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)
	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}
	if len(tagIDs) > 0 || len(ingredientIDs) > 0 {
		q = q.Distinct("recipes.*")
	}
	out := []models.Recipe{}
	if err := q.Order("recipes.id DESC").Preload("Tags").Preload("Ingredients").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list recipes by user failed")
	}
	return out, nil
}

func (r *recipeRepository) GetOwned(ctx context.Context, id uint, userID uuid.UUID, dest *models.Recipe) error {
	err := r.db.WithContext(ctx).
		Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.NotFound("recipe not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get recipe failed")
	}
	return nil
}
