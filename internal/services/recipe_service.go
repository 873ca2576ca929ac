package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipevault/engine/internal/models"
	"github.com/recipevault/engine/internal/queue"
	"github.com/recipevault/engine/internal/repository"
	"github.com/recipevault/engine/internal/storage"
	appErr "github.com/recipevault/engine/pkg/errors"
	"github.com/recipevault/engine/pkg/logger"
	"go.uber.org/zap"
)

type RecipeService interface {
	Create(ctx context.Context, userID uuid.UUID, in *RecipeInput) (*models.Recipe, error)
	Get(ctx context.Context, id uint, userID uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, userID uuid.UUID, f RecipeFilter) ([]models.Recipe, error)
	Replace(ctx context.Context, id uint, userID uuid.UUID, in *RecipeInput) (*models.Recipe, error)
	Patch(ctx context.Context, id uint, userID uuid.UUID, in *RecipePatch) (*models.Recipe, error)
	AttachImage(ctx context.Context, id uint, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Recipe, error)
}

// RecipeInput is the full field set; it backs both create and PUT. An
// absent TagIDs/IngredientIDs slice means an empty association set.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries partial changes; nil fields are untouched.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeFilter narrows List. Empty id slices apply no filter.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

type recipeService struct {
	db          *gorm.DB
	recipes     repository.RecipeRepository
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
	images      *storage.ImageStore
	disposer    queue.ImageDisposer
}

// NewRecipeService wires the recipe workflows. disposer may be nil, in
// which case replaced image files are removed inline.
func NewRecipeService(
	db *gorm.DB,
	recipes repository.RecipeRepository,
	tags repository.TagRepository,
	ingredients repository.IngredientRepository,
	images *storage.ImageStore,
	disposer queue.ImageDisposer,
) RecipeService {
	return &recipeService{
		db:          db,
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		disposer:    disposer,
	}
}

var _ RecipeService = (*recipeService)(nil)

func (s *recipeService) Create(ctx context.Context, userID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	tags, err := s.tags.GetOwned(ctx, in.TagIDs, userID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.GetOwned(ctx, in.IngredientIDs, userID)
	if err != nil {
		return nil, err
	}

	rec := &models.Recipe{
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	// Create inserts the row and its join rows in one transaction.
	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.L().Info("recipe created", zap.Uint("recipe_id", rec.ID), zap.String("user_id", userID.String()))
	return rec, nil
}

func (s *recipeService) Get(ctx context.Context, id uint, userID uuid.UUID) (*models.Recipe, error) {
	var rec models.Recipe
	if err := s.recipes.GetOwned(ctx, id, userID, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *recipeService) List(ctx context.Context, userID uuid.UUID, f RecipeFilter) ([]models.Recipe, error) {
	return s.recipes.ListByUser(ctx, userID, f.TagIDs, f.IngredientIDs)
}

// Replace implements PUT semantics: every field takes the incoming value
// and the tag/ingredient sets are replaced outright, so omitting them
// clears the associations.
func (s *recipeService) Replace(ctx context.Context, id uint, userID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	var rec models.Recipe
	if err := s.recipes.GetOwned(ctx, id, userID, &rec); err != nil {
		return nil, err
	}

	tags, err := s.tags.GetOwned(ctx, in.TagIDs, userID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.GetOwned(ctx, in.IngredientIDs, userID)
	if err != nil {
		return nil, err
	}

	rec.Title = in.Title
	rec.TimeMinutes = in.TimeMinutes
	rec.Price = in.Price
	rec.Link = in.Link

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(&rec).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "update recipe failed")
		}
		if err := tx.Model(&rec).Association("Tags").Replace(tags); err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "replace tags failed")
		}
		if err := tx.Model(&rec).Association("Ingredients").Replace(ingredients); err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "replace ingredients failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("recipe replaced", zap.Uint("recipe_id", id), zap.String("user_id", userID.String()))
	return s.Get(ctx, id, userID)
}

func (s *recipeService) Patch(ctx context.Context, id uint, userID uuid.UUID, in *RecipePatch) (*models.Recipe, error) {
	var rec models.Recipe
	if err := s.recipes.GetOwned(ctx, id, userID, &rec); err != nil {
		return nil, err
	}

	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		rec.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		rec.Price = *in.Price
	}
	if in.Link != nil {
		rec.Link = *in.Link
	}

	var tags []models.Tag
	if in.TagIDs != nil {
		var err error
		if tags, err = s.tags.GetOwned(ctx, *in.TagIDs, userID); err != nil {
			return nil, err
		}
	}
	var ingredients []models.Ingredient
	if in.IngredientIDs != nil {
		var err error
		if ingredients, err = s.ingredients.GetOwned(ctx, *in.IngredientIDs, userID); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(&rec).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "update recipe failed")
		}
		if in.TagIDs != nil {
			if err := tx.Model(&rec).Association("Tags").Replace(tags); err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "replace tags failed")
			}
		}
		if in.IngredientIDs != nil {
			if err := tx.Model(&rec).Association("Ingredients").Replace(ingredients); err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "replace ingredients failed")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("recipe patched", zap.Uint("recipe_id", id), zap.String("user_id", userID.String()))
	return s.Get(ctx, id, userID)
}

// AttachImage stores the upload under a fresh uuid name, points the recipe
// at it, and disposes of the previous file. A failed row update removes
// the new file again so no orphan survives the request.
func (s *recipeService) AttachImage(ctx context.Context, id uint, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Recipe, error) {
	var rec models.Recipe
	if err := s.recipes.GetOwned(ctx, id, userID, &rec); err != nil {
		return nil, err
	}

	newPath, err := s.images.Save(file, header)
	if err != nil {
		return nil, err
	}

	oldPath := rec.Image
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).Where("id = ? AND user_id = ?", id, userID).Update("image", newPath)
		if res.Error != nil {
			return appErr.Wrap(res.Error, appErr.CodeInternal, "update recipe image failed")
		}
		if res.RowsAffected == 0 {
			return appErr.NotFound("recipe not found")
		}
		return nil
	})
	if err != nil {
		_ = s.images.Remove(newPath)
		return nil, err
	}

	if oldPath != "" {
		s.disposeOldImage(ctx, oldPath)
	}

	logger.L().Info("recipe image attached", zap.Uint("recipe_id", id), zap.String("image", newPath))
	rec.Image = newPath
	return &rec, nil
}

func (s *recipeService) disposeOldImage(ctx context.Context, path string) {
	if s.disposer != nil {
		if err := s.disposer.Dispose(ctx, path); err == nil {
			return
		}
		logger.L().Warn("image cleanup enqueue failed, removing inline", zap.String("path", path))
	}
	if err := s.images.Remove(path); err != nil {
		logger.L().Warn("inline image removal failed", zap.String("path", path), zap.Error(err))
	}
}
