package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/recipevault/engine/internal/models"
	appErr "github.com/recipevault/engine/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection to :memory: would see a different database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.Recipe {
	t.Helper()
	r := &models.Recipe{Title: title, TimeMinutes: 10, Price: 5.0, UserID: userID}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestTagListScopedToUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	other := newTestUser(t, db, "other@test.com")

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Vegan", UserID: owner.ID}))
	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Dessert", UserID: owner.ID}))
	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Fruity", UserID: other.ID}))

	got, err := repo.ListByUser(ctx, owner.ID, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// name descending
	assert.Equal(t, "Vegan", got[0].Name)
	assert.Equal(t, "Dessert", got[1].Name)
}

func TestTagListAssignedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")

	dinner := &models.Tag{Name: "Dinner", UserID: owner.ID}
	lunch := &models.Tag{Name: "Lunch", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, dinner))
	require.NoError(t, repo.Create(ctx, lunch))

	rec := newTestRecipe(t, db, owner.ID, "Coriander eggs")
	require.NoError(t, db.Model(rec).Association("Tags").Append(dinner))

	got, err := repo.ListByUser(ctx, owner.ID, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dinner", got[0].Name)
}

func TestTagListAssignedOnlyDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")

	breakfast := &models.Tag{Name: "Breakfast", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, breakfast))

	r1 := newTestRecipe(t, db, owner.ID, "Pancakes")
	r2 := newTestRecipe(t, db, owner.ID, "Porridge")
	require.NoError(t, db.Model(r1).Association("Tags").Append(breakfast))
	require.NoError(t, db.Model(r2).Association("Tags").Append(breakfast))

	got, err := repo.ListByUser(ctx, owner.ID, true)
	require.NoError(t, err)
	// one row no matter how many recipes reference the tag
	require.Len(t, got, 1)
}

func TestIngredientListAssignedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")

	apple := &models.Ingredient{Name: "Apple", UserID: owner.ID}
	banana := &models.Ingredient{Name: "Banana", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, apple))
	require.NoError(t, repo.Create(ctx, banana))

	r1 := newTestRecipe(t, db, owner.ID, "Apple cake")
	r2 := newTestRecipe(t, db, owner.ID, "Apple crumble")
	require.NoError(t, db.Model(r1).Association("Ingredients").Append(apple))
	require.NoError(t, db.Model(r2).Association("Ingredients").Append(apple))

	got, err := repo.ListByUser(ctx, owner.ID, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Apple", got[0].Name)
}

func TestIngredientListEmptyIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepository(db)

	owner := newTestUser(t, db, "owner@test.com")

	got, err := repo.ListByUser(context.Background(), owner.ID, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeListScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	other := newTestUser(t, db, "other@test.com")

	first := newTestRecipe(t, db, owner.ID, "First")
	second := newTestRecipe(t, db, owner.ID, "Second")
	newTestRecipe(t, db, other.ID, "Foreign")

	got, err := repo.ListByUser(ctx, owner.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// id descending
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestRecipeListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")

	vegan := &models.Tag{Name: "Vegan", UserID: owner.ID}
	dessert := &models.Tag{Name: "Dessert", UserID: owner.ID}
	ginger := &models.Ingredient{Name: "Ginger", UserID: owner.ID}
	require.NoError(t, db.Create(vegan).Error)
	require.NoError(t, db.Create(dessert).Error)
	require.NoError(t, db.Create(ginger).Error)

	curry := newTestRecipe(t, db, owner.ID, "Curry")
	cake := newTestRecipe(t, db, owner.ID, "Cake")
	plain := newTestRecipe(t, db, owner.ID, "Plain toast")

	require.NoError(t, db.Model(curry).Association("Tags").Append(vegan))
	require.NoError(t, db.Model(curry).Association("Ingredients").Append(ginger))
	require.NoError(t, db.Model(cake).Association("Tags").Append(dessert))

	// OR within one category
	got, err := repo.ListByUser(ctx, owner.ID, []uint{vegan.ID, dessert.ID}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// AND across categories
	got, err = repo.ListByUser(ctx, owner.ID, []uint{vegan.ID}, []uint{ginger.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, curry.ID, got[0].ID)

	// disjoint categories match nothing
	got, err = repo.ListByUser(ctx, owner.ID, []uint{dessert.ID}, []uint{ginger.ID})
	require.NoError(t, err)
	assert.Empty(t, got)

	// empty filters mean no filter
	got, err = repo.ListByUser(ctx, owner.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	_ = plain
}

func TestRecipeListFilterDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")

	vegan := &models.Tag{Name: "Vegan", UserID: owner.ID}
	dessert := &models.Tag{Name: "Dessert", UserID: owner.ID}
	require.NoError(t, db.Create(vegan).Error)
	require.NoError(t, db.Create(dessert).Error)

	cake := newTestRecipe(t, db, owner.ID, "Avocado lime cake")
	require.NoError(t, db.Model(cake).Association("Tags").Append(vegan, dessert))

	// recipe matches both filter ids but appears once
	got, err := repo.ListByUser(ctx, owner.ID, []uint{vegan.ID, dessert.ID}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cake.ID, got[0].ID)
}

func TestRecipeGetOwnedHidesForeignRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	other := newTestUser(t, db, "other@test.com")

	foreign := newTestRecipe(t, db, other.ID, "Foreign")

	var rec models.Recipe
	err := repo.GetOwned(ctx, foreign.ID, owner.ID, &rec)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestTagGetOwnedRejectsForeignIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	other := newTestUser(t, db, "other@test.com")

	foreign := &models.Tag{Name: "Fruity", UserID: other.ID}
	require.NoError(t, db.Create(foreign).Error)

	_, err := repo.GetOwned(ctx, []uint{foreign.ID}, owner.ID)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestTagGetOwnedAcceptsRepeatedIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	tag := &models.Tag{Name: "Dinner", UserID: owner.ID}
	require.NoError(t, db.Create(tag).Error)

	// naming the same id twice resolves to the tag once
	got, err := repo.GetOwned(ctx, []uint{tag.ID, tag.ID}, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dinner", got[0].Name)
}

func TestIngredientGetOwnedAcceptsRepeatedIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	ing := &models.Ingredient{Name: "Salt", UserID: owner.ID}
	require.NoError(t, db.Create(ing).Error)

	got, err := repo.GetOwned(ctx, []uint{ing.ID, ing.ID, ing.ID}, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestDuplicateAssociationAppendIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@test.com")
	tag := &models.Tag{Name: "Dinner", UserID: owner.ID}
	require.NoError(t, db.Create(tag).Error)

	rec := newTestRecipe(t, db, owner.ID, "Stew")
	require.NoError(t, db.Model(rec).Association("Tags").Append(tag))
	require.NoError(t, db.Model(rec).Association("Tags").Append(tag))

	repo := NewRecipeRepository(db)
	var got models.Recipe
	require.NoError(t, repo.GetOwned(ctx, rec.ID, owner.ID, &got))
	assert.Len(t, got.Tags, 1)
}
