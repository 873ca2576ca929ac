package types

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type TagCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

type IngredientCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

type RecipeCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	TimeMinutes int     `json:"time_minutes" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Link        string  `json:"link" validate:"omitempty,url"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type RecipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Link        *string  `json:"link" validate:"omitempty,url"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}
