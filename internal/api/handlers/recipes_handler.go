package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/recipevault/engine/internal/api/middleware"
	"github.com/recipevault/engine/internal/api/types"
	"github.com/recipevault/engine/internal/api/validators"
	"github.com/recipevault/engine/internal/services"
)

const maxImageUploadBytes = 10 << 20

type RecipesHandler struct {
	svc services.RecipeService
}

func NewRecipesHandler(svc services.RecipeService) *RecipesHandler {
	return &RecipesHandler{svc: svc}
}

func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

func recipeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusNotFound, types.APIResponse{
			Success: false,
			Error:   &types.APIError{Code: "not_found", Message: "recipe not found"},
		})
		return 0, false
	}
	return uint(id), true
}

// List returns the caller's recipes, newest id first. ?tags= and
// ?ingredients= take comma separated ids; within a parameter matching any
// id suffices, across parameters both must match.
func (h *RecipesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	tagIDs, ok := parseIDList(r.URL.Query().Get("tags"))
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid tags filter")
		return
	}
	ingredientIDs, ok := parseIDList(r.URL.Query().Get("ingredients"))
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid ingredients filter")
		return
	}

	items, err := h.svc.List(r.Context(), userID, services.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *RecipesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req types.RecipeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.Create(r.Context(), userID, &services.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: rec})
}

func (h *RecipesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rec})
}

// Update handles PUT: a full replace. Tag and ingredient sets not present
// in the payload end up empty.
func (h *RecipesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var req types.RecipeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.Replace(r.Context(), id, userID, &services.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rec})
}

func (h *RecipesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var req types.RecipePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.Patch(r.Context(), id, userID, &services.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rec})
}

// UploadImage accepts a multipart "image" field, stores it under a fresh
// uuid-derived name, and returns the new image path.
func (h *RecipesHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	rec, err := h.svc.AttachImage(r.Context(), id, userID, file, header)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]any{"id": rec.ID, "image": rec.Image},
	})
}
