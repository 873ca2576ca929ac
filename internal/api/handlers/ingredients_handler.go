package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/recipevault/engine/internal/api/middleware"
	"github.com/recipevault/engine/internal/api/types"
	"github.com/recipevault/engine/internal/api/validators"
	"github.com/recipevault/engine/internal/models"
	"github.com/recipevault/engine/internal/repository"
)

type IngredientsHandler struct {
	repo repository.IngredientRepository
}

func NewIngredientsHandler(repo repository.IngredientRepository) *IngredientsHandler {
	return &IngredientsHandler{repo: repo}
}

func (h *IngredientsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	assignedOnly := parseBoolFlag(r.URL.Query().Get("assigned_only"))

	items, err := h.repo.ListByUser(r.Context(), userID, assignedOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *IngredientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req types.IngredientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "name is required")
		return
	}

	ing := models.Ingredient{Name: req.Name, UserID: userID}
	if err := h.repo.Create(r.Context(), &ing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: ing})
}
