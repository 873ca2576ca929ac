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

type TagsHandler struct {
	repo repository.TagRepository
}

func NewTagsHandler(repo repository.TagRepository) *TagsHandler {
	return &TagsHandler{repo: repo}
}

// List returns the caller's tags, name descending. ?assigned_only=1
// narrows to tags used by at least one recipe.
func (h *TagsHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *TagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req types.TagCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "name is required")
		return
	}

	t := models.Tag{Name: req.Name, UserID: userID}
	if err := h.repo.Create(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: t})
}
