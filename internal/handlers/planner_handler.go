package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/services/planner"
)

// PlannerHandler handles folder and plan item requests
type PlannerHandler struct {
	planner *planner.Service
	logger  arbor.ILogger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(plannerService *planner.Service, logger arbor.ILogger) *PlannerHandler {
	return &PlannerHandler{
		planner: plannerService,
		logger:  logger,
	}
}

// ListFolders returns all planner folders
func (h *PlannerHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.planner.ListFolders(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list folders")
		WriteError(w, http.StatusInternalServerError, "Failed to list folders")
		return
	}
	WriteJSON(w, http.StatusOK, folders)
}

// CreateFolder creates a folder with an initial keyword list
func (h *PlannerHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.planner.CreateFolder(r.Context(), req.Name, req.Keywords)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, folder)
}

// GetFolder returns a folder by ID
func (h *PlannerHandler) GetFolder(w http.ResponseWriter, r *http.Request, folderID string) {
	folder, err := h.planner.GetFolder(r.Context(), folderID)
	if err != nil {
		h.writePlannerError(w, err, "Failed to get folder")
		return
	}
	WriteJSON(w, http.StatusOK, folder)
}

// RenameFolder changes a folder's name
func (h *PlannerHandler) RenameFolder(w http.ResponseWriter, r *http.Request, folderID string) {
	var req struct {
		Name string `json:"name"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.planner.RenameFolder(r.Context(), folderID, req.Name)
	if err != nil {
		h.writePlannerError(w, err, "Failed to rename folder")
		return
	}
	WriteJSON(w, http.StatusOK, folder)
}

// UpdateKeywords replaces a folder's keyword list
func (h *PlannerHandler) UpdateKeywords(w http.ResponseWriter, r *http.Request, folderID string) {
	var req struct {
		Keywords []string `json:"keywords"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.planner.UpdateKeywords(r.Context(), folderID, req.Keywords)
	if err != nil {
		h.writePlannerError(w, err, "Failed to update keywords")
		return
	}
	WriteJSON(w, http.StatusOK, folder)
}

// DeleteFolder removes a folder and all its plan items
func (h *PlannerHandler) DeleteFolder(w http.ResponseWriter, r *http.Request, folderID string) {
	if err := h.planner.DeleteFolder(r.Context(), folderID); err != nil {
		h.writePlannerError(w, err, "Failed to delete folder")
		return
	}
	WriteSuccess(w, "Folder deleted")
}

// CreateStrategy generates an editorial strategy from the folder's
// keywords and appends the resulting plan items
func (h *PlannerHandler) CreateStrategy(w http.ResponseWriter, r *http.Request, folderID string) {
	folder, err := h.planner.CreateStrategy(r.Context(), folderID)
	if err != nil {
		h.writePlannerError(w, err, "Failed to create strategy")
		return
	}
	WriteJSON(w, http.StatusOK, folder)
}

// GenerateItemContent generates the full article for a plan item
func (h *PlannerHandler) GenerateItemContent(w http.ResponseWriter, r *http.Request, folderID, itemID string) {
	item, err := h.planner.GenerateItemContent(r.Context(), folderID, itemID)
	if err != nil {
		h.writePlannerError(w, err, "Failed to generate content")
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// PublishItem publishes a generated item to a project as a draft
func (h *PlannerHandler) PublishItem(w http.ResponseWriter, r *http.Request, folderID, itemID string) {
	var req struct {
		ProjectID string `json:"projectId"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		WriteError(w, http.StatusBadRequest, "projectId is required")
		return
	}

	item, err := h.planner.PublishItem(r.Context(), folderID, itemID, req.ProjectID)
	if err != nil {
		h.writePlannerError(w, err, "Failed to publish item")
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// MarkdownPreview renders an item's generated HTML as markdown
func (h *PlannerHandler) MarkdownPreview(w http.ResponseWriter, r *http.Request, folderID, itemID string) {
	markdown, err := h.planner.MarkdownPreview(r.Context(), folderID, itemID)
	if err != nil {
		h.writePlannerError(w, err, "Failed to render preview")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"markdown": markdown})
}

func (h *PlannerHandler) writePlannerError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Folder not found")
	case errors.Is(err, planner.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrItemNotGeneratable), errors.Is(err, planner.ErrItemNotPublishable):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error().Err(err).Msg(message)
		WriteError(w, http.StatusInternalServerError, message)
	}
}
