package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
	syncsvc "github.com/podut/wp-ai-studio/internal/services/sync"
	"github.com/podut/wp-ai-studio/internal/services/wp"
)

// maxMediaUploadBytes caps featured image uploads
const maxMediaUploadBytes = 20 << 20

// ProjectHandler handles project CRUD and connection lifecycle requests
type ProjectHandler struct {
	projects       interfaces.ProjectStorage
	sync           *syncsvc.Service
	requestTimeout time.Duration
	logger         arbor.ILogger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects interfaces.ProjectStorage, syncService *syncsvc.Service, requestTimeout time.Duration, logger arbor.ILogger) *ProjectHandler {
	return &ProjectHandler{
		projects:       projects,
		sync:           syncService,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	AppPassword string `json:"appPassword"`
}

// ListProjects returns all projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list projects")
		WriteError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project in the disconnected state
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.URL == "" {
		WriteError(w, http.StatusBadRequest, "name and url are required")
		return
	}

	project := &models.Project{
		ID:        common.NewProjectID(),
		Name:      req.Name,
		CreatedAt: time.Now(),
		Credentials: models.Credentials{
			URL:         wp.NormalizeURL(req.URL),
			Username:    req.Username,
			AppPassword: req.AppPassword,
		},
		Status:     models.ProjectStatusDisconnected,
		Posts:      []models.Post{},
		Categories: []models.Term{},
		Tags:       []models.Term{},
	}

	if err := h.projects.Save(r.Context(), project); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save project")
		WriteError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}

	h.logger.Info().Str("project_id", project.ID).Str("name", project.Name).Msg("Project created")
	WriteJSON(w, http.StatusCreated, project)
}

// GetProject returns a single project by ID
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request, projectID string) {
	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		h.writeStorageError(w, err, "Failed to get project")
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// UpdateProject updates a project's name and credentials. Changing
// credentials drops the project back to the disconnected state.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request, projectID string) {
	var req projectRequest
	if !DecodeJSONBody(w, r, &req) {
		return
	}

	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		h.writeStorageError(w, err, "Failed to get project")
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}

	updated := models.Credentials{
		URL:         project.Credentials.URL,
		Username:    project.Credentials.Username,
		AppPassword: project.Credentials.AppPassword,
	}
	if req.URL != "" {
		updated.URL = wp.NormalizeURL(req.URL)
	}
	if req.Username != "" {
		updated.Username = req.Username
	}
	if req.AppPassword != "" {
		updated.AppPassword = req.AppPassword
	}
	if updated != project.Credentials {
		project.Credentials = updated
		project.Status = models.ProjectStatusDisconnected
		project.LastErrorMessage = ""
	}

	if err := h.projects.Save(r.Context(), project); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save project")
		WriteError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and its local mirrors
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request, projectID string) {
	if err := h.projects.Delete(r.Context(), projectID); err != nil {
		h.writeStorageError(w, err, "Failed to delete project")
		return
	}
	WriteSuccess(w, "Project deleted")
}

// ConnectProject verifies credentials and runs a full sync
func (h *ProjectHandler) ConnectProject(w http.ResponseWriter, r *http.Request, projectID string) {
	project, err := h.sync.Connect(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, syncsvc.ErrConnectInProgress) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.writeStorageError(w, err, "Failed to connect project")
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// SyncProject runs a manual sync with alert severity
func (h *ProjectHandler) SyncProject(w http.ResponseWriter, r *http.Request, projectID string) {
	project, err := h.sync.Sync(r.Context(), projectID, syncsvc.SeverityAlert)
	if err != nil {
		h.writeStorageError(w, err, "Failed to sync project")
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// DeleteRemotePost force-deletes a post on the remote site, then
// silently resyncs the project mirrors
func (h *ProjectHandler) DeleteRemotePost(w http.ResponseWriter, r *http.Request, projectID, postID string) {
	id, err := strconv.Atoi(postID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		h.writeStorageError(w, err, "Failed to get project")
		return
	}
	if !project.IsConnected() {
		WriteError(w, http.StatusConflict, syncsvc.ErrNotConnected.Error())
		return
	}

	client := wp.NewClient(project.Credentials, h.requestTimeout, h.logger)
	if err := client.DeletePost(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("project_id", projectID).Int("post_id", id).Msg("Remote post delete failed")
		WriteError(w, http.StatusBadGateway, "Failed to delete remote post: "+err.Error())
		return
	}

	if _, err := h.sync.Sync(r.Context(), projectID, syncsvc.SeveritySilent); err != nil {
		h.logger.Warn().Err(err).Str("project_id", projectID).Msg("Post-delete resync failed")
	}
	WriteSuccess(w, "Post deleted")
}

// UploadMedia uploads a media file to the remote site
func (h *ProjectHandler) UploadMedia(w http.ResponseWriter, r *http.Request, projectID string) {
	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		h.writeStorageError(w, err, "Failed to get project")
		return
	}
	if !project.IsConnected() {
		WriteError(w, http.StatusConflict, syncsvc.ErrNotConnected.Error())
		return
	}

	if err := r.ParseMultipartForm(maxMediaUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMediaUploadBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	client := wp.NewClient(project.Credentials, h.requestTimeout, h.logger)
	media, err := client.UploadMedia(r.Context(), header.Filename, contentType, data)
	if err != nil {
		h.logger.Error().Err(err).Str("project_id", projectID).Msg("Media upload failed")
		WriteError(w, http.StatusBadGateway, "Failed to upload media: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, media)
}

func (h *ProjectHandler) writeStorageError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	h.logger.Error().Err(err).Msg(message)
	WriteError(w, http.StatusInternalServerError, message)
}
