package server

import (
	"net/http"
	"strings"

	"github.com/podut/wp-ai-studio/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// System endpoints
	s.router.HandleFunc("/api/version", withMiddleware(s.app.APIHandler.VersionHandler))
	s.router.HandleFunc("/api/health", withMiddleware(s.app.APIHandler.HealthHandler))

	// Project endpoints
	s.router.HandleFunc("/api/projects", withMiddleware(s.handleProjectCollection))
	s.router.HandleFunc("/api/projects/", withMiddleware(s.handleProjectRoutes))

	// Planner endpoints
	s.router.HandleFunc("/api/planner/folders", withMiddleware(s.handleFolderCollection))
	s.router.HandleFunc("/api/planner/folders/", withMiddleware(s.handleFolderRoutes))

	// AI endpoints
	s.router.HandleFunc("/api/ai/keywords", withMiddleware(postOnly(s.app.AIHandler.GenerateKeywords)))
	s.router.HandleFunc("/api/ai/topics", withMiddleware(postOnly(s.app.AIHandler.GenerateClusterTopics)))
	s.router.HandleFunc("/api/ai/article", withMiddleware(postOnly(s.app.AIHandler.GenerateArticle)))
	s.router.HandleFunc("/api/ai/answer", withMiddleware(postOnly(s.app.AIHandler.GenerateAnswerParagraph)))
	s.router.HandleFunc("/api/ai/tldr", withMiddleware(postOnly(s.app.AIHandler.GenerateTLDR)))
	s.router.HandleFunc("/api/ai/faq", withMiddleware(postOnly(s.app.AIHandler.GenerateFAQSchema)))
	s.router.HandleFunc("/api/ai/clean", withMiddleware(postOnly(s.app.AIHandler.CleanHTML)))
	s.router.HandleFunc("/api/ai/meta", withMiddleware(postOnly(s.app.AIHandler.GenerateSEOMetadata)))
	s.router.HandleFunc("/api/ai/audit", withMiddleware(postOnly(s.app.AIHandler.AuditContent)))
	s.router.HandleFunc("/api/ai/links", withMiddleware(postOnly(s.app.AIHandler.GenerateInternalLinks)))
	s.router.HandleFunc("/api/ai/image", withMiddleware(postOnly(s.app.AIHandler.GenerateFeaturedImage)))

	// Settings endpoints
	s.router.HandleFunc("/api/settings/ai", withMiddleware(s.handleAISettings))
	s.router.HandleFunc("/api/settings/profile", withMiddleware(s.handleProfile))

	// WebSocket endpoint (logging middleware skipped, it breaks the upgrade)
	s.router.HandleFunc("/ws", withConditionalMiddleware(s.app.WebSocketHandler.HandleWebSocket, "/ws"))

	// Catch-all
	s.router.HandleFunc("/", withMiddleware(s.app.APIHandler.NotFoundHandler))
}

func postOnly(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !handlers.RequireMethod(w, r, http.MethodPost) {
			return
		}
		handler(w, r)
	}
}

func (s *Server) handleProjectCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.ProjectHandler.ListProjects(w, r)
	case http.MethodPost:
		s.app.ProjectHandler.CreateProject(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProjectRoutes dispatches /api/projects/{id}[/...] requests
func (s *Server) handleProjectRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	segments := strings.Split(strings.Trim(path, "/"), "/")

	if len(segments) == 0 || segments[0] == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	projectID := segments[0]

	switch {
	case len(segments) == 1:
		switch r.Method {
		case http.MethodGet:
			s.app.ProjectHandler.GetProject(w, r, projectID)
		case http.MethodPut:
			s.app.ProjectHandler.UpdateProject(w, r, projectID)
		case http.MethodDelete:
			s.app.ProjectHandler.DeleteProject(w, r, projectID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(segments) == 2 && segments[1] == "connect":
		if !handlers.RequireMethod(w, r, http.MethodPost) {
			return
		}
		s.app.ProjectHandler.ConnectProject(w, r, projectID)
	case len(segments) == 2 && segments[1] == "sync":
		if !handlers.RequireMethod(w, r, http.MethodPost) {
			return
		}
		s.app.ProjectHandler.SyncProject(w, r, projectID)
	case len(segments) == 2 && segments[1] == "media":
		if !handlers.RequireMethod(w, r, http.MethodPost) {
			return
		}
		s.app.ProjectHandler.UploadMedia(w, r, projectID)
	case len(segments) == 3 && segments[1] == "posts":
		if !handlers.RequireMethod(w, r, http.MethodDelete) {
			return
		}
		s.app.ProjectHandler.DeleteRemotePost(w, r, projectID, segments[2])
	default:
		s.app.APIHandler.NotFoundHandler(w, r)
	}
}

func (s *Server) handleFolderCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.PlannerHandler.ListFolders(w, r)
	case http.MethodPost:
		s.app.PlannerHandler.CreateFolder(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleFolderRoutes dispatches /api/planner/folders/{id}[/...] requests
func (s *Server) handleFolderRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/planner/folders/")
	segments := strings.Split(strings.Trim(path, "/"), "/")

	if len(segments) == 0 || segments[0] == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	folderID := segments[0]

	switch {
	case len(segments) == 1:
		switch r.Method {
		case http.MethodGet:
			s.app.PlannerHandler.GetFolder(w, r, folderID)
		case http.MethodPut:
			s.app.PlannerHandler.RenameFolder(w, r, folderID)
		case http.MethodDelete:
			s.app.PlannerHandler.DeleteFolder(w, r, folderID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(segments) == 2 && segments[1] == "keywords":
		if !handlers.RequireMethod(w, r, http.MethodPut) {
			return
		}
		s.app.PlannerHandler.UpdateKeywords(w, r, folderID)
	case len(segments) == 2 && segments[1] == "strategy":
		if !handlers.RequireMethod(w, r, http.MethodPost) {
			return
		}
		s.app.PlannerHandler.CreateStrategy(w, r, folderID)
	case len(segments) == 4 && segments[1] == "items":
		itemID := segments[2]
		switch segments[3] {
		case "generate":
			if !handlers.RequireMethod(w, r, http.MethodPost) {
				return
			}
			s.app.PlannerHandler.GenerateItemContent(w, r, folderID, itemID)
		case "publish":
			if !handlers.RequireMethod(w, r, http.MethodPost) {
				return
			}
			s.app.PlannerHandler.PublishItem(w, r, folderID, itemID)
		case "markdown":
			if !handlers.RequireMethod(w, r, http.MethodGet) {
				return
			}
			s.app.PlannerHandler.MarkdownPreview(w, r, folderID, itemID)
		default:
			s.app.APIHandler.NotFoundHandler(w, r)
		}
	default:
		s.app.APIHandler.NotFoundHandler(w, r)
	}
}

func (s *Server) handleAISettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.SettingsHandler.GetAISettings(w, r)
	case http.MethodPut:
		s.app.SettingsHandler.UpdateAISettings(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.SettingsHandler.GetProfile(w, r)
	case http.MethodPut:
		s.app.SettingsHandler.UpdateProfile(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
