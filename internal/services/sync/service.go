package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
	"github.com/podut/wp-ai-studio/internal/services/wp"
)

// ErrNotConnected is returned when an operation requires a connected
// project
var ErrNotConnected = errors.New("project is not connected")

// ErrConnectInProgress is returned when a connect attempt is made from
// a state that does not allow it
var ErrConnectInProgress = errors.New("project is already connecting or connected")

// remoteClient is the slice of the WordPress client the sync controller
// uses. Narrowed for testability.
type remoteClient interface {
	CheckConnection(ctx context.Context) (*models.User, error)
	FetchPosts(ctx context.Context) ([]models.Post, error)
	FetchCategories(ctx context.Context) ([]models.Term, error)
	FetchTags(ctx context.Context) ([]models.Term, error)
	CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error)
}

// ClientFactory builds a remote client for a project's credentials
type ClientFactory func(creds models.Credentials) remoteClient

// Service owns the per-project connection state machine and the local
// mirrors of remote posts, categories and tags.
type Service struct {
	projects  interfaces.ProjectStorage
	events    interfaces.EventService
	reporter  Reporter
	newClient ClientFactory
	logger    arbor.ILogger
}

// NewService creates the sync controller with the real WordPress client
func NewService(projects interfaces.ProjectStorage, events interfaces.EventService, reporter Reporter, requestTimeout time.Duration, logger arbor.ILogger) *Service {
	return &Service{
		projects: projects,
		events:   events,
		reporter: reporter,
		newClient: func(creds models.Credentials) remoteClient {
			return wp.NewClient(creds, requestTimeout, logger)
		},
		logger: logger,
	}
}

// setStatus persists a project transition and publishes the status event
func (s *Service) setStatus(ctx context.Context, project *models.Project) error {
	if err := s.projects.Save(ctx, project); err != nil {
		return err
	}
	s.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventTypeProjectStatus,
		Payload: map[string]interface{}{
			"projectId": project.ID,
			"status":    string(project.Status),
			"error":     project.LastErrorMessage,
		},
	})
	return nil
}

// Connect runs the full connect sequence: identity check, then a full
// sync. Only disconnected and error projects may connect.
func (s *Service) Connect(ctx context.Context, projectID string) (*models.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.CanConnect() {
		return nil, ErrConnectInProgress
	}

	project.Status = models.ProjectStatusConnecting
	if err := s.setStatus(ctx, project); err != nil {
		return nil, err
	}

	client := s.newClient(project.Credentials)

	user, err := client.CheckConnection(ctx)
	if err != nil {
		project.SetError(err.Error())
		if saveErr := s.setStatus(ctx, project); saveErr != nil {
			return nil, saveErr
		}
		s.reporter.ReportFailure(ctx, project, SeverityAlert, err)
		return project, nil
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("user", user.Name).
		Msg("WordPress credentials verified")

	return s.syncProject(ctx, project, client, SeverityAlert)
}

// Sync refreshes the local mirrors for a project. The fetch is
// all-or-nothing: any failure leaves the previous mirrors untouched and
// moves the project to the error state.
func (s *Service) Sync(ctx context.Context, projectID string, severity Severity) (*models.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.syncProject(ctx, project, s.newClient(project.Credentials), severity)
}

func (s *Service) syncProject(ctx context.Context, project *models.Project, client remoteClient, severity Severity) (*models.Project, error) {
	posts, err := client.FetchPosts(ctx)
	if err != nil {
		return s.failSync(ctx, project, severity, err)
	}
	categories, err := client.FetchCategories(ctx)
	if err != nil {
		return s.failSync(ctx, project, severity, err)
	}
	tags, err := client.FetchTags(ctx)
	if err != nil {
		return s.failSync(ctx, project, severity, err)
	}

	// Wholesale mirror replacement, remote state wins
	project.Posts = posts
	project.Categories = categories
	project.Tags = tags
	project.SetConnected(time.Now())

	if err := s.setStatus(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Int("posts", len(posts)).
		Int("categories", len(categories)).
		Int("tags", len(tags)).
		Msg("Project synced")

	return project, nil
}

func (s *Service) failSync(ctx context.Context, project *models.Project, severity Severity, cause error) (*models.Project, error) {
	project.SetError(cause.Error())
	if err := s.setStatus(ctx, project); err != nil {
		return nil, err
	}
	s.reporter.ReportFailure(ctx, project, severity, cause)
	return project, nil
}

// Publish creates a draft post on the remote site from a generated
// article, then silently resyncs the project. Rejected before any
// remote call when the project is not connected.
func (s *Service) Publish(ctx context.Context, projectID string, article *models.ArticleContent) (*models.Post, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsConnected() {
		return nil, ErrNotConnected
	}
	if article == nil {
		return nil, fmt.Errorf("article content is required")
	}

	client := s.newClient(project.Credentials)

	post, err := client.CreatePost(ctx, models.PostInput{
		Title:   article.Title,
		Content: article.Content,
		Excerpt: article.Excerpt,
		Status:  "draft",
		Meta: models.PostMeta{
			YoastTitle:        article.SEOTitle,
			YoastDescription:  article.SEODescription,
			YoastFocusKeyword: article.FocusKeyword,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish article: %w", err)
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Int("post_id", post.ID).
		Msg("Article published as draft")

	// Refresh mirrors so the new draft shows up locally. The publish
	// itself already succeeded, so a resync failure is not propagated.
	if _, err := s.syncProject(ctx, project, client, SeveritySilent); err != nil {
		s.logger.Warn().Err(err).Str("project_id", project.ID).Msg("Post-publish resync failed")
	}

	return post, nil
}
