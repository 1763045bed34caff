package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

var (
	// ErrItemNotGeneratable is returned when content generation is
	// requested for a published item
	ErrItemNotGeneratable = errors.New("plan item cannot be regenerated after publishing")

	// ErrItemNotPublishable is returned when publishing is requested
	// for an item without generated content
	ErrItemNotPublishable = errors.New("plan item has no generated content to publish")

	// ErrItemNotFound is returned when an item ID is not in the folder
	ErrItemNotFound = errors.New("plan item not found in folder")
)

// publisher is the slice of the sync controller the planner needs
type publisher interface {
	Publish(ctx context.Context, projectID string, article *models.ArticleContent) (*models.Post, error)
}

// Service manages planner folders and drives plan items through their
// forward-only lifecycle: planned -> generated -> published.
type Service struct {
	storage   interfaces.PlannerStorage
	ai        interfaces.AIService
	publisher publisher
	events    interfaces.EventService
	logger    arbor.ILogger
}

// NewService creates the planner service
func NewService(storage interfaces.PlannerStorage, aiService interfaces.AIService, pub publisher, events interfaces.EventService, logger arbor.ILogger) *Service {
	return &Service{
		storage:   storage,
		ai:        aiService,
		publisher: pub,
		events:    events,
		logger:    logger,
	}
}

// CreateFolder creates a folder seeded with an initial keyword list
func (s *Service) CreateFolder(ctx context.Context, name string, keywords []string) (*models.PlannerFolder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}
	if keywords == nil {
		keywords = []string{}
	}

	folder := &models.PlannerFolder{
		ID:        common.NewFolderID(),
		Name:      name,
		CreatedAt: time.Now(),
		Keywords:  keywords,
		PlanItems: []models.PlanItem{},
	}
	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// ListFolders returns all folders
func (s *Service) ListFolders(ctx context.Context) ([]*models.PlannerFolder, error) {
	return s.storage.ListFolders(ctx)
}

// GetFolder returns a folder by ID
func (s *Service) GetFolder(ctx context.Context, id string) (*models.PlannerFolder, error) {
	return s.storage.GetFolder(ctx, id)
}

// RenameFolder changes a folder's name
func (s *Service) RenameFolder(ctx context.Context, id, name string) (*models.PlannerFolder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}
	folder, err := s.storage.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	folder.Name = name
	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// UpdateKeywords replaces a folder's keyword list
func (s *Service) UpdateKeywords(ctx context.Context, id string, keywords []string) (*models.PlannerFolder, error) {
	folder, err := s.storage.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
	}
	folder.Keywords = keywords
	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder removes a folder and all of its plan items
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	return s.storage.DeleteFolder(ctx, id)
}

// CreateStrategy runs the editorial strategy over the folder's keywords
// and appends the resulting plan items. Entries with absent fields get
// deterministic fallbacks so a sparse model response still plans.
func (s *Service) CreateStrategy(ctx context.Context, folderID string) (*models.PlannerFolder, error) {
	folder, err := s.storage.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if len(folder.Keywords) == 0 {
		return nil, fmt.Errorf("folder has no keywords to plan")
	}

	entries, err := s.ai.GenerateEditorialStrategy(ctx, folder.Keywords)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	for _, entry := range entries {
		item := models.PlanItem{
			ID:            common.NewPlanItemID(),
			Keyword:       entry.Keyword,
			Title:         entry.Title,
			Slug:          entry.Slug,
			SuggestedDate: entry.SuggestedDate,
			Status:        models.PlanItemStatusPlanned,
		}
		if item.Keyword == "" {
			item.Keyword = "Unknown"
		}
		if item.Title == "" {
			item.Title = "Untitled"
		}
		if item.Slug == "" {
			item.Slug = "untitled"
		}
		if item.SuggestedDate == "" {
			item.SuggestedDate = today
		}
		folder.PlanItems = append(folder.PlanItems, item)
	}

	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("folder_id", folder.ID).
		Int("items", len(entries)).
		Msg("Editorial strategy created")

	return folder, nil
}

// GenerateItemContent writes the full article for a plan item. Allowed
// for planned and generated items; published items are immutable.
func (s *Service) GenerateItemContent(ctx context.Context, folderID, itemID string) (*models.PlanItem, error) {
	folder, err := s.storage.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	item := folder.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.CanGenerate() {
		return nil, ErrItemNotGeneratable
	}

	articleContext := ""
	if item.Title != "" && item.Title != "Untitled" {
		articleContext = "Planned title: " + item.Title
	}

	article, err := s.ai.GenerateFullArticle(ctx, item.Keyword, articleContext)
	if err != nil {
		return nil, err
	}

	if article.Excerpt == "" {
		article.Excerpt = ExcerptFromHTML(article.Content, 150)
	}

	item.GeneratedContent = article
	item.Status = models.PlanItemStatusGenerated
	if article.Title != "" {
		item.Title = article.Title
	}
	if article.Slug != "" {
		item.Slug = article.Slug
	}

	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.publishItemEvent(ctx, folder.ID, item)
	return item, nil
}

// PublishItem publishes a generated item to a project as a draft post
func (s *Service) PublishItem(ctx context.Context, folderID, itemID, projectID string) (*models.PlanItem, error) {
	folder, err := s.storage.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	item := folder.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.CanPublish() {
		return nil, ErrItemNotPublishable
	}

	if _, err := s.publisher.Publish(ctx, projectID, item.GeneratedContent); err != nil {
		return nil, err
	}

	item.Status = models.PlanItemStatusPublished
	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.publishItemEvent(ctx, folder.ID, item)
	return item, nil
}

// MarkdownPreview renders an item's generated HTML as markdown
func (s *Service) MarkdownPreview(ctx context.Context, folderID, itemID string) (string, error) {
	folder, err := s.storage.GetFolder(ctx, folderID)
	if err != nil {
		return "", err
	}
	item := folder.FindItem(itemID)
	if item == nil {
		return "", ErrItemNotFound
	}
	if item.GeneratedContent == nil {
		return "", ErrItemNotPublishable
	}
	return MarkdownFromHTML(item.GeneratedContent.Content)
}

func (s *Service) publishItemEvent(ctx context.Context, folderID string, item *models.PlanItem) {
	s.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventTypePlanItemUpdated,
		Payload: map[string]interface{}{
			"folderId": folderID,
			"itemId":   item.ID,
			"status":   string(item.Status),
		},
	})
}
