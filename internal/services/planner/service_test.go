package planner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// memoryFolderStore is an in-memory PlannerStorage for tests
type memoryFolderStore struct {
	mu      sync.Mutex
	folders map[string]*models.PlannerFolder
}

func newMemoryFolderStore() *memoryFolderStore {
	return &memoryFolderStore{folders: make(map[string]*models.PlannerFolder)}
}

func (s *memoryFolderStore) GetFolder(ctx context.Context, id string) (*models.PlannerFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *memoryFolderStore) ListFolders(ctx context.Context) ([]*models.PlannerFolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.PlannerFolder, 0, len(s.folders))
	for _, f := range s.folders {
		copied := *f
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memoryFolderStore) SaveFolder(ctx context.Context, folder *models.PlannerFolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *folder
	s.folders[folder.ID] = &copied
	return nil
}

func (s *memoryFolderStore) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.folders, id)
	return nil
}

func (s *memoryFolderStore) GetLegacyKeywords(ctx context.Context) ([]string, error) {
	return nil, interfaces.ErrNotFound
}

func (s *memoryFolderStore) DeleteLegacyKeywords(ctx context.Context) error {
	return nil
}

// fakeAI implements the AI gateway with configurable responses
type fakeAI struct {
	strategy     []models.StrategyEntry
	strategyErr  error
	article      *models.ArticleContent
	articleErr   error
	gotKeyword   string
	gotArticleCx string
}

func (f *fakeAI) Configure(ctx context.Context, settings models.AISettings) error { return nil }
func (f *fakeAI) Settings() models.AISettings                                     { return models.AISettings{} }

func (f *fakeAI) GenerateKeywords(ctx context.Context, niche string, count int, details string, geo models.GeoSettings) ([]string, error) {
	return nil, nil
}

func (f *fakeAI) GenerateClusterTopics(ctx context.Context, niche string, geo models.GeoSettings) ([]string, error) {
	return nil, nil
}

func (f *fakeAI) GenerateEditorialStrategy(ctx context.Context, keywords []string) ([]models.StrategyEntry, error) {
	return f.strategy, f.strategyErr
}

func (f *fakeAI) GenerateFullArticle(ctx context.Context, keyword, articleContext string) (*models.ArticleContent, error) {
	f.gotKeyword = keyword
	f.gotArticleCx = articleContext
	if f.articleErr != nil {
		return nil, f.articleErr
	}
	return f.article, nil
}

func (f *fakeAI) GenerateAnswerParagraph(ctx context.Context, content string) (string, error) {
	return "", nil
}
func (f *fakeAI) GenerateTLDR(ctx context.Context, content string) (string, error) { return "", nil }
func (f *fakeAI) GenerateFAQSchema(ctx context.Context, content string) (*models.FAQResult, error) {
	return nil, nil
}
func (f *fakeAI) CleanHTML(ctx context.Context, content, keyword string) (string, error) {
	return "", nil
}
func (f *fakeAI) AuditContent(ctx context.Context, content, keyword, seoTitle, seoDesc string) (*models.AuditResult, error) {
	return nil, nil
}
func (f *fakeAI) GenerateSEOMetadata(ctx context.Context, content, keyword string) (*models.SEOMetadata, error) {
	return nil, nil
}
func (f *fakeAI) GenerateInternalLinks(ctx context.Context, content string, posts []models.Post) (string, error) {
	return "", nil
}
func (f *fakeAI) GenerateFeaturedImage(ctx context.Context, title, content string, opts models.ImageOptions) (*models.ImageResult, error) {
	return nil, nil
}

// fakePublisher records publish calls
type fakePublisher struct {
	gotProjectID string
	gotArticle   *models.ArticleContent
	err          error
	calls        int
}

func (f *fakePublisher) Publish(ctx context.Context, projectID string, article *models.ArticleContent) (*models.Post, error) {
	f.calls++
	f.gotProjectID = projectID
	f.gotArticle = article
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: 5, Status: "draft"}, nil
}

// nopEvents discards all events
type nopEvents struct{}

func (nopEvents) Subscribe(interfaces.EventType, interfaces.EventHandler) error   { return nil }
func (nopEvents) Publish(context.Context, interfaces.Event) error                 { return nil }
func (nopEvents) PublishSync(context.Context, interfaces.Event) error             { return nil }
func (nopEvents) Close() error                                                    { return nil }

func newTestPlanner(ai *fakeAI, pub *fakePublisher) (*Service, *memoryFolderStore) {
	store := newMemoryFolderStore()
	service := NewService(store, ai, pub, nopEvents{}, arbor.NewLogger())
	return service, store
}

func seedFolder(t *testing.T, service *Service, keywords []string) *models.PlannerFolder {
	t.Helper()
	folder, err := service.CreateFolder(context.Background(), "Content Plan", keywords)
	require.NoError(t, err)
	return folder
}

func TestCreateFolderRequiresName(t *testing.T) {
	service, _ := newTestPlanner(&fakeAI{}, &fakePublisher{})

	_, err := service.CreateFolder(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestCreateStrategyAppliesFallbacks(t *testing.T) {
	ai := &fakeAI{strategy: []models.StrategyEntry{
		{Keyword: "seo", Title: "SEO Guide", Slug: "seo-guide", SuggestedDate: "2026-09-10"},
		{},
	}}
	service, _ := newTestPlanner(ai, &fakePublisher{})
	folder := seedFolder(t, service, []string{"seo"})

	updated, err := service.CreateStrategy(context.Background(), folder.ID)
	require.NoError(t, err)
	require.Len(t, updated.PlanItems, 2)

	full := updated.PlanItems[0]
	assert.Equal(t, "seo", full.Keyword)
	assert.Equal(t, "SEO Guide", full.Title)
	assert.Equal(t, models.PlanItemStatusPlanned, full.Status)

	sparse := updated.PlanItems[1]
	assert.Equal(t, "Unknown", sparse.Keyword)
	assert.Equal(t, "Untitled", sparse.Title)
	assert.Equal(t, "untitled", sparse.Slug)
	assert.Equal(t, time.Now().Format("2006-01-02"), sparse.SuggestedDate)
	assert.NotEmpty(t, sparse.ID)
}

func TestCreateStrategyRequiresKeywords(t *testing.T) {
	service, _ := newTestPlanner(&fakeAI{}, &fakePublisher{})
	folder := seedFolder(t, service, nil)

	_, err := service.CreateStrategy(context.Background(), folder.ID)
	assert.Error(t, err)
}

func TestGenerateItemContentAdoptsArticle(t *testing.T) {
	ai := &fakeAI{
		strategy: []models.StrategyEntry{{Keyword: "seo", Title: "Planned SEO", Slug: "planned-seo"}},
		article: &models.ArticleContent{
			Title:   "Generated SEO Title",
			Slug:    "generated-seo",
			Content: "<h2>Intro</h2><p>Search engine optimization helps sites rank.</p>",
		},
	}
	service, _ := newTestPlanner(ai, &fakePublisher{})
	folder := seedFolder(t, service, []string{"seo"})

	updated, err := service.CreateStrategy(context.Background(), folder.ID)
	require.NoError(t, err)
	itemID := updated.PlanItems[0].ID

	item, err := service.GenerateItemContent(context.Background(), folder.ID, itemID)
	require.NoError(t, err)

	assert.Equal(t, models.PlanItemStatusGenerated, item.Status)
	assert.Equal(t, "Generated SEO Title", item.Title)
	assert.Equal(t, "generated-seo", item.Slug)
	assert.Equal(t, "seo", ai.gotKeyword)
	assert.Equal(t, "Planned title: Planned SEO", ai.gotArticleCx)

	require.NotNil(t, item.GeneratedContent)
	assert.NotEmpty(t, item.GeneratedContent.Excerpt, "excerpt backfilled from content")
	assert.LessOrEqual(t, len(item.GeneratedContent.Excerpt), 150)
}

func TestGenerateItemContentRejectedAfterPublish(t *testing.T) {
	ai := &fakeAI{
		strategy: []models.StrategyEntry{{Keyword: "seo"}},
		article:  &models.ArticleContent{Title: "T", Content: "<p>x</p>"},
	}
	pub := &fakePublisher{}
	service, _ := newTestPlanner(ai, pub)
	folder := seedFolder(t, service, []string{"seo"})

	updated, err := service.CreateStrategy(context.Background(), folder.ID)
	require.NoError(t, err)
	itemID := updated.PlanItems[0].ID

	_, err = service.GenerateItemContent(context.Background(), folder.ID, itemID)
	require.NoError(t, err)
	_, err = service.PublishItem(context.Background(), folder.ID, itemID, "proj_1")
	require.NoError(t, err)

	_, err = service.GenerateItemContent(context.Background(), folder.ID, itemID)
	assert.ErrorIs(t, err, ErrItemNotGeneratable)
}

func TestPublishItemRequiresGeneratedContent(t *testing.T) {
	ai := &fakeAI{strategy: []models.StrategyEntry{{Keyword: "seo"}}}
	pub := &fakePublisher{}
	service, _ := newTestPlanner(ai, pub)
	folder := seedFolder(t, service, []string{"seo"})

	updated, err := service.CreateStrategy(context.Background(), folder.ID)
	require.NoError(t, err)
	itemID := updated.PlanItems[0].ID

	_, err = service.PublishItem(context.Background(), folder.ID, itemID, "proj_1")
	assert.ErrorIs(t, err, ErrItemNotPublishable)
	assert.Equal(t, 0, pub.calls)
}

func TestPublishItemForwardsToPublisher(t *testing.T) {
	ai := &fakeAI{
		strategy: []models.StrategyEntry{{Keyword: "seo"}},
		article:  &models.ArticleContent{Title: "T", Content: "<p>x</p>"},
	}
	pub := &fakePublisher{}
	service, store := newTestPlanner(ai, pub)
	folder := seedFolder(t, service, []string{"seo"})

	updated, err := service.CreateStrategy(context.Background(), folder.ID)
	require.NoError(t, err)
	itemID := updated.PlanItems[0].ID

	_, err = service.GenerateItemContent(context.Background(), folder.ID, itemID)
	require.NoError(t, err)

	item, err := service.PublishItem(context.Background(), folder.ID, itemID, "proj_9")
	require.NoError(t, err)

	assert.Equal(t, models.PlanItemStatusPublished, item.Status)
	assert.Equal(t, "proj_9", pub.gotProjectID)
	require.NotNil(t, pub.gotArticle)
	assert.Equal(t, "T", pub.gotArticle.Title)

	stored, err := store.GetFolder(context.Background(), folder.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanItemStatusPublished, stored.PlanItems[0].Status)
}

func TestItemNotFound(t *testing.T) {
	service, _ := newTestPlanner(&fakeAI{}, &fakePublisher{})
	folder := seedFolder(t, service, []string{"seo"})

	_, err := service.GenerateItemContent(context.Background(), folder.ID, "item_missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateKeywordsReplacesList(t *testing.T) {
	service, _ := newTestPlanner(&fakeAI{}, &fakePublisher{})
	folder := seedFolder(t, service, []string{"old"})

	updated, err := service.UpdateKeywords(context.Background(), folder.ID, []string{"new one", "new two"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new one", "new two"}, updated.Keywords)

	cleared, err := service.UpdateKeywords(context.Background(), folder.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, cleared.Keywords)
}
