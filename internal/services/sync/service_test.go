package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// memoryProjectStore is an in-memory ProjectStorage for tests
type memoryProjectStore struct {
	mu       sync.Mutex
	projects map[string]*models.Project
}

func newMemoryProjectStore(projects ...*models.Project) *memoryProjectStore {
	store := &memoryProjectStore{projects: make(map[string]*models.Project)}
	for _, p := range projects {
		copied := *p
		store.projects[p.ID] = &copied
	}
	return store
}

func (s *memoryProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memoryProjectStore) List(ctx context.Context) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memoryProjectStore) Save(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *project
	s.projects[project.ID] = &copied
	return nil
}

func (s *memoryProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

// captureEvents records published events
type captureEvents struct {
	mu     sync.Mutex
	events []interfaces.Event
}

func (c *captureEvents) Subscribe(interfaces.EventType, interfaces.EventHandler) error   { return nil }
func (c *captureEvents) Close() error                                                    { return nil }

func (c *captureEvents) Publish(ctx context.Context, event interfaces.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureEvents) PublishSync(ctx context.Context, event interfaces.Event) error {
	return c.Publish(ctx, event)
}

func (c *captureEvents) ofType(eventType interfaces.EventType) []interfaces.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []interfaces.Event
	for _, e := range c.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// captureReporter records failure reports
type captureReporter struct {
	mu      sync.Mutex
	reports []Severity
}

func (c *captureReporter) ReportFailure(ctx context.Context, project *models.Project, severity Severity, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, severity)
}

// fakeRemote is a configurable remoteClient
type fakeRemote struct {
	mu sync.Mutex

	user       *models.User
	posts      []models.Post
	categories []models.Term
	tags       []models.Term

	checkErr error
	postsErr error
	catsErr  error
	tagsErr  error
	createFn func(input models.PostInput) (*models.Post, error)

	checkCalls  int
	postsCalls  int
	createCalls int
}

func (f *fakeRemote) CheckConnection(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls++
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	if f.user == nil {
		return &models.User{ID: 1, Name: "admin"}, nil
	}
	return f.user, nil
}

func (f *fakeRemote) FetchPosts(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postsCalls++
	return f.posts, f.postsErr
}

func (f *fakeRemote) FetchCategories(ctx context.Context) ([]models.Term, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, f.catsErr
}

func (f *fakeRemote) FetchTags(ctx context.Context) ([]models.Term, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags, f.tagsErr
}

func (f *fakeRemote) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(input)
	}
	return &models.Post{ID: 99, Status: "draft"}, nil
}

func newTestSync(store *memoryProjectStore, remote *fakeRemote) (*Service, *captureEvents, *captureReporter) {
	events := &captureEvents{}
	reporter := &captureReporter{}

	service := NewService(store, events, reporter, 5*time.Second, arbor.NewLogger())
	service.newClient = func(creds models.Credentials) remoteClient {
		return remote
	}
	return service, events, reporter
}

func testProject(status models.ProjectStatus) *models.Project {
	return &models.Project{
		ID:        "proj_test",
		Name:      "Test Site",
		CreatedAt: time.Now(),
		Credentials: models.Credentials{
			URL:         "https://example.com",
			Username:    "admin",
			AppPassword: "abcd efgh",
		},
		Status: status,
	}
}

func TestConnectSuccessReplacesMirrors(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusDisconnected))
	remote := &fakeRemote{
		posts:      []models.Post{{ID: 1}, {ID: 2}},
		categories: []models.Term{{ID: 5, Name: "News"}},
		tags:       []models.Term{{ID: 9, Name: "go"}},
	}
	service, events, _ := newTestSync(store, remote)

	project, err := service.Connect(context.Background(), "proj_test")
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusConnected, project.Status)
	assert.Len(t, project.Posts, 2)
	assert.Len(t, project.Categories, 1)
	assert.Len(t, project.Tags, 1)
	assert.NotNil(t, project.LastSync)
	assert.Empty(t, project.LastErrorMessage)

	// connecting then connected
	statusEvents := events.ofType(interfaces.EventTypeProjectStatus)
	require.Len(t, statusEvents, 2)

	stored, err := store.Get(context.Background(), "proj_test")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusConnected, stored.Status)
}

func TestConnectRejectedWhenAlreadyConnected(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusConnected))
	service, _, _ := newTestSync(store, &fakeRemote{})

	_, err := service.Connect(context.Background(), "proj_test")
	assert.ErrorIs(t, err, ErrConnectInProgress)
}

func TestConnectAllowedFromErrorState(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusError))
	service, _, _ := newTestSync(store, &fakeRemote{})

	project, err := service.Connect(context.Background(), "proj_test")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusConnected, project.Status)
}

func TestConnectCredentialFailureSetsErrorState(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusDisconnected))
	remote := &fakeRemote{checkErr: errors.New("authentication failed")}
	service, events, reporter := newTestSync(store, remote)

	project, err := service.Connect(context.Background(), "proj_test")
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusError, project.Status)
	assert.Equal(t, "authentication failed", project.LastErrorMessage)
	assert.Equal(t, []Severity{SeverityAlert}, reporter.reports)
	assert.Equal(t, 0, remote.postsCalls)

	// connecting then error
	statusEvents := events.ofType(interfaces.EventTypeProjectStatus)
	require.Len(t, statusEvents, 2)
}

func TestSyncFailureLeavesMirrorsUntouched(t *testing.T) {
	project := testProject(models.ProjectStatusConnected)
	project.Posts = []models.Post{{ID: 1}}
	store := newMemoryProjectStore(project)

	remote := &fakeRemote{tagsErr: errors.New("timeout")}
	service, _, reporter := newTestSync(store, remote)

	result, err := service.Sync(context.Background(), "proj_test", SeveritySilent)
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusError, result.Status)
	assert.Equal(t, []Severity{SeveritySilent}, reporter.reports)

	stored, err := store.Get(context.Background(), "proj_test")
	require.NoError(t, err)
	assert.Len(t, stored.Posts, 1, "previous mirror should survive a failed sync")
}

func TestPublishRejectedWhenNotConnected(t *testing.T) {
	for _, status := range []models.ProjectStatus{
		models.ProjectStatusDisconnected,
		models.ProjectStatusConnecting,
		models.ProjectStatusError,
	} {
		store := newMemoryProjectStore(testProject(status))
		remote := &fakeRemote{}
		service, _, _ := newTestSync(store, remote)

		_, err := service.Publish(context.Background(), "proj_test", &models.ArticleContent{Title: "T"})

		assert.ErrorIs(t, err, ErrNotConnected)
		assert.Equal(t, 0, remote.createCalls, "no remote call before the status gate")
	}
}

func TestPublishCreatesDraftWithYoastMeta(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusConnected))

	var gotInput models.PostInput
	remote := &fakeRemote{
		createFn: func(input models.PostInput) (*models.Post, error) {
			gotInput = input
			return &models.Post{ID: 7, Status: "draft"}, nil
		},
	}
	service, _, _ := newTestSync(store, remote)

	article := &models.ArticleContent{
		Title:          "Hello",
		Content:        "<p>Body</p>",
		Excerpt:        "Body",
		SEOTitle:       "Hello | Site",
		SEODescription: "A post about hello",
		FocusKeyword:   "hello",
	}

	post, err := service.Publish(context.Background(), "proj_test", article)
	require.NoError(t, err)
	assert.Equal(t, 7, post.ID)

	assert.Equal(t, "draft", gotInput.Status)
	assert.Equal(t, "Hello | Site", gotInput.Meta.YoastTitle)
	assert.Equal(t, "A post about hello", gotInput.Meta.YoastDescription)
	assert.Equal(t, "hello", gotInput.Meta.YoastFocusKeyword)

	// publish triggers exactly one resync
	assert.Equal(t, 1, remote.postsCalls)
}

func TestPublishResyncFailureNotPropagated(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusConnected))
	remote := &fakeRemote{postsErr: errors.New("transient")}
	service, _, reporter := newTestSync(store, remote)

	post, err := service.Publish(context.Background(), "proj_test", &models.ArticleContent{Title: "T"})

	require.NoError(t, err, "publish succeeded, resync failure stays internal")
	assert.Equal(t, 99, post.ID)
	assert.Equal(t, []Severity{SeveritySilent}, reporter.reports)
}

func TestPublishNilArticleRejected(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusConnected))
	remote := &fakeRemote{}
	service, _, _ := newTestSync(store, remote)

	_, err := service.Publish(context.Background(), "proj_test", nil)
	require.Error(t, err)
	assert.Equal(t, 0, remote.createCalls)
}

func TestPollerTickSkipsNonConnectedProjects(t *testing.T) {
	connected := testProject(models.ProjectStatusConnected)
	errored := testProject(models.ProjectStatusError)
	errored.ID = "proj_error"
	disconnected := testProject(models.ProjectStatusDisconnected)
	disconnected.ID = "proj_disconnected"

	store := newMemoryProjectStore(connected, errored, disconnected)
	remote := &fakeRemote{}
	service, _, _ := newTestSync(store, remote)

	poller := NewPoller(service, store, "@every 30s", arbor.NewLogger())
	poller.tick()

	assert.Equal(t, 1, remote.postsCalls, "only the connected project syncs")
}

func TestPollTickUsesSilentSeverity(t *testing.T) {
	store := newMemoryProjectStore(testProject(models.ProjectStatusConnected))
	remote := &fakeRemote{postsErr: errors.New("down")}
	service, events, reporter := newTestSync(store, remote)

	poller := NewPoller(service, store, "@every 30s", arbor.NewLogger())
	poller.tick()

	assert.Equal(t, []Severity{SeveritySilent}, reporter.reports)
	assert.Empty(t, events.ofType(interfaces.EventTypeSyncFailed), "reporter stub captures instead")
}
