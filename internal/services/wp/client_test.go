package wp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/models"
)

func newTestClient(serverURL string) *Client {
	return NewClient(models.Credentials{
		URL:         serverURL,
		Username:    "admin",
		AppPassword: "abcd efgh ijkl",
	}, 5*time.Second, arbor.NewLogger())
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare domain gets https", "example.com", "https://example.com"},
		{"localhost gets http", "localhost:8080", "http://localhost:8080"},
		{"loopback IP gets http", "127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"private 192.168 range gets http", "192.168.1.10/blog", "http://192.168.1.10/blog"},
		{"private 10.x range gets http", "10.0.0.5", "http://10.0.0.5"},
		{"explicit http respected", "http://example.com", "http://example.com"},
		{"explicit https on localhost respected", "https://localhost:8443", "https://localhost:8443"},
		{"trailing slashes stripped", "https://example.com///", "https://example.com"},
		{"surrounding whitespace stripped", "  example.com  ", "https://example.com"},
		{"empty input stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestBasicAuthHeaderStripsPasswordWhitespace(t *testing.T) {
	header := BasicAuthHeader("admin", "abcd efgh ijkl")

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:abcdefghijkl"))
	assert.Equal(t, expected, header)
}

func TestCheckConnectionSuccess(t *testing.T) {
	var gotPath, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: 1, Name: "admin"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	user, err := client.CheckConnection(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Name)
	assert.Equal(t, "/wp-json/wp/v2/users/me", gotPath)
	assert.Equal(t, BasicAuthHeader("admin", "abcd efgh ijkl"), gotAuth)
}

func TestCheckConnectionClassifiesStatuses(t *testing.T) {
	tests := []struct {
		status   int
		wantKind ConnectionErrorKind
	}{
		{http.StatusUnauthorized, ConnectionUnauthorized},
		{http.StatusForbidden, ConnectionForbidden},
		{http.StatusNotFound, ConnectionNotFound},
		{http.StatusInternalServerError, ConnectionHTTPStatus},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := newTestClient(server.URL)
		_, err := client.CheckConnection(context.Background())

		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, tt.wantKind, connErr.Kind)
		assert.Equal(t, tt.status, connErr.StatusCode)

		server.Close()
	}
}

func TestCheckConnectionNetworkFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.CheckConnection(context.Background())

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ConnectionNetwork, connErr.Kind)
}

func TestFetchPostsQuery(t *testing.T) {
	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Post{{ID: 7}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	posts, err := client.FetchPosts(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 7, posts[0].ID)
	assert.Equal(t, "per_page=50&status=any&context=edit", gotQuery)
}

func TestFetchTermsQuery(t *testing.T) {
	var gotQueries []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)
		json.NewEncoder(w).Encode([]models.Term{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	_, err = client.FetchTags(context.Background())
	require.NoError(t, err)

	require.Len(t, gotQueries, 2)
	assert.Equal(t, "per_page=100&hide_empty=false", gotQueries[0])
	assert.Equal(t, "per_page=100&hide_empty=false", gotQueries[1])
}

func TestCreateTermReusesExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.APIError{
				Code:    "term_exists",
				Message: "A term with the name provided already exists",
				Data:    models.APIErrorData{TermID: 42},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/wp-json/wp/v2/categories/42":
			json.NewEncoder(w).Encode(models.Term{ID: 42, Name: "News", Slug: "news"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	term, err := client.CreateCategory(context.Background(), "News")

	require.NoError(t, err)
	assert.Equal(t, 42, term.ID)
	assert.Equal(t, "News", term.Name)
}

func TestCreateTermPermissionDenied(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(models.APIError{Code: "rest_forbidden"})
		}))

		client := newTestClient(server.URL)
		_, err := client.CreateTag(context.Background(), "news")

		assert.ErrorIs(t, err, ErrPermissionDenied)
		server.Close()
	}
}

func TestCreateTermRestCannotCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.APIError{Code: "rest_cannot_create"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateTag(context.Background(), "news")

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreatePostSendsYoastMeta(t *testing.T) {
	var gotInput models.PostInput

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		json.NewEncoder(w).Encode(models.Post{ID: 11})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	post, err := client.CreatePost(context.Background(), models.PostInput{
		Title:   "Hello",
		Content: "<p>Body</p>",
		Status:  "draft",
		Meta: models.PostMeta{
			YoastTitle:        "Hello | Site",
			YoastFocusKeyword: "hello",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 11, post.ID)
	assert.Equal(t, "draft", gotInput.Status)
	assert.Equal(t, "Hello | Site", gotInput.Meta.YoastTitle)
	assert.Equal(t, "hello", gotInput.Meta.YoastFocusKeyword)
}

func TestDeletePostForces(t *testing.T) {
	var gotMethod, gotPath, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	require.NoError(t, client.DeletePost(context.Background(), 11))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/wp-json/wp/v2/posts/11", gotPath)
	assert.Equal(t, "force=true", gotQuery)
}

func TestUploadMediaHeaders(t *testing.T) {
	var gotDisposition, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDisposition = r.Header.Get("Content-Disposition")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(models.Media{ID: 3, SourceURL: "https://example.com/img.png"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	media, err := client.UploadMedia(context.Background(), "img.png", "image/png", []byte{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, 3, media.ID)
	assert.Equal(t, `attachment; filename="img.png"`, gotDisposition)
	assert.Equal(t, "image/png", gotContentType)
}
