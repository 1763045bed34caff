package wp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/models"
)

var (
	trailingSlashes = regexp.MustCompile(`/+$`)
	whitespace      = regexp.MustCompile(`\s+`)
	privateHost     = regexp.MustCompile(`^(localhost|127\.0\.0\.1|192\.168\.|10\.)`)
)

// NormalizeURL canonicalizes a site URL: surrounding whitespace and
// trailing slashes are stripped, and a missing scheme is inferred.
// Loopback and private-range hosts default to http, everything else to
// https. An explicit scheme is always respected.
func NormalizeURL(raw string) string {
	url := trailingSlashes.ReplaceAllString(strings.TrimSpace(raw), "")
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if privateHost.MatchString(url) {
		return "http://" + url
	}
	return "https://" + url
}

// BasicAuthHeader builds the Authorization value from a username and
// application password. WordPress displays application passwords with
// spaces; all internal whitespace is stripped before encoding.
func BasicAuthHeader(username, appPassword string) string {
	password := whitespace.ReplaceAllString(appPassword, "")
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + token
}

// Client talks to a single WordPress site over its REST API
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewClient creates a REST client for the given credentials
func NewClient(creds models.Credentials, timeout time.Duration, logger arbor.ILogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    NormalizeURL(creds.URL),
		authHeader: BasicAuthHeader(creds.Username, creds.AppPassword),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the normalized site URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) apiURL(path string) string {
	return c.baseURL + "/wp-json/wp/v2" + path
}

// doJSON performs a request with auth headers and decodes a JSON
// response into out. Non-2xx statuses are returned as errors carrying
// the remote error envelope when one is present.
func (c *Client) doJSON(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.APIError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Code != "" {
			return fmt.Errorf("wordpress API error %s (HTTP %d): %s", apiErr.Code, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("wordpress API returned HTTP %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// CheckConnection verifies the credentials against the identity
// endpoint. Failures come back as classified ConnectionError values.
func (c *Client) CheckConnection(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL("/users/me"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Kind: ConnectionNetwork,
			Message: "Could not reach the site. Check the URL and network connectivity"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyConnectionStatus(resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &ConnectionError{Kind: ConnectionNetwork,
			Message: "Unexpected response from the identity endpoint"}
	}
	return &user, nil
}

// FetchPosts retrieves up to 50 posts of any status with edit context,
// so raw content and Yoast meta are included.
func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/posts?per_page=50&status=any&context=edit"), nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

// FetchCategories retrieves up to 100 categories, including empty ones
func (c *Client) FetchCategories(ctx context.Context) ([]models.Term, error) {
	var terms []models.Term
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/categories?per_page=100&hide_empty=false"), nil, &terms); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return terms, nil
}

// FetchTags retrieves up to 100 tags, including empty ones
func (c *Client) FetchTags(ctx context.Context) ([]models.Term, error) {
	var terms []models.Term
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/tags?per_page=100&hide_empty=false"), nil, &terms); err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return terms, nil
}

// CreateCategory creates a category, reusing the existing term when the
// site reports term_exists
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Term, error) {
	return c.createTerm(ctx, "/categories", name)
}

// CreateTag creates a tag, reusing the existing term when the site
// reports term_exists
func (c *Client) CreateTag(ctx context.Context, name string) (*models.Term, error) {
	return c.createTerm(ctx, "/tags", name)
}

func (c *Client) createTerm(ctx context.Context, path, name string) (*models.Term, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal term: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(path), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("term creation request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var term models.Term
		if err := json.Unmarshal(data, &term); err != nil {
			return nil, fmt.Errorf("failed to decode term: %w", err)
		}
		return &term, nil
	}

	var apiErr models.APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return nil, fmt.Errorf("term creation failed with HTTP %d", resp.StatusCode)
	}

	// The term already existing is not a failure, adopt the remote one
	if apiErr.Code == "term_exists" && apiErr.Data.TermID > 0 {
		var term models.Term
		url := fmt.Sprintf("%s/%d", c.apiURL(path), apiErr.Data.TermID)
		if err := c.doJSON(ctx, http.MethodGet, url, nil, &term); err != nil {
			return nil, fmt.Errorf("failed to fetch existing term: %w", err)
		}
		return &term, nil
	}

	if resp.StatusCode == 401 || resp.StatusCode == 403 || apiErr.Code == "rest_cannot_create" {
		return nil, fmt.Errorf("cannot create term %q: %w", name, ErrPermissionDenied)
	}

	return nil, fmt.Errorf("term creation failed %s (HTTP %d): %s", apiErr.Code, resp.StatusCode, apiErr.Message)
}

// CreatePost creates a new post
func (c *Client) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := c.doJSON(ctx, http.MethodPost, c.apiURL("/posts"), input, &post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// UpdatePost updates an existing post
func (c *Client) UpdatePost(ctx context.Context, id int, input models.PostInput) (*models.Post, error) {
	var post models.Post
	url := fmt.Sprintf("%s/%d", c.apiURL("/posts"), id)
	if err := c.doJSON(ctx, http.MethodPost, url, input, &post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return &post, nil
}

// DeletePost permanently deletes a post, bypassing trash
func (c *Client) DeletePost(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/%d?force=true", c.apiURL("/posts"), id)
	if err := c.doJSON(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// UploadMedia uploads a binary file to the media library
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, data []byte) (*models.Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/media"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("media upload failed with HTTP %d", resp.StatusCode)
	}

	var media models.Media
	if err := json.Unmarshal(body, &media); err != nil {
		return nil, fmt.Errorf("failed to decode media response: %w", err)
	}
	return &media, nil
}
