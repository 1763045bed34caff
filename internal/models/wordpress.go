package models

// RenderedField mirrors the WordPress REST API rendered/raw field shape
type RenderedField struct {
	Rendered string `json:"rendered"`
	Raw      string `json:"raw,omitempty"`
}

// PostMeta carries the Yoast SEO meta fields on a post
type PostMeta struct {
	YoastTitle        string `json:"_yoast_wpseo_title,omitempty"`
	YoastDescription  string `json:"_yoast_wpseo_metadesc,omitempty"`
	YoastFocusKeyword string `json:"_yoast_wpseo_focuskw,omitempty"`
}

// Post mirrors a WordPress post as returned by /wp-json/wp/v2/posts
type Post struct {
	ID            int           `json:"id"`
	Date          string        `json:"date"`
	Modified      string        `json:"modified"`
	Status        string        `json:"status"`
	Title         RenderedField `json:"title"`
	Content       RenderedField `json:"content"`
	Excerpt       RenderedField `json:"excerpt"`
	Link          string        `json:"link"`
	Categories    []int         `json:"categories"`
	Tags          []int         `json:"tags"`
	FeaturedMedia int           `json:"featured_media"`
	Meta          PostMeta      `json:"meta,omitempty"`
}

// PostInput is the payload for creating or updating a post
type PostInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Status        string   `json:"status"`
	Categories    []int    `json:"categories,omitempty"`
	Tags          []int    `json:"tags,omitempty"`
	FeaturedMedia int      `json:"featured_media,omitempty"`
	Meta          PostMeta `json:"meta,omitempty"`
}

// Term mirrors a WordPress category or tag
type Term struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count,omitempty"`
}

// Media mirrors a WordPress media item as returned by /wp-json/wp/v2/media
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// User mirrors the authenticated user from /wp-json/wp/v2/users/me
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// APIError mirrors the WordPress REST API error envelope
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Data    APIErrorData `json:"data"`
}

type APIErrorData struct {
	Status int `json:"status"`
	TermID int `json:"term_id"`
}
