package models

import "time"

// ProjectStatus represents the connection lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusDisconnected ProjectStatus = "disconnected"
	ProjectStatusConnecting   ProjectStatus = "connecting"
	ProjectStatusConnected    ProjectStatus = "connected"
	ProjectStatusError        ProjectStatus = "error"
)

// Credentials holds the WordPress REST API credentials for a project.
// AppPassword is a WordPress application password; whitespace inside it
// is stripped before encoding.
type Credentials struct {
	URL         string `json:"url" validate:"required"`
	Username    string `json:"username" validate:"required"`
	AppPassword string `json:"appPassword" validate:"required"`
}

// Project represents a managed WordPress site together with its local
// mirror of remote posts, categories and tags.
type Project struct {
	ID               string        `json:"id" badgerhold:"key"`
	Name             string        `json:"name"`
	CreatedAt        time.Time     `json:"createdAt"`
	Credentials      Credentials   `json:"credentials"`
	Status           ProjectStatus `json:"status"`
	LastErrorMessage string        `json:"lastErrorMessage,omitempty"`
	Posts            []Post        `json:"posts"`
	Categories       []Term        `json:"categories"`
	Tags             []Term        `json:"tags"`
	LastSync         *time.Time    `json:"lastSync,omitempty"`
}

// CanConnect reports whether a connect attempt is allowed from the
// current status. Connecting and connected projects are excluded.
func (p *Project) CanConnect() bool {
	return p.Status == ProjectStatusDisconnected || p.Status == ProjectStatusError
}

// IsConnected reports whether the project is in the connected state.
func (p *Project) IsConnected() bool {
	return p.Status == ProjectStatusConnected
}

// SetError moves the project to the error state and records the message.
func (p *Project) SetError(message string) {
	p.Status = ProjectStatusError
	p.LastErrorMessage = message
}

// SetConnected moves the project to the connected state, stamps the sync
// time and clears any previous error message.
func (p *Project) SetConnected(at time.Time) {
	p.Status = ProjectStatusConnected
	p.LastErrorMessage = ""
	p.LastSync = &at
}
