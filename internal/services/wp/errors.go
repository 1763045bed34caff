package wp

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when the remote site refuses a write,
// either by HTTP status (401/403) or by error code (rest_cannot_create)
var ErrPermissionDenied = errors.New("permission denied by WordPress site")

// ConnectionErrorKind classifies connection check failures
type ConnectionErrorKind string

const (
	ConnectionUnauthorized ConnectionErrorKind = "unauthorized"
	ConnectionForbidden    ConnectionErrorKind = "forbidden"
	ConnectionNotFound     ConnectionErrorKind = "not_found"
	ConnectionHTTPStatus   ConnectionErrorKind = "http_status"
	ConnectionNetwork      ConnectionErrorKind = "network"
)

// ConnectionError is a classified connection check failure with a
// message suitable for display on the project
type ConnectionError struct {
	Kind       ConnectionErrorKind
	StatusCode int
	Message    string
}

func (e *ConnectionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// classifyConnectionStatus maps a connection check HTTP status to a
// ConnectionError
func classifyConnectionStatus(status int) *ConnectionError {
	switch status {
	case 401:
		return &ConnectionError{Kind: ConnectionUnauthorized, StatusCode: status,
			Message: "Authentication failed. Check username and application password"}
	case 403:
		return &ConnectionError{Kind: ConnectionForbidden, StatusCode: status,
			Message: "Access forbidden. The user may lack REST API permissions"}
	case 404:
		return &ConnectionError{Kind: ConnectionNotFound, StatusCode: status,
			Message: "REST API not found. The URL does not look like a WordPress site"}
	default:
		return &ConnectionError{Kind: ConnectionHTTPStatus, StatusCode: status,
			Message: fmt.Sprintf("Connection check failed with HTTP %d", status)}
	}
}
