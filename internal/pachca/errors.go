package pachca

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response body is kept in an APIError
const maxErrorBody = 2048

// authGuidance maps HTTP statuses that indicate authentication problems to operator guidance
var authGuidance = map[int]string{
	http.StatusUnauthorized: "Access token is invalid or expired. Please refresh PACHCA_TOKEN.",
	http.StatusForbidden:    "Access token lacks permission for this chat. Check the token scopes and PACHCA_CHAT_ID.",
}

// APIError is a non-success response from the Pachca API
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pachca api %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("pachca api %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func newAPIError(endpoint string, status int, body []byte) *APIError {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return &APIError{Endpoint: endpoint, StatusCode: status, Body: s}
}

// AuthError represents a Pachca authentication error with guidance for resolution
type AuthError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *AuthError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("PACHCA AUTHENTICATION ERROR: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("PACHCA AUTHENTICATION ERROR: %s (%v)", e.Message, e.err)
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// matchAuthError checks if an error carries an authentication status.
// Returns nil if no auth error is found.
func matchAuthError(err error) *AuthError {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	message, ok := authGuidance[apiErr.StatusCode]
	if !ok {
		return nil
	}
	return &AuthError{StatusCode: apiErr.StatusCode, Message: message, err: err}
}

// WrapError checks for auth errors and returns an enhanced error with logging.
// Call it at the process boundary so the operator sees what to fix.
func WrapError(logger *zap.Logger, operation string, err error) error {
	if err == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if authErr := matchAuthError(err); authErr != nil {
		logger.Error("Pachca authentication failed",
			zap.String("operation", operation),
			zap.String("guidance", authErr.Message),
			zap.Error(err))
		return authErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// ConfigError lists required settings that are missing
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}
