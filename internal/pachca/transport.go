package pachca

import (
	"net/http"

	"go.uber.org/zap"
)

// bearerTransport wraps an http.RoundTripper to add the Authorization header
type bearerTransport struct {
	transport http.RoundTripper
	token     string
	logger    *zap.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	t.logger.Debug("Pachca request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("query", r.URL.RawQuery))
	return t.transport.RoundTrip(r)
}

// newBearerTransport creates a transport with bearer token authentication
func newBearerTransport(token string, logger *zap.Logger) *bearerTransport {
	return &bearerTransport{
		transport: http.DefaultTransport,
		token:     token,
		logger:    logger,
	}
}
