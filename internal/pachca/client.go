package pachca

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PageSize is the number of records requested per page on both listings
const PageSize = 50

// Client reads users and messages from the Pachca API
type Client struct {
	httpClient *http.Client
	baseURL    string
	pacer      *rate.Limiter
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("pachca token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: newBearerTransport(cfg.Token, logger),
	}

	return newClientWithHTTP(httpClient, cfg.BaseURL, newPacer(cfg), logger), nil
}

// newClientWithHTTP creates a client with a given HTTP client (for testing)
func newClientWithHTTP(httpClient *http.Client, baseURL string, pacer *rate.Limiter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pacer == nil {
		pacer = rate.NewLimiter(rate.Inf, 1)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pacer:      pacer,
		logger:     logger,
	}
}

// newPacer spaces message page requests at least PageDelay apart.
// A burst of one lets the first request go out immediately.
func newPacer(cfg Config) *rate.Limiter {
	if cfg.PageDelay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(cfg.PageDelay), 1)
}

// getJSON issues a GET against endpoint and decodes a 2xx body into out
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return newAPIError(endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// FetchAllUsers walks the cursor-paginated /users listing and builds the user directory.
// Any failed page fails the whole fetch.
func (c *Client) FetchAllUsers(ctx context.Context) (*Directory, error) {
	dir := newDirectory(nil)
	cursor := ""
	pages := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		params := url.Values{}
		params.Set("limit", strconv.Itoa(PageSize))
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page usersResponse
		if err := c.getJSON(ctx, "/users", params, &page); err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		pages++
		dir.Add(page.Data)

		c.logger.Debug("Fetched users page",
			zap.Int("page", pages),
			zap.Int("records", len(page.Data)),
			zap.Bool("has_next", page.Meta.Paginate.NextPage != ""))

		cursor = page.Meta.Paginate.NextPage
		if cursor == "" {
			break
		}
	}

	c.logger.Info("User directory built",
		zap.Int("users", dir.Size()),
		zap.Int("pages", pages))
	return dir, nil
}

// FetchMessages reads every page of /messages for chatID and returns the
// messages oldest first. Pages are requested until one comes back empty.
func (c *Client) FetchMessages(ctx context.Context, chatID string) ([]Message, error) {
	var all []Message

	for page := 1; ; page++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for page %d of chat %s: %w", page, chatID, err)
		}

		params := url.Values{}
		params.Set("chat_id", chatID)
		params.Set("per", strconv.Itoa(PageSize))
		params.Set("page", strconv.Itoa(page))

		var resp messagesResponse
		if err := c.getJSON(ctx, "/messages", params, &resp); err != nil {
			return nil, fmt.Errorf("failed to get messages of chat %s: %w", chatID, err)
		}

		c.logger.Debug("Fetched messages page",
			zap.String("chat_id", chatID),
			zap.Int("page", page),
			zap.Int("records", len(resp.Data)))

		if len(resp.Data) == 0 {
			break
		}
		all = append(all, resp.Data...)
	}

	sortChronological(all)
	return all, nil
}

// sortChronological orders messages by ascending id; the API returns newest first
func sortChronological(msgs []Message) {
	slices.SortStableFunc(msgs, func(a, b Message) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
