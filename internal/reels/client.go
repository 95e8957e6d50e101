package reels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultPageLimit = 10

// APIError is returned for any non-2xx response.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Body)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	newKey  func() string
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
		newKey:  uuid.NewString,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type listEnvelope struct {
	Reels      []Reel `json:"reels"`
	Pagination struct {
		HasNextPage bool `json:"hasNextPage"`
		CurrentPage int  `json:"currentPage"`
	} `json:"pagination"`
}

func (c *Client) ListReels(ctx context.Context, mode Mode, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	q := make(url.Values)
	switch mode.Kind {
	case ModeCategory:
		q.Set("category", mode.Value)
	case ModeUser:
		q.Set("userId", mode.Value)
	case ModeHashtag:
		q.Set("hashtag", mode.Value)
	case ModeTrending:
		q.Set("trending", "true")
	default:
		return Page{}, fmt.Errorf("unsupported feed mode: %q", mode.Kind)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/reels?"+q.Encode(), nil)
	if err != nil {
		return Page{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("list reels request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, readAPIError("list reels", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("read reels response: %w", err)
	}

	out, err := decodePage(body, page)
	if err != nil {
		return Page{}, err
	}
	if !mode.Paginated() {
		out.HasNextPage = false
	}
	for i := range out.Reels {
		out.Reels[i].VideoURL = NormalizeVideoURL(c.baseURL, out.Reels[i].VideoURL)
		out.Reels[i].Reactions = NormalizeReactions(out.Reels[i].Reactions)
	}
	return out, nil
}

func decodePage(body []byte, page int) (Page, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reels []Reel
		if err := json.Unmarshal(trimmed, &reels); err != nil {
			return Page{}, fmt.Errorf("decode reels response: %w", err)
		}
		return Page{Reels: reels, CurrentPage: page}, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page{}, fmt.Errorf("decode reels response: %w", err)
	}
	current := env.Pagination.CurrentPage
	if current < 1 {
		current = page
	}
	return Page{Reels: env.Reels, HasNextPage: env.Pagination.HasNextPage, CurrentPage: current}, nil
}

func (c *Client) Like(ctx context.Context, reelID string) (Patch, error) {
	return c.mutate(ctx, reelID, "like", nil)
}

func (c *Client) Save(ctx context.Context, reelID string) (Patch, error) {
	return c.mutate(ctx, reelID, "save", nil)
}

func (c *Client) Share(ctx context.Context, reelID string) (Patch, error) {
	return c.mutate(ctx, reelID, "share", nil)
}

func (c *Client) Comment(ctx context.Context, reelID, text string) (Patch, error) {
	return c.mutate(ctx, reelID, "comment", map[string]string{"text": text})
}

func (c *Client) React(ctx context.Context, reelID string, reaction ReactionType) (Patch, error) {
	return c.mutate(ctx, reelID, "reaction", map[string]string{"type": string(reaction)})
}

func (c *Client) mutate(ctx context.Context, reelID, action string, payload any) (Patch, error) {
	if strings.TrimSpace(reelID) == "" {
		return Patch{}, fmt.Errorf("%s: reel id is required", action)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Patch{}, fmt.Errorf("encode %s payload: %w", action, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/reels/"+url.PathEscape(reelID)+"/"+action, body)
	if err != nil {
		return Patch{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Idempotency-Key", c.newKey())

	resp, err := c.http.Do(req)
	if err != nil {
		return Patch{}, fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Patch{}, readAPIError(action, resp)
	}

	var patch Patch
	if err := json.NewDecoder(resp.Body).Decode(&patch); err != nil {
		return Patch{}, fmt.Errorf("decode %s response: %w", action, err)
	}
	return patch, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func readAPIError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
