// Package github is a minimal REST client for GitHub issues.
package github

import (
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

	"golang.org/x/oauth2"

	"github.com/runoshun/daytrack/internal/domain"
)

const (
	defaultBaseURL  = "https://api.github.com"
	commentsPerPage = 100
	maxCommentPages = 20
)

// Ensure Client implements domain.IssueAPI.
var _ domain.IssueAPI = (*Client)(nil)

// Client fetches issues through the GitHub REST API.
type Client struct {
	HTTPClient *http.Client
	Tokens     domain.TokenStore // optional: used when the project config has no token
}

// NewClient creates a client. tokens may be nil.
func NewClient(tokens domain.TokenStore) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Tokens:     tokens,
	}
}

type apiUser struct {
	Login string `json:"login"`
}

type apiComment struct {
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
	User      apiUser   `json:"user"`
}

type apiIssue struct {
	UpdatedAt   time.Time       `json:"updated_at"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	State       string          `json:"state"`
	HTMLURL     string          `json:"html_url"`
	ID          int64           `json:"id"`
	Number      int             `json:"number"`
}

type searchResponse struct {
	Items []apiIssue `json:"items"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Body   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: status %d: %s", e.Status, e.Body)
}

// GetByID fetches an issue with all of its comments.
func (c *Client) GetByID(ctx context.Context, number int, cfg *domain.GithubConfig) (*domain.Issue, error) {
	if cfg == nil || cfg.Repo == "" {
		return nil, domain.ErrNoTrackerConfig
	}
	client := c.httpClient(ctx, cfg)

	var raw apiIssue
	path := fmt.Sprintf("/repos/%s/issues/%d", cfg.Repo, number)
	if err := c.get(ctx, client, cfg, path, nil, &raw); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, fmt.Errorf("#%d: %w", number, domain.ErrIssueNotFound)
		}
		return nil, err
	}
	issue := toDomain(raw)

	for page := 1; page <= maxCommentPages; page++ {
		var comments []apiComment
		query := url.Values{
			"per_page": {strconv.Itoa(commentsPerPage)},
			"page":     {strconv.Itoa(page)},
		}
		if err := c.get(ctx, client, cfg, path+"/comments", query, &comments); err != nil {
			return nil, err
		}
		for _, cm := range comments {
			issue.Comments = append(issue.Comments, domain.IssueComment{
				CreatedAt: cm.CreatedAt,
				Body:      cm.Body,
				User:      domain.IssueUser{Login: cm.User.Login},
			})
		}
		if len(comments) < commentsPerPage {
			break
		}
	}
	return issue, nil
}

// Search finds open and closed issues of the configured repository matching term.
// Pull requests are skipped.
func (c *Client) Search(ctx context.Context, term string, cfg *domain.GithubConfig) ([]*domain.Issue, error) {
	if cfg == nil || cfg.Repo == "" {
		return nil, domain.ErrNoTrackerConfig
	}
	q := strings.TrimSpace(term + " repo:" + cfg.Repo + " is:issue")
	var resp searchResponse
	if err := c.get(ctx, c.httpClient(ctx, cfg), cfg, "/search/issues", url.Values{"q": {q}}, &resp); err != nil {
		return nil, err
	}
	issues := make([]*domain.Issue, 0, len(resp.Items))
	for _, item := range resp.Items {
		if len(item.PullRequest) > 0 {
			continue
		}
		issues = append(issues, toDomain(item))
	}
	return issues, nil
}

func (c *Client) get(ctx context.Context, client *http.Client, cfg *domain.GithubConfig, path string, query url.Values, out any) error {
	base := cfg.APIBaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := strings.TrimSuffix(base, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("github: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("github: decode response: %w", err)
	}
	return nil
}

// httpClient returns a client authenticated with the project token, falling back
// to the keychain. Without any token requests are anonymous.
func (c *Client) httpClient(ctx context.Context, cfg *domain.GithubConfig) *http.Client {
	base := c.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 15 * time.Second}
	}
	token := cfg.Token
	if token == "" && c.Tokens != nil {
		token, _ = c.Tokens.Get(domain.GithubTokenScope)
	}
	if token == "" {
		return base
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	client.Timeout = base.Timeout
	return client
}

func toDomain(raw apiIssue) *domain.Issue {
	return &domain.Issue{
		ID:        raw.ID,
		Number:    raw.Number,
		Title:     raw.Title,
		Body:      raw.Body,
		State:     raw.State,
		HTMLURL:   raw.HTMLURL,
		UpdatedAt: raw.UpdatedAt,
	}
}
