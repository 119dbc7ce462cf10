package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mtowers/approach-control/internal/domain"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultBaseURL = "https://oauth.reddit.com"

	// defaultRetryAfter is used when a 429 arrives without a Retry-After
	// header.
	defaultRetryAfter = 10 * time.Second
)

// Credentials identify a script-type OAuth2 app and the account it posts as.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Client is a minimal Reddit API client for a script-type OAuth2 app. It
// covers exactly what the bot needs: the password token grant, the
// new-submission listing, reply expansion, comment submission, and
// distinguish/sticky.
type Client struct {
	authURL    string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	creds      Credentials

	// populated after Authenticate
	accessToken string
}

// NewClient creates a Reddit API client. If baseURL or authURL are empty,
// they default to the public endpoints.
func NewClient(baseURL, authURL string, creds Credentials, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if authURL == "" {
		authURL = defaultAuthURL
	}
	return &Client{
		authURL: authURL,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: userAgent,
		creds:     creds,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

// Authenticate performs the password token grant and stores the session
// token. Calling it again replaces an expired session in place.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	body, err := c.send(req)
	if err != nil {
		return fmt.Errorf("token grant: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("unmarshal token response: %w", err)
	}
	// Reddit reports bad credentials with a 200 carrying an error field.
	if token.Error != "" {
		return fmt.Errorf("token grant rejected: %s", token.Error)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("token response contained no access token")
	}

	c.accessToken = token.AccessToken
	return nil
}

// NewSubmissions fetches the newest submissions in a subreddit, newest
// first, up to limit items.
func (c *Client) NewSubmissions(ctx context.Context, subreddit string, limit int) ([]domain.Post, error) {
	path := fmt.Sprintf("/r/%s/new?limit=%d", subreddit, limit)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch new submissions: %w", err)
	}
	return parseSubmissionListing(body)
}

// ExpandReplies fetches existing replies on a submission, bounded by limit
// items and depth levels.
func (c *Client) ExpandReplies(ctx context.Context, postID string, limit, depth int) ([]domain.Comment, error) {
	path := fmt.Sprintf("/comments/%s?limit=%d&depth=%d", postID, limit, depth)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch replies: %w", err)
	}
	return parseCommentsResponse(body)
}

type commentResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

// Reply submits a comment under the given thing fullname and returns the new
// comment's fullname.
func (c *Client) Reply(ctx context.Context, parentFullname, text string) (string, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", parentFullname)
	form.Set("text", text)

	body, err := c.postForm(ctx, "/api/comment", form)
	if err != nil {
		return "", fmt.Errorf("post comment: %w", err)
	}

	var resp commentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal comment response: %w", err)
	}
	if len(resp.JSON.Errors) > 0 {
		return "", fmt.Errorf("comment rejected: %v", resp.JSON.Errors)
	}
	if len(resp.JSON.Data.Things) == 0 {
		return "", fmt.Errorf("comment response contained no comment")
	}

	var created commentData
	if err := json.Unmarshal(resp.JSON.Data.Things[0].Data, &created); err != nil {
		return "", fmt.Errorf("unmarshal created comment: %w", err)
	}
	return created.Name, nil
}

// Distinguish marks a comment as posted in an official capacity. With sticky
// set, the comment is pinned to the top of the thread.
func (c *Client) Distinguish(ctx context.Context, commentFullname string, sticky bool) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("id", commentFullname)
	form.Set("how", "yes")
	form.Set("sticky", strconv.FormatBool(sticky))

	if _, err := c.postForm(ctx, "/api/distinguish", form); err != nil {
		return fmt.Errorf("distinguish comment: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	return c.send(req)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setHeaders(req)
	return c.send(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryAfter
}
