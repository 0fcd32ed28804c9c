// Package admin is the client side of the article API: an HTTP client and
// the form controller that turns draft edits into create and update
// submissions while keeping a local article list in sync.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"news-portal/internal/domain/entity"
	"news-portal/internal/resilience/retry"
)

// DefaultCookieName is the session cookie set by the API on login.
const DefaultCookieName = "token"

// Article is an article as returned by the API.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"imageUrl"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User is the signed-in account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination mirrors the pagination block of list responses.
type Pagination struct {
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
	Next       *PageRef `json:"next,omitempty"`
	Prev       *PageRef `json:"prev,omitempty"`
}

// Page is one page of the article list.
type Page struct {
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Articles   []Article  `json:"data"`
}

// Query selects a page of articles. Zero values are left to server defaults.
type Query struct {
	Page     int
	Limit    int
	Category string
	Sort     string
	// Filters holds extra field filters such as "createdAt_gte".
	Filters map[string]string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	for k, val := range q.Filters {
		v.Set(k, val)
	}
	return v
}

// Submission is the multipart body of a create or update. Only the
// non-nil fields are sent. Files maps a slot to a local file path.
type Submission struct {
	Fields map[string]string
	Files  map[entity.MediaSlot]string
}

// FieldError is one field-level failure reported by the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Field+": "+f.Message)
		}
		return fmt.Sprintf("api error %d: %s", e.Status, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Client talks to the article API. The session cookie returned by Login is
// kept in a cookie jar; SetToken restores a saved one.
type Client struct {
	base       *url.URL
	http       *http.Client
	cookieName string
	token      string
	retry      retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Jar is replaced
// when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the retry policy for idempotent reads.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient returns a client for the API served at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	c := &Client{
		base:       base,
		http:       &http.Client{Timeout: 60 * time.Second},
		cookieName: DefaultCookieName,
		retry: retry.Config{
			MaxAttempts:    3,
			InitialDelay:   300 * time.Millisecond,
			MaxDelay:       3 * time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.1,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// SetToken installs a previously saved session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, or "" when signed out.
func (c *Client) Token() string {
	if c.token != "" {
		return c.token
	}
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.cookieName && ck.Value != "none" {
			return ck.Value
		}
	}
	return ""
}

// Login signs in and keeps the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return User{}, err
	}
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), "application/json", &out); err != nil {
		return User{}, err
	}
	c.token = ""
	return out.User, nil
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, "", &out)
	return out.User, err
}

// List fetches one page of articles. Transient network failures are retried.
func (c *Client) List(ctx context.Context, q Query) (Page, error) {
	path := "/api/articles"
	if enc := q.values().Encode(); enc != "" {
		path += "?" + enc
	}
	var page Page
	err := retry.WithBackoff(ctx, c.retry, func() error {
		page = Page{}
		return c.do(ctx, http.MethodGet, path, nil, "", &page)
	})
	return page, err
}

// Get fetches one article.
func (c *Client) Get(ctx context.Context, id string) (Article, error) {
	var out struct {
		Data Article `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/articles/"+url.PathEscape(id), nil, "", &out)
	return out.Data, err
}

// Create submits a new article.
func (c *Client) Create(ctx context.Context, s Submission) (Article, error) {
	return c.submit(ctx, http.MethodPost, "/api/articles", s)
}

// Update submits changes to an existing article.
func (c *Client) Update(ctx context.Context, id string, s Submission) (Article, error) {
	return c.submit(ctx, http.MethodPut, "/api/articles/"+url.PathEscape(id), s)
}

// Delete removes an article.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) submit(ctx context.Context, method, path string, s Submission) (Article, error) {
	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return Article{}, err
	}
	var out struct {
		Data Article `json:"data"`
	}
	err = c.do(ctx, method, path, body, contentType, &out)
	return out.Data, err
}

// encodeSubmission buffers the multipart body so that it can be resent.
func encodeSubmission(s Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, v := range s.Fields {
		if err := mw.WriteField(name, v); err != nil {
			return nil, "", err
		}
	}
	for _, slot := range entity.MediaSlots {
		path, ok := s.Files[slot]
		if !ok || path == "" {
			continue
		}
		if err := writeFile(mw, slot.FieldName(), path); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	part, err := mw.CreatePart(filePartHeader(field, filepath.Base(path)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// mediaTypes covers the accepted formats that the builtin mime table may lack.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".tiff": "image/tiff",
	".ico":  "image/x-icon",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".flv":  "video/x-flv",
	".wmv":  "video/x-ms-wmv",
	".3gp":  "video/3gpp",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/x-m4a",
	".flac": "audio/flac",
}

// filePartHeader sets the part type from the file extension, as the API
// checks both.
func filePartHeader(field, filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := mediaTypes[ext]
	if !ok {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	u := c.base.String() + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", "newsctl-"+uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Debug("undecodable api response", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var body struct {
		Error  string       `json:"error"`
		Errors []FieldError `json:"errors"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Errors
	}
	if apiErr.Message == "" && len(apiErr.Fields) == 0 {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
