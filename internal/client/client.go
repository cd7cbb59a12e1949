// Package client is a small typed client for the HTTP API. The admin
// dashboard tooling and the end-to-end tests share it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edupath/edupath-backend/internal/model"
)

// FetchError carries the HTTP status and the server's message for any
// non-2xx response. Requests are not retried.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a FetchError with status 404.
func IsNotFound(err error) bool {
	fe, ok := err.(*FetchError)
	return ok && fe.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches an admin bearer token to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) Courses(ctx context.Context) ([]model.Course, error) {
	var out []model.Course
	err := c.do(ctx, http.MethodGet, "/api/courses", nil, &out)
	return out, err
}

func (c *Client) Course(ctx context.Context, id string) (*model.Course, error) {
	var out model.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	var out model.Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, fields map[string]any) (*model.Course, error) {
	var out model.Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+id, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+id, nil, nil)
}

func (c *Client) BlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	var out []model.BlogPost
	err := c.do(ctx, http.MethodGet, "/api/blogposts", nil, &out)
	return out, err
}

func (c *Client) CreateBlogPost(ctx context.Context, post *model.BlogPost) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := c.do(ctx, http.MethodPost, "/api/blogposts", post, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlogPostView is a post plus the server-rendered article HTML.
type BlogPostView struct {
	model.BlogPost
	ContentHTML string `json:"contentHtml"`
}

func (c *Client) BlogPostBySlug(ctx context.Context, slug string) (*BlogPostView, error) {
	var out BlogPostView
	if err := c.do(ctx, http.MethodGet, "/api/blogposts/slug/"+slug, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitEnquiry(ctx context.Context, enquiry *model.Enquiry) (*model.Enquiry, error) {
	var out model.Enquiry
	if err := c.do(ctx, http.MethodPost, "/api/enquiries", enquiry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Enquiries lists the submitted enquiries. Admin token required.
func (c *Client) Enquiries(ctx context.Context) ([]model.Enquiry, error) {
	var out []model.Enquiry
	err := c.do(ctx, http.MethodGet, "/api/enquiries", nil, &out)
	return out, err
}

func (c *Client) Testimonials(ctx context.Context) ([]model.Testimonial, error) {
	var out []model.Testimonial
	err := c.do(ctx, http.MethodGet, "/api/testimonials", nil, &out)
	return out, err
}

// LoginResult is the payload of a successful credential exchange.
type LoginResult struct {
	Token   string          `json:"token"`
	IsAdmin bool            `json:"isAdmin"`
	User    model.AdminUser `json:"user"`
}

// Login exchanges credentials for a token and remembers it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == "" {
			payload.Message = strings.TrimSpace(string(raw))
		}
		return &FetchError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
