// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the task service REST
// API. Every taskdeck surface — the CLI subcommands and the dashboard
// TUI — goes through this client rather than issuing raw requests.
//
// The client mirrors the service's wire format with its own request and
// response types. Authenticated calls attach the session's bearer token;
// the client performs no authorization checks of its own — a stale or
// forged token is only discovered when the server rejects a call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/lib/netutil"
	"github.com/taskdeck/taskdeck/lib/schema"
)

// Client is a typed HTTP client for the task service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a Client for the service at baseURL (including the
// /api/v1 prefix, e.g. "http://localhost:5000/api/v1").
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    trimTrailingSlash(baseURL),
	}
}

// NewForTesting creates a Client with a custom transport. This is used
// by tests that need to redirect requests to a httptest.Server.
func NewForTesting(transport http.RoundTripper, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    trimTrailingSlash(baseURL),
	}
}

func trimTrailingSlash(url string) string {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}

// SetTimeout bounds every request issued by this client. Zero means no
// timeout — a hung request then blocks until the caller's context
// expires, or indefinitely without one.
func (client *Client) SetTimeout(timeout time.Duration) {
	client.httpClient.Timeout = timeout
}

// SetToken sets the bearer token attached to authenticated requests.
// Pass the empty string to drop authentication (after logout).
func (client *Client) SetToken(token string) {
	client.token = token
}

// BaseURL returns the service base URL this client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// StatusError is a non-2xx response from the service. Message holds the
// server-supplied human-readable error when the response carried one;
// callers surfacing failures to the user should prefer it over any
// generic wording.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// statusError builds a StatusError from a failed response, extracting
// the server's {"error": ...} message when present.
func statusError(response *http.Response) *StatusError {
	return &StatusError{
		Status:  response.StatusCode,
		Message: netutil.ErrorMessage(response.Body),
	}
}

// RegisterResponse is the wire format for a successful POST /register.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// Register creates a new account. It does not log in — registration
// and authentication are separate steps, matching the service.
func (client *Client) Register(ctx context.Context, name, email, password string, role schema.Role) (*RegisterResponse, error) {
	request := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{name, email, password, string(role)}

	response, err := client.post(ctx, "/register", request)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	defer response.Body.Close()

	if !success(response) {
		return nil, fmt.Errorf("register: %w", statusError(response))
	}

	var result RegisterResponse
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &result, nil
}

// LoginResponse is the wire format for a successful POST /login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  schema.User `json:"user"`
}

// Login authenticates with email and password. On success the returned
// token and profile are what the caller persists as the session; the
// client itself is not mutated — call SetToken with the result.
func (client *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	request := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	response, err := client.post(ctx, "/login", request)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	if !success(response) {
		return nil, fmt.Errorf("login: %w", statusError(response))
	}

	var result LoginResponse
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login: empty token in response")
	}
	if _, err := schema.ParseRole(string(result.User.Role)); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// ListTasks returns all tasks visible to the caller. The server decides
// the scope (admins see everything, members their own).
func (client *Client) ListTasks(ctx context.Context) ([]schema.Task, error) {
	response, err := client.get(ctx, "/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer response.Body.Close()

	if !success(response) {
		return nil, fmt.Errorf("list tasks: %w", statusError(response))
	}

	var result struct {
		Tasks []schema.Task `json:"tasks"`
	}
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result.Tasks, nil
}

// CreateTask creates a task. Title is required (the server validates);
// description is optional.
func (client *Client) CreateTask(ctx context.Context, title, description string) error {
	request := struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}{title, description}

	response, err := client.post(ctx, "/tasks", request)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	defer response.Body.Close()

	if !success(response) {
		return fmt.Errorf("create task: %w", statusError(response))
	}
	return nil
}

// UpdateTask replaces a task's title and description.
func (client *Client) UpdateTask(ctx context.Context, taskID int64, title, description string) error {
	request := struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}{title, description}

	response, err := client.request(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), request)
	if err != nil {
		return fmt.Errorf("update task %d: %w", taskID, err)
	}
	defer response.Body.Close()

	if !success(response) {
		return fmt.Errorf("update task %d: %w", taskID, statusError(response))
	}
	return nil
}

// DeleteTask deletes a task by ID. Deletion is irreversible and has no
// undo; interactive surfaces confirm before calling this.
func (client *Client) DeleteTask(ctx context.Context, taskID int64) error {
	response, err := client.request(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	defer response.Body.Close()

	if !success(response) {
		return fmt.Errorf("delete task %d: %w", taskID, statusError(response))
	}
	return nil
}

// ListUsers returns all accounts. The server restricts this to admins;
// the client only decides whether to ask.
func (client *Client) ListUsers(ctx context.Context) ([]schema.User, error) {
	response, err := client.get(ctx, "/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer response.Body.Close()

	if !success(response) {
		return nil, fmt.Errorf("list users: %w", statusError(response))
	}

	var result struct {
		Users []schema.User `json:"users"`
	}
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result.Users, nil
}

// DeleteUser deletes an account by ID. Admin-only on the server side.
func (client *Client) DeleteUser(ctx context.Context, userID int64) error {
	response, err := client.request(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	defer response.Body.Close()

	if !success(response) {
		return fmt.Errorf("delete user %d: %w", userID, statusError(response))
	}
	return nil
}

// success reports whether the response has a 2xx status. The service
// uses 200 and 201; anything else is an operation failure.
func success(response *http.Response) bool {
	return response.StatusCode >= 200 && response.StatusCode < 300
}

// get makes an authenticated GET request.
func (client *Client) get(ctx context.Context, path string) (*http.Response, error) {
	return client.request(ctx, http.MethodGet, path, nil)
}

// post makes an authenticated POST request with a JSON body.
func (client *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	return client.request(ctx, http.MethodPost, path, body)
}

// request builds and issues one API request, attaching the bearer
// token when one is set.
func (client *Client) request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}
	return client.httpClient.Do(request)
}
