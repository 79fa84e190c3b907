// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// testServer creates a test HTTP server and a Client connected to it.
// The server is cleaned up when the test completes.
func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding login body: %v", err)
		}
		if body.Email != "alice@example.com" || body.Password != "secret" {
			t.Errorf("login body = %+v", body)
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(LoginResponse{
			Token: "t1",
			User:  schema.User{ID: 1, Name: "Alice", Role: schema.RoleAdmin},
		})
	})

	client := testServer(t, mux)
	result, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "t1" {
		t.Errorf("Token = %q, want t1", result.Token)
	}
	if result.User.Name != "Alice" || result.User.Role != schema.RoleAdmin {
		t.Errorf("User = %+v", result.User)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
	})

	client := testServer(t, mux)
	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	// The server's message must survive verbatim for the login form
	// to display.
	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("error should wrap StatusError, got %T: %v", err, err)
	}
	if status.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", status.Status)
	}
	if status.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want Invalid credentials", status.Message)
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(LoginResponse{
			Token: "t1",
			User:  schema.User{ID: 1, Name: "Alice", Role: "superuser"},
		})
	})

	client := testServer(t, mux)
	if _, err := client.Login(context.Background(), "a@b.c", "p"); err == nil {
		t.Fatal("expected error for unknown role in login response")
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if body["role"] != "member" {
			t.Errorf("role = %q, want member", body["role"])
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		json.NewEncoder(writer).Encode(RegisterResponse{Message: "User registered successfully", UserID: 7})
	})

	client := testServer(t, mux)
	result, err := client.Register(context.Background(), "Bob", "bob@example.com", "secret", schema.RoleMember)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.UserID != 7 {
		t.Errorf("UserID = %d, want 7", result.UserID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Email already exists"})
	})

	client := testServer(t, mux)
	_, err := client.Register(context.Background(), "Bob", "bob@example.com", "secret", schema.RoleMember)
	var status *StatusError
	if !errors.As(err, &status) || status.Message != "Email already exists" {
		t.Fatalf("err = %v, want StatusError with server message", err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()

	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(writer http.ResponseWriter, request *http.Request) {
		sawAuth = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string][]schema.Task{"tasks": nil})
	})

	client := testServer(t, mux)
	client.SetToken("t1")
	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if sawAuth != "Bearer t1" {
		t.Errorf("Authorization = %q, want Bearer t1", sawAuth)
	}
}

func TestListTasksUnauthorized(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Token has expired"})
	})

	client := testServer(t, mux)
	client.SetToken("stale")
	_, err := client.ListTasks(context.Background())
	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if status.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", status.Status)
	}
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	// A server that is immediately closed produces a connection error.
	server := httptest.NewServer(http.NewServeMux())
	server.Close()

	client := New(server.URL)
	_, err := client.ListTasks(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var status *StatusError
	if errors.As(err, &status) {
		t.Error("transport failure should not produce a StatusError")
	}
	if !strings.Contains(err.Error(), "list tasks") {
		t.Errorf("error should name the operation: %v", err)
	}
}

// fakeTaskBackend is an in-memory task service for exercising the
// mutate-then-list flow end to end.
type fakeTaskBackend struct {
	mu     sync.Mutex
	nextID int64
	tasks  []schema.Task
}

func (backend *fakeTaskBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(writer http.ResponseWriter, request *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string][]schema.Task{"tasks": backend.tasks})
	})
	mux.HandleFunc("POST /tasks", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		json.NewDecoder(request.Body).Decode(&body)
		backend.mu.Lock()
		backend.nextID++
		backend.tasks = append(backend.tasks, schema.Task{
			ID: backend.nextID, Title: body.Title, Description: body.Description, UserID: 1,
		})
		backend.mu.Unlock()
		writer.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("DELETE /tasks/{id}", func(writer http.ResponseWriter, request *http.Request) {
		id, _ := strconv.ParseInt(request.PathValue("id"), 10, 64)
		backend.mu.Lock()
		defer backend.mu.Unlock()
		for index, task := range backend.tasks {
			if task.ID == id {
				backend.tasks = append(backend.tasks[:index], backend.tasks[index+1:]...)
				writer.WriteHeader(http.StatusOK)
				return
			}
		}
		writer.WriteHeader(http.StatusNotFound)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Task not found"})
	})
	return mux
}

func TestCreateThenListIncludesTask(t *testing.T) {
	t.Parallel()

	backend := &fakeTaskBackend{}
	client := testServer(t, backend.handler())
	client.SetToken("t1")

	if err := client.CreateTask(context.Background(), "Write report", "quarterly numbers"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Title != "Write report" || tasks[0].Description != "quarterly numbers" {
		t.Errorf("task = %+v", tasks[0])
	}
}

func TestDeleteThenListExcludesTask(t *testing.T) {
	t.Parallel()

	backend := &fakeTaskBackend{}
	client := testServer(t, backend.handler())
	client.SetToken("t1")

	if err := client.CreateTask(context.Background(), "Ephemeral", ""); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	if err := client.DeleteTask(context.Background(), tasks[0].ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, err = client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks after delete: %v", err)
	}
	for _, task := range tasks {
		if task.ID == 1 {
			t.Errorf("deleted task still listed: %+v", task)
		}
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string][]schema.User{"users": {
			{ID: 1, Name: "Alice", Role: schema.RoleAdmin},
			{ID: 2, Name: "Bob", Role: schema.RoleMember},
		}})
	})

	client := testServer(t, mux)
	client.SetToken("t1")
	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[1].Name != "Bob" || users[1].Role != schema.RoleMember {
		t.Errorf("users[1] = %+v", users[1])
	}
}

func TestDeleteUserForbidden(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /users/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusForbidden)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Admin access required"})
	})

	client := testServer(t, mux)
	client.SetToken("t1")
	err := client.DeleteUser(context.Background(), 2)
	var status *StatusError
	if !errors.As(err, &status) || status.Status != http.StatusForbidden {
		t.Fatalf("err = %v, want 403 StatusError", err)
	}
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	var sawMethod, sawPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		sawMethod = request.Method
		sawPath = request.URL.Path
		writer.WriteHeader(http.StatusOK)
	})

	client := testServer(t, mux)
	client.SetToken("t1")
	if err := client.UpdateTask(context.Background(), 5, "New title", "new body"); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if sawMethod != http.MethodPut || sawPath != "/tasks/5" {
		t.Errorf("request = %s %s, want PUT /tasks/5", sawMethod, sawPath)
	}
}
