package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fluffyriot/deskpost/internal/models"
)

func postsBody(n int) []byte {
	posts := make([]models.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, models.Post{
			UserID: 1,
			ID:     i,
			Title:  fmt.Sprintf("title %d", i),
			Body:   fmt.Sprintf("body %d", i),
		})
	}
	data, _ := json.Marshal(posts)
	return data
}

func TestFetchPosts_ReturnsLimit(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(postsBody(100))
	}))
	defer s.Close()

	c := NewClient(2 * time.Second)
	posts, err := FetchPosts(context.Background(), c, s.URL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 10 {
		t.Fatalf("expected 10 posts, got %d", len(posts))
	}
	for _, p := range posts {
		if p.Title == "" || p.Body == "" {
			t.Fatalf("post %d has empty title or body", p.ID)
		}
	}
}

func TestFetchPosts_ShortList(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(postsBody(3))
	}))
	defer s.Close()

	c := NewClient(2 * time.Second)
	posts, err := FetchPosts(context.Background(), c, s.URL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
}

func TestFetchPosts_InvalidStatus(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream err", http.StatusBadGateway)
	}))
	defer s.Close()

	c := NewClient(2 * time.Second)
	_, err := FetchPosts(context.Background(), c, s.URL, 10)
	if err == nil {
		t.Fatalf("expected non-2xx error, got nil")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
}

func TestFetchPosts_InvalidJSON(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer s.Close()

	c := NewClient(2 * time.Second)
	_, err := FetchPosts(context.Background(), c, s.URL, 10)
	if err == nil {
		t.Fatalf("expected JSON decode error, got nil")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
}

func TestFetchPosts_NetworkDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := s.URL
	s.Close()

	c := NewClient(2 * time.Second)
	_, err := FetchPosts(context.Background(), c, url, 10)
	if err == nil {
		t.Fatalf("expected transport error, got nil")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
}
