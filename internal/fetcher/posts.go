package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fluffyriot/deskpost/internal/models"
)

// FetchError covers everything that can go wrong between us and the posts
// endpoint: transport failure, a non-2xx status, or a body that does not
// decode as a post list.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching posts from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchPosts issues a single GET against the collection endpoint and returns
// the first limit posts. No retry is attempted.
func FetchPosts(ctx context.Context, c *Client, url string, limit int) ([]models.Post, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %v %v", resp.StatusCode, resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}

	return posts, nil
}
