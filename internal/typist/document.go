package typist

import (
	"fmt"
	"strings"

	"github.com/fluffyriot/deskpost/internal/models"
)

// Filename is deterministic per post id. Ids repeat across runs, so a second
// run overwrites the first; that is the intended behavior, not a defect.
func Filename(postID int) string {
	return fmt.Sprintf("post %d.txt", postID)
}

// BuildDocument renders the text that gets typed into the editor: a header
// with the post id and title, the body, and a source link back to the API.
func BuildDocument(post models.Post, sourceURL string) string {
	lines := []string{
		fmt.Sprintf("Post %d: %s", post.ID, post.Title),
		"by JSONPlaceholder",
		"---",
		post.Body,
		"",
		fmt.Sprintf("Source: %s/%d", strings.TrimRight(sourceURL, "/"), post.ID),
	}
	return strings.Join(lines, "\n")
}
