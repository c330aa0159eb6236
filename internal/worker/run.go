package worker

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/fetcher"
	"github.com/fluffyriot/deskpost/internal/report"
	"github.com/fluffyriot/deskpost/internal/typist"
)

var ErrRunInProgress = errors.New("a run is already in progress")

// runSequence is the driver loop: fetch once, then type each post to
// completion before the next one is opened. The first automation failure
// aborts the remainder, since later posts assume a clean editor state.
func runSequence(f *fetcher.Client, t *typist.Typist, cfg *config.AppConfig) (*report.RunReport, error) {
	log.Println("Worker: Starting run...")
	ctx := context.Background()

	rep := report.NewRunReport()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		rep.Failure = err.Error()
		rep.Finish()
		return rep, err
	}

	posts, err := fetcher.FetchPosts(ctx, f, cfg.SourceURL, cfg.PostCount)
	if err != nil {
		log.Printf("Worker: Fetch failed: %v", err)
		rep.Failure = err.Error()
		rep.Finish()
		return rep, err
	}
	log.Printf("Worker: Fetched %d posts from %s", len(posts), cfg.SourceURL)

	var runErr error
	for i, post := range posts {
		if i > 0 {
			// Let the OS settle focus and window state between posts.
			time.Sleep(cfg.PostDelay)
		}

		path, err := t.TypePost(ctx, post)
		if err != nil {
			log.Printf("Worker: Failed to process post %d: %v", post.ID, err)
			rep.AddFailed(post.ID, err.Error())
			for _, rest := range posts[i+1:] {
				rep.AddSkipped(rest.ID)
			}
			rep.Failure = err.Error()
			runErr = err
			break
		}
		rep.AddSaved(post.ID, path)
	}

	rep.Finish()
	log.Printf("Worker: Completed %d of %d posts in %s", rep.SavedCount(), len(posts), cfg.OutputDir)

	if cfg.ReportDir != "" {
		filename, err := report.WriteCsv(rep, cfg.ReportDir)
		if err != nil {
			log.Printf("Worker: Failed to write run report: %v", err)
		} else {
			log.Printf("Worker: Run report written to %s", filename)
		}
	}

	return rep, runErr
}
