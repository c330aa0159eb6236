// SPDX-License-Identifier: AGPL-3.0-only
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	StatusSaved   = "saved"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

type Result struct {
	PostID int    `json:"post_id"`
	File   string `json:"file,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type RunReport struct {
	ID         uuid.UUID `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
	Failure    string    `json:"failure,omitempty"`
}

func NewRunReport() *RunReport {
	return &RunReport{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

func (r *RunReport) AddSaved(postID int, file string) {
	r.Results = append(r.Results, Result{PostID: postID, File: file, Status: StatusSaved})
}

func (r *RunReport) AddFailed(postID int, reason string) {
	r.Results = append(r.Results, Result{PostID: postID, Status: StatusFailed, Reason: reason})
}

func (r *RunReport) AddSkipped(postID int) {
	r.Results = append(r.Results, Result{PostID: postID, Status: StatusSkipped})
}

func (r *RunReport) Finish() {
	r.FinishedAt = time.Now()
}

func (r *RunReport) SavedCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Status == StatusSaved {
			count++
		}
	}
	return count
}

// WriteCsv exports the per-post outcomes of a run into dir and returns the
// generated filename.
func WriteCsv(r *RunReport, dir string) (string, error) {

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := filepath.Join(dir, fmt.Sprintf("run_%s_%s.csv", r.ID.String(), r.StartedAt.Format("20060102_150405")))
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{
		"run_id",
		"started_at",
		"finished_at",
		"post_id",
		"status",
		"file",
		"reason",
	}); err != nil {
		return "", err
	}

	for _, res := range r.Results {
		if err := writer.Write([]string{
			r.ID.String(),
			r.StartedAt.Format(time.RFC3339),
			r.FinishedAt.Format(time.RFC3339),
			strconv.Itoa(res.PostID),
			res.Status,
			res.File,
			res.Reason,
		}); err != nil {
			return "", err
		}
	}

	return filename, nil
}
