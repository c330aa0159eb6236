// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheckHandler(c *gin.Context) {

	if err := os.MkdirAll(h.Config.OutputDir, 0755); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "failure", "details": "output directory unavailable: " + err.Error()})
		return
	}

	probe := filepath.Join(h.Config.OutputDir, ".deskpost-health")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "failure", "details": "output directory not writable: " + err.Error()})
		return
	}
	os.Remove(probe)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
