// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TriggerRunHandler(c *gin.Context) {

	if h.Worker.IsRunning() {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "A run is already in progress",
		})
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in manual run trigger: %v", r)
			}
		}()
		if _, err := h.Worker.RunOnce(); err != nil {
			log.Printf("Handler: Manual run failed: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Run triggered successfully",
	})
}

func (h *Handler) StatusHandler(c *gin.Context) {

	lastRun := h.Worker.LastRun()
	if lastRun == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"running": h.Worker.IsRunning(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"running":  h.Worker.IsRunning(),
		"last_run": lastRun,
	})
}
