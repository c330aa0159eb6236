package handlers

import (
	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/worker"
)

type Handler struct {
	Config *config.AppConfig
	Worker *worker.Worker
}

func NewHandler(cfg *config.AppConfig, w *worker.Worker) *Handler {
	return &Handler{
		Config: cfg,
		Worker: w,
	}
}
