package main

import (
	"log"

	"github.com/fluffyriot/deskpost/internal/api/handlers"
	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/fetcher"
	"github.com/fluffyriot/deskpost/internal/typist"
	"github.com/fluffyriot/deskpost/internal/typist/browser"
	"github.com/fluffyriot/deskpost/internal/typist/native"
	"github.com/fluffyriot/deskpost/internal/worker"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	httpClient := fetcher.NewClient(cfg.HTTPTimeout)

	var auto typist.Automator
	switch cfg.Backend {
	case config.Browser:
		auto = browser.New(cfg)
	default:
		auto = native.New(cfg)
	}

	t := typist.New(auto, cfg)
	w := worker.NewWorker(httpClient, t, cfg)

	rep, err := w.RunOnce()
	if err != nil {
		t.Shutdown()
		log.Fatalln(err)
	}
	log.Printf("Run %s finished: %d posts saved to %s", rep.ID, rep.SavedCount(), cfg.OutputDir)

	if cfg.ListenAddr == "" {
		t.Shutdown()
		return
	}

	h := handlers.NewHandler(cfg, w)

	r := gin.Default()

	r.GET("/healthz", h.HealthCheckHandler)
	r.GET("/status", h.StatusHandler)
	r.POST("/run", h.TriggerRunHandler)

	r.Run(cfg.ListenAddr)
}
