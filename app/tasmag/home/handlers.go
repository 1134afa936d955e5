// Package home serves the site root and the health check.
package home

import (
	"context"
	"net/http"

	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/logger"
)

// Welcome is the body served at the site root.
const Welcome = "Welcome to Tasmag!"

type status struct {
	Status string `json:"status"`
}

// Config holds configuration for the home routes.
type Config struct {
	Log         *logger.Logger
	StatusCheck func(ctx context.Context) error
}

type handlers struct {
	log         *logger.Logger
	statusCheck func(ctx context.Context) error
}

// AddHandlers registers the root and health routes on wh.
func AddHandlers(wh *web.WebHandler, cfg Config) {
	h := handlers{
		log:         cfg.Log,
		statusCheck: cfg.StatusCheck,
	}

	wh.GET("/{$}", h.welcome)
	wh.GET("/healthz", h.health)
}

func (h handlers) welcome(ctx context.Context, r *http.Request) web.Encoder {
	return web.NewTextResponse(Welcome)
}

func (h handlers) health(ctx context.Context, r *http.Request) web.Encoder {
	if h.statusCheck != nil {
		if err := h.statusCheck(ctx); err != nil {
			h.log.WarnContext(ctx, "health check failed", "error", err)
			return web.NewJSONResponseWithStatus(status{Status: "unavailable"}, http.StatusServiceUnavailable)
		}
	}
	return web.NewJSONResponse(status{Status: "ok"})
}
