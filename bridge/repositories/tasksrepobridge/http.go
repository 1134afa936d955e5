package tasksrepobridge

import (
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers the task routes on group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.GET("/tasks/{id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.PUT("/tasks/{id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{id}", b.httpDelete, cfg.Middleware...)
}
