package usersrepobridge

import (
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/logger"
)

// Config holds configuration for the User bridge
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers the user routes on group. Users have no update
// route.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/users", b.httpList, cfg.Middleware...)
	group.GET("/users/{id}", b.httpGetByID, cfg.Middleware...)
	group.GET("/users/by-email/{email}", b.httpGetByEmail, cfg.Middleware...)
	group.POST("/users", b.httpCreate, cfg.Middleware...)
	group.DELETE("/users/{id}", b.httpDelete, cfg.Middleware...)
}
