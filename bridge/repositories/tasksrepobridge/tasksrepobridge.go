// Package tasksrepobridge exposes the task repository over HTTP.
package tasksrepobridge

import (
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/sdk/logger"
)

type bridge struct {
	log             *logger.Logger
	tasksRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:             log,
		tasksRepository: tasksRepository,
	}
}
