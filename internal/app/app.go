// Package app assembles the HTTP service: router, handlers and the
// simulator backends they dispatch to.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qleap/qleap/internal/config"
	"github.com/qleap/qleap/internal/logger"
	"github.com/qleap/qleap/internal/server"
	"github.com/qleap/qleap/internal/server/router"
)

type (
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	appServer struct {
		logger    *logger.Logger
		router    *router.Router
		version   string
		shots     int
		workers   int
		backend   string
		maxQubits int
	}
)

// NewServer wires config, logger and routes into a runnable server.
func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug: options.C.GetBool("debug"),
	})
	a := &appServer{
		logger:    l,
		router:    r,
		version:   options.Version,
		shots:     options.C.GetInt("shots"),
		workers:   options.C.GetInt("workers"),
		backend:   options.C.GetString("backend"),
		maxQubits: options.C.GetInt("max_qubits"),
	}
	a.router.SetRoutes(a.routes())
	return a, nil
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Str("version", a.version).
		Msg("Starting simulator service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*logger.Logger, error) {
	if loggerInstance, ok := c.Get("logger"); ok {
		if loggerInstance, ok := loggerInstance.(*logger.Logger); ok {
			return loggerInstance, nil
		}
	}
	err := errors.New("logger not found in context")
	a.logger.Error().Err(err).Send()
	c.String(http.StatusInternalServerError, internalServerErrorMsg)
	return nil, err
}
