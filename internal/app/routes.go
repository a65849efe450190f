package app

import (
	"net/http"

	"github.com/qleap/qleap/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "Health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "Backends",
			Method:      http.MethodGet,
			Pattern:     "/api/backends",
			HandlerFunc: a.BackendsHandler,
		},
		{
			Name:        "ExecuteCircuit",
			Method:      http.MethodPost,
			Pattern:     "/api/execute",
			HandlerFunc: a.ExecuteCircuit,
		},
		{
			Name:        "CompileQASM",
			Method:      http.MethodPost,
			Pattern:     "/api/qasm",
			HandlerFunc: a.CompileQASM,
		},
	}
}
