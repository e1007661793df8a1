// Package http holds the contract between the router and the domain modules.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module is a domain module that mounts its own routes. The router only
// knows modules through this interface.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's routes on the groups in ctx.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups a module may mount on.
type RouterContext struct {
	// Engine is the root engine, for routes outside /api/v1.
	Engine *gin.Engine
	// V1 is the rate-limited /api/v1 group.
	V1 *gin.RouterGroup
	// Protected is V1 behind the bearer token guard, or V1 itself when no
	// token secret is configured.
	Protected *gin.RouterGroup
}
