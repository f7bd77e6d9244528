package handlers

import (
	"github.com/gin-gonic/gin"

	dashgin "github.com/facture-ma/dashkit/adapters/gin"
	"github.com/facture-ma/dashkit/adapters/ginutil"
	core "github.com/facture-ma/dashkit/core"
	"github.com/facture-ma/dashkit/token"
)

// Mount registers the dashboard endpoints on r behind bearer auth.
func Mount(r gin.IRouter, svc *core.Service, v *token.Verifier, rl ginutil.RateLimiter) {
	g := r.Group("", dashgin.AuthRequired(v))
	g.GET("/account", HandleAccountGET(svc, rl))
	g.GET("/menu", HandleMenuGET(svc, rl))
	g.GET("/projects/dashboard", HandleProjectsDashboardGET(svc, rl))
}
