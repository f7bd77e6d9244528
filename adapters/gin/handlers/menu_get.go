package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashgin "github.com/facture-ma/dashkit/adapters/gin"
	"github.com/facture-ma/dashkit/adapters/ginutil"
	core "github.com/facture-ma/dashkit/core"
)

// HandleMenuGET returns the resolved sidebar catalog for the caller.
// GET /menu
func HandleMenuGET(svc *core.Service, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLMenuGet) {
			ginutil.TooMany(c)
			return
		}
		id, ok := dashgin.CurrentIdentity(c)
		if !ok {
			ginutil.Unauthorized(c, "missing_identity")
			return
		}
		items, err := svc.Menu(c.Request.Context(), id.CompanyID, id.ID)
		if err != nil {
			ginutil.ServerErr(c, "failed_to_resolve_menu")
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
