package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashgin "github.com/facture-ma/dashkit/adapters/gin"
	"github.com/facture-ma/dashkit/adapters/ginutil"
	core "github.com/facture-ma/dashkit/core"
)

// HandleAccountGET returns the account screen's entitlement state.
// GET /account
func HandleAccountGET(svc *core.Service, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLAccountGet) {
			ginutil.TooMany(c)
			return
		}
		id, ok := dashgin.CurrentIdentity(c)
		if !ok {
			ginutil.Unauthorized(c, "missing_identity")
			return
		}
		out, err := svc.AccountOverview(c.Request.Context(), id.CompanyID, id.ID)
		if err != nil {
			ginutil.ServerErr(c, "failed_to_load_account")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
