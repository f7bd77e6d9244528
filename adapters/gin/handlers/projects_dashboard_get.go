package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	dashgin "github.com/facture-ma/dashkit/adapters/gin"
	"github.com/facture-ma/dashkit/adapters/ginutil"
	core "github.com/facture-ma/dashkit/core"
)

// HandleProjectsDashboardGET returns the classified project portfolio.
// GET /projects/dashboard
//
// 403 when the member lacks the projects capability, 402 when the company
// has no active pro entitlement (clients render the upgrade screen).
func HandleProjectsDashboardGET(svc *core.Service, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLProjectsDashboardGet) {
			ginutil.TooMany(c)
			return
		}
		id, ok := dashgin.CurrentIdentity(c)
		if !ok {
			ginutil.Unauthorized(c, "missing_identity")
			return
		}
		sum, err := svc.ProjectDashboard(c.Request.Context(), id.CompanyID, id.ID)
		switch {
		case errors.Is(err, core.ErrPermissionDenied):
			ginutil.Forbidden(c, "permission_denied")
			return
		case errors.Is(err, core.ErrProRequired):
			ginutil.PaymentRequired(c, "pro_required")
			return
		case err != nil:
			ginutil.ServerErr(c, "failed_to_load_projects")
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}
