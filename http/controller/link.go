package controller

import (
	"net/http"

	"github.com/KacperKuznik/image-hosting-api/http/controller/dto"
	"github.com/KacperKuznik/image-hosting-api/utils"
	"github.com/gin-gonic/gin"
)

func (ctrl *Controller) GenerateExpiringLink(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateExpiringLinkRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Link] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	url, err := ctrl.Gate.GenerateLink(ctx, principal(c), req.ImageID, req.ExpirationTime)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Link] Failed to generate link for image %d: %v", req.ImageID, err)
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Link] Generated expiring link for image %d", req.ImageID)
	utils.JSON200(c, gin.H{"link": url})
}

// ResolveExpiringLink is the one unauthenticated image route: a valid,
// unexpired token redirects to the original blob.
func (ctrl *Controller) ResolveExpiringLink(c *gin.Context) {
	ctx := c.Request.Context()

	location, err := ctrl.Gate.ResolveLink(ctx, c.Param("token"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	c.Redirect(http.StatusFound, location)
}

func (ctrl *Controller) Healthz(c *gin.Context) {
	utils.JSON200(c, gin.H{"status": "ok"})
}
