package routes

import (
	"github.com/KacperKuznik/image-hosting-api/http/controller"
	middlewares "github.com/KacperKuznik/image-hosting-api/http/middleware"
	"github.com/gin-gonic/gin"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/healthz", ctrl.Healthz)
	r.GET("/expiring-link/:token", ctrl.ResolveExpiringLink)

	apiRoutes := r.Group("/api/v1")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		apiRoutes.GET("/images", ctrl.ListImages)
		apiRoutes.POST("/images", ctrl.UploadImage)
		apiRoutes.DELETE("/images/:id", ctrl.DeleteImage)
		apiRoutes.POST("/generate-expiring-link", ctrl.GenerateExpiringLink)
	}

	return r
}
