package route

import (
	"github.com/skillvento/skillvento/internal/controller"
	"github.com/skillvento/skillvento/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Verification(r *gin.RouterGroup, vc *controller.VerificationController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/verify")
	{
		// Lookup and QR are public so shared links work for anyone.
		v1.GET("/:code", vc.VerifyByCode)
		v1.GET("/:code/qrcode", vc.QRCode)

		v1.POST("/:code/share", middleware.AuthMiddleware, vc.Share)
	}
}
