package route

import (
	"github.com/skillvento/skillvento/internal/controller"
	"github.com/skillvento/skillvento/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/certificates")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", cc.CreateCertificate)
		v1.GET("", cc.GetCertificates)
		v1.GET("/:certificateId", cc.GetCertificateById)
		v1.PATCH("/:certificateId", cc.UpdateCertificate)
		v1.DELETE("/:certificateId", cc.DeleteCertificate)
	}
}
