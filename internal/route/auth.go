package route

import (
	"github.com/skillvento/skillvento/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Auth(r *gin.RouterGroup, ac *controller.AuthController) {
	v1 := r.Group("/v1/auth")
	{
		v1.GET("/jwt/verify/:token", ac.VerifyJwtAccessToken)
		v1.POST("/jwt/refresh", ac.RefreshAccessToken)
	}
}
