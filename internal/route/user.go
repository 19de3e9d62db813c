package route

import (
	"github.com/skillvento/skillvento/internal/controller"
	"github.com/skillvento/skillvento/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Users(r *gin.RouterGroup, uc *controller.UserController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/users")
	{
		v1.GET("/me", middleware.AuthMiddleware, uc.Me)

		// Public portfolio page, no auth.
		v1.GET("/:username/showcase", uc.Showcase)
	}
}
