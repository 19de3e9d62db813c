package controller

import (
	"github.com/skillvento/skillvento/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"app": "skillvento-api",
		"env": ic.app.Config.ENV,
	})
}
