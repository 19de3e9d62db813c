package controller

import (
	"errors"
	"net/http"

	"github.com/skillvento/skillvento/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	*baseController
}

func (uc UserController) Me(ctx *gin.Context) {
	authUser, err := uc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := uc.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusNotFound, "User not found", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}

// Showcase is the public portfolio page: the user's profile plus every
// certificate they marked public. No auth required.
func (uc UserController) Showcase(ctx *gin.Context) {
	username := ctx.Param("username")

	user, err := uc.app.Repository.User.GetByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "User not found", util.GenerateErrorMessages(err), nil)
			return
		}

		uc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	certificates, err := uc.app.Repository.Certificate.GetPublicByUserId(ctx, nil, user.ID)
	if err != nil {
		uc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": gin.H{
			"username":   user.Username,
			"firstName":  user.FirstName,
			"lastName":   user.LastName,
			"profileUrl": user.ProfileURL,
		},
		"certificates": certificates,
	})
}
