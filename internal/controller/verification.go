package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/skillvento/skillvento/internal/mailer"
	"github.com/skillvento/skillvento/internal/model"
	"github.com/skillvento/skillvento/internal/queue"
	"github.com/skillvento/skillvento/internal/util"
	"github.com/skillvento/skillvento/pkg/skillvento"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VerificationController struct {
	*baseController
}

const ErrVerificationCodeNotFound = "no verified certificate matches this code"

func (vc VerificationController) verifyURL(code string) string {
	return fmt.Sprintf("%s/verify/%s", vc.app.Config.App.FRONTEND_URL, code)
}

// getVerifiedCertificate resolves the code path param, writing the
// error response itself on failure. Only codes of currently verified
// certificates resolve.
func (vc VerificationController) getVerifiedCertificate(ctx *gin.Context) (*model.Certificate, bool) {
	code := ctx.Param("code")

	cert, err := vc.app.Repository.Certificate.GetByVerificationCode(ctx, nil, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, ErrVerificationCodeNotFound, util.GenerateErrorMessages(err, "code"), nil)
			return nil, false
		}

		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return nil, false
	}

	return cert, true
}

// VerifyByCode is the public lookup behind shared verification links.
func (vc VerificationController) VerifyByCode(ctx *gin.Context) {
	cert, ok := vc.getVerifiedCertificate(ctx)
	if !ok {
		return
	}

	owner, err := vc.app.Repository.User.GetById(ctx, nil, cert.UserID)
	if err != nil {
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	// The hash is recomputed from the stored fields so a tampered
	// record fails verification instead of parroting its stored value.
	integrity := gin.H{
		"hasHash": cert.IntegrityHash != "",
	}
	if cert.IntegrityHash != "" {
		integrity["hashValid"] = skillvento.VerifyIntegrityHash(
			cert.Title,
			cert.Organization,
			cert.IssuedOn.Format("2006-01-02"),
			cert.UserID,
			cert.IntegrityHash,
		)
		integrity["hash"] = cert.IntegrityHash
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificate": cert,
		"owner": gin.H{
			"username":   owner.Username,
			"firstName":  owner.FirstName,
			"lastName":   owner.LastName,
			"profileUrl": owner.ProfileURL,
		},
		"integrity": integrity,
	})
}

// QRCode renders the verification link as an image, PNG by default or
// SVG with ?format=svg.
func (vc VerificationController) QRCode(ctx *gin.Context) {
	cert, ok := vc.getVerifiedCertificate(ctx)
	if !ok {
		return
	}

	link := vc.verifyURL(cert.VerificationCode)

	if ctx.Query("format") == "svg" {
		svg, err := skillvento.VerificationQRCodeSvg(link)
		if err != nil {
			vc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate QR code", util.GenerateErrorMessages(err), nil)
			return
		}

		ctx.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	size := 256
	if s, err := strconv.Atoi(ctx.Query("size")); err == nil && s >= 64 && s <= 1024 {
		size = s
	}

	png, err := skillvento.VerificationQRCodePng(link, size)
	if err != nil {
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate QR code", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// Share emails the verification link to a recipient on behalf of the
// certificate owner. Goes through the queue when a broker is
// configured, otherwise sends inline.
func (vc VerificationController) Share(ctx *gin.Context) {
	type Request struct {
		Email string `json:"email" form:"email" binding:"required,email"`
	}
	var body Request

	user, err := vc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	cert, ok := vc.getVerifiedCertificate(ctx)
	if !ok {
		return
	}

	if cert.UserID != user.ID {
		util.ResponseFailed(ctx, http.StatusForbidden, "Forbidden", util.GenerateErrorMessages(errors.New(ErrNotCertificateOwner)), nil)
		return
	}

	ownerName := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	data := mailer.VerificationShareData{
		OwnerName:    ownerName,
		Title:        cert.Title,
		Organization: cert.Organization,
		VerifyURL:    vc.verifyURL(cert.VerificationCode),
		Code:         cert.VerificationCode,
	}

	if vc.app.Queue != nil {
		job, err := queue.NewVerificationShareMailJob(body.Email, data)
		if err == nil {
			var payload []byte
			payload, err = json.Marshal(job)
			if err == nil {
				err = vc.app.Queue.Publish(queue.QueueMail, payload)
			}
		}
		if err != nil {
			vc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to queue share email", util.GenerateErrorMessages(err), nil)
			return
		}

		util.ResponseSuccess(ctx, gin.H{
			"queued": true,
		})
		return
	}

	if _, err := vc.app.Mailer.Send(mailer.TemplateVerificationShare, "", body.Email, data); err != nil {
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to send share email", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"queued": false,
	})
}
