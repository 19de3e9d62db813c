package controller

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/skillvento/skillvento/internal/constant"
	"github.com/skillvento/skillvento/internal/model"
	"github.com/skillvento/skillvento/internal/pipeline"
	"github.com/skillvento/skillvento/internal/util"
	"github.com/skillvento/skillvento/pkg/skillvento"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CertificateController struct {
	*baseController
}

const (
	ErrCertificateFileRequired = "certificate file is required"
	ErrCertificateFileTooLarge = "certificate file exceeds the maximum upload size"
	ErrCertificateNotFound     = "certificate not found"
	ErrNotCertificateOwner     = "certificate does not belong to the authenticated user"
)

type certificateRequest struct {
	Title              string `json:"title" form:"title" binding:"required,strNotEmpty,cmax=200"`
	Organization       string `json:"organization" form:"organization" binding:"required,strNotEmpty,cmax=200"`
	IssuedOn           string `json:"issuedOn" form:"issuedOn" binding:"required,datetime=2006-01-02"`
	ExpiryDate         string `json:"expiryDate" form:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
	Domain             string `json:"domain" form:"domain" binding:"required,strNotEmpty"`
	CustomDomain       string `json:"customDomain" form:"customDomain"`
	Tags               string `json:"tags" form:"tags"`
	Description        string `json:"description" form:"description" binding:"cmax=2000"`
	IsPublic           bool   `json:"isPublic" form:"isPublic"`
	WantsVerification  bool   `json:"isVerified" form:"isVerified"`
	WantsIntegrityHash bool   `json:"withIntegrityHash" form:"withIntegrityHash"`
}

// toDraft converts the validated request into a pipeline draft. Date
// parsing cannot fail after the datetime binding passed.
func (r certificateRequest) toDraft(file *pipeline.UploadedFile) pipeline.Draft {
	issuedOn, _ := time.Parse("2006-01-02", r.IssuedOn)

	var expiry *time.Time
	if r.ExpiryDate != "" {
		if parsed, err := time.Parse("2006-01-02", r.ExpiryDate); err == nil {
			expiry = &parsed
		}
	}

	return pipeline.Draft{
		Title:              r.Title,
		Organization:       r.Organization,
		IssuedOn:           issuedOn,
		ExpiryDate:         expiry,
		Domain:             r.Domain,
		CustomDomain:       r.CustomDomain,
		Tags:               r.Tags,
		Description:        r.Description,
		IsPublic:           r.IsPublic,
		WantsVerification:  r.WantsVerification,
		WantsIntegrityHash: r.WantsIntegrityHash,
		File:               file,
	}
}

// readUploadedFile pulls the multipart file into memory. Returns nil
// without error when no file was sent, which is fine on edits.
func (cc CertificateController) readUploadedFile(ctx *gin.Context) (*pipeline.UploadedFile, error) {
	fileHeader, err := ctx.FormFile("certificateFile")
	if err != nil {
		return nil, nil
	}

	if fileHeader.Size > constant.MAX_UPLOAD_SIZE {
		return nil, errors.New(ErrCertificateFileTooLarge)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &pipeline.UploadedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// respondIngestError maps the pipeline error taxonomy onto HTTP status
// codes. Validation and conversion problems are the client's fault,
// upload and persistence failures are ours.
func (cc CertificateController) respondIngestError(ctx *gin.Context, err error) {
	var validationErr *pipeline.ValidationError
	if errors.As(err, &validationErr) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid certificate", util.GenerateErrorMessages(err, validationErr.Field), nil)
		return
	}

	var conversionErr *skillvento.ConversionError
	if errors.As(err, &conversionErr) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Could not process the uploaded file", util.GenerateErrorMessages(err, "certificateFile"), nil)
		return
	}

	cc.app.Logger.Error(err)
	util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save certificate", util.GenerateErrorMessages(err), nil)
}

func (cc CertificateController) CreateCertificate(ctx *gin.Context) {
	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	var body certificateRequest
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	file, err := cc.readUploadedFile(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid certificate file", util.GenerateErrorMessages(err, "certificateFile"), nil)
		return
	}
	if file == nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No certificate file uploaded", util.GenerateErrorMessages(errors.New(ErrCertificateFileRequired), "certificateFile"), nil)
		return
	}

	cert, err := cc.app.Ingestor.Ingest(ctx, body.toDraft(file), nil, user.ID, nil)
	if err != nil {
		cc.respondIngestError(ctx, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificate": cert,
	})
}

func (cc CertificateController) UpdateCertificate(ctx *gin.Context) {
	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	prev, ok := cc.getOwnedCertificate(ctx, user.ID)
	if !ok {
		return
	}

	var body certificateRequest
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	// File is optional on edit; without one the existing blobs are kept.
	file, err := cc.readUploadedFile(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid certificate file", util.GenerateErrorMessages(err, "certificateFile"), nil)
		return
	}

	cert, err := cc.app.Ingestor.Ingest(ctx, body.toDraft(file), prev, user.ID, nil)
	if err != nil {
		cc.respondIngestError(ctx, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificate": cert,
	})
}

func (cc CertificateController) GetCertificates(ctx *gin.Context) {
	type Params struct {
		Page     uint `form:"page"`
		PageSize uint `form:"pageSize"`
	}
	params := Params{Page: 1, PageSize: 20}

	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 || params.PageSize > 100 {
		params.PageSize = 20
	}

	certificates, total, err := cc.app.Repository.Certificate.GetByUserId(ctx, nil, user.ID, params.Page, params.PageSize)
	if err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificates": certificates,
		"total":        total,
		"page":         params.Page,
		"pageSize":     params.PageSize,
		"totalPage":    util.CalculateTotalPage(total, params.PageSize),
	})
}

func (cc CertificateController) GetCertificateById(ctx *gin.Context) {
	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	cert, err := cc.app.Repository.Certificate.GetById(ctx, nil, ctx.Param("certificateId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, ErrCertificateNotFound, util.GenerateErrorMessages(err), nil)
			return
		}

		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	// Non-owners only see certificates shared publicly.
	if cert.UserID != user.ID && !cert.IsPublic {
		util.ResponseFailed(ctx, http.StatusNotFound, ErrCertificateNotFound, util.GenerateErrorMessages(errors.New(ErrCertificateNotFound)), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificate": cert,
	})
}

func (cc CertificateController) DeleteCertificate(ctx *gin.Context) {
	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	cert, ok := cc.getOwnedCertificate(ctx, user.ID)
	if !ok {
		return
	}

	if err := cc.app.Repository.Certificate.DeleteById(ctx, nil, cert.ID); err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	// Blob removal is best-effort once the record is gone; a leaked
	// object is preferable to a deleted record that still lists URLs.
	if err := cc.app.Ingestor.RemoveBlobs(ctx, cert); err != nil {
		cc.app.Logger.Warnf("Failed to remove blobs of certificate %s: %v", cert.ID, err)
	}

	util.ResponseSuccess(ctx, nil)
}

// getOwnedCertificate loads the certificate from the path param and
// checks ownership, writing the error response itself on failure.
func (cc CertificateController) getOwnedCertificate(ctx *gin.Context, userId string) (*model.Certificate, bool) {
	cert, err := cc.app.Repository.Certificate.GetById(ctx, nil, ctx.Param("certificateId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, ErrCertificateNotFound, util.GenerateErrorMessages(err), nil)
			return nil, false
		}

		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return nil, false
	}

	if cert.UserID != userId {
		util.ResponseFailed(ctx, http.StatusForbidden, "Forbidden", util.GenerateErrorMessages(errors.New(ErrNotCertificateOwner)), nil)
		return nil, false
	}

	return cert, true
}
