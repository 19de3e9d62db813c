package repository

import (
	"context"

	"github.com/skillvento/skillvento/internal/constant"
	"github.com/skillvento/skillvento/internal/model"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	*baseRepository
}

func (cr CertificateRepository) Create(ctx context.Context, tx *gorm.DB, cert *model.Certificate) (*model.Certificate, error) {
	cr.logger.Debugf("Create certificate: %s for user: %s", cert.Title, cert.UserID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Certificate{}).Create(cert).Error; err != nil {
		return cert, err
	}

	return cert, nil
}

// Update persists the whole record. Empty strings are deliberate
// writes here (a cleared integrity hash must reach the database), so
// Save is used instead of Updates.
func (cr CertificateRepository) Update(ctx context.Context, tx *gorm.DB, cert *model.Certificate) (*model.Certificate, error) {
	cr.logger.Debugf("Update certificate: %s", cert.ID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Save(cert).Error; err != nil {
		return cert, err
	}

	return cert, nil
}

func (cr CertificateRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var cert model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(model.Certificate{
		BaseModel: model.BaseModel{ID: id},
	}).First(&cert).Error; err != nil {
		return nil, err
	}

	return &cert, nil
}

// Return certificates of the user ordered by issue date, newest first,
// plus the total count for pagination.
func (cr CertificateRepository) GetByUserId(ctx context.Context, tx *gorm.DB, userId string, page, pageSize uint) ([]model.Certificate, int64, error) {
	cr.logger.Debugf("Get certificates by user id: %s", userId)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificates []model.Certificate
	total := int64(0)

	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{
		"user_id": userId,
	}).Count(&total).Error; err != nil {
		return certificates, total, err
	}

	query := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{
		"user_id": userId,
	}).Order("issued_on desc")

	if err := query.Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).Find(&certificates).Error; err != nil {
		return certificates, total, err
	}

	return certificates, total, nil
}

// Public certificates of a user, for the showcase page. No pagination:
// portfolios are small and rendered in full.
func (cr CertificateRepository) GetPublicByUserId(ctx context.Context, tx *gorm.DB, userId string) ([]model.Certificate, error) {
	cr.logger.Debugf("Get public certificates by user id: %s", userId)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificates []model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{
		"user_id":   userId,
		"is_public": true,
	}).Order("issued_on desc").Find(&certificates).Error; err != nil {
		return nil, err
	}

	return certificates, nil
}

func (cr CertificateRepository) GetByVerificationCode(ctx context.Context, tx *gorm.DB, code string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate by verification code: %s", code)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var cert model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(map[string]any{
		"verification_code": code,
		"is_verified":       true,
	}).First(&cert).Error; err != nil {
		return nil, err
	}

	return &cert, nil
}

func (cr CertificateRepository) DeleteById(ctx context.Context, tx *gorm.DB, id string) error {
	cr.logger.Debugf("Delete certificate by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where(model.Certificate{
		BaseModel: model.BaseModel{ID: id},
	}).Delete(&model.Certificate{}).Error
}
