package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skillvento/skillvento/internal/constant"
	"github.com/skillvento/skillvento/internal/model"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s", id)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where(model.User{
		BaseModel: model.BaseModel{ID: id},
	}).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*model.User, error) {
	ur.logger.Debugf("Get user by username: %s", username)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where(model.User{
		Username: username,
	}).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserAndCreate returns the user matching the email, creating it on
// first login. The username is derived from the email local part with
// a random suffix on collision.
func (ur UserRepository) GetUserAndCreate(ctx context.Context, tx *gorm.DB, newUser *model.User) (*model.User, error) {
	ur.logger.Debugf("Get or create user by email: %s", newUser.Email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	err := db.WithContext(ctx).Model(&model.User{}).Where(model.User{
		Email: newUser.Email,
	}).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if newUser.Username == "" {
		newUser.Username = usernameFromEmail(newUser.Email)
	}

	if err := db.WithContext(ctx).Model(&model.User{}).Create(newUser).Error; err != nil {
		// retry once with a suffixed username on unique violation
		suffix, genErr := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 6)
		if genErr != nil {
			return nil, genErr
		}
		newUser.Username = fmt.Sprintf("%s_%s", newUser.Username, suffix)

		if err := db.WithContext(ctx).Model(&model.User{}).Create(newUser).Error; err != nil {
			return nil, err
		}
	}

	return newUser, nil
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToLower(local)
}
