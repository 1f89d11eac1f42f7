package db

import (
	"errors"
	"fmt"

	"path-system/model"

	"gorm.io/gorm"
)

// UserRepository 基于 gorm 的用户存储
type UserRepository struct {
	DB *gorm.DB
}

// FindByUsername 根据用户名查找用户
func (r UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// Create 创建用户, 用户名重复时返回 model.ErrUserExists
func (r UserRepository) Create(user *model.User) error {
	var count int64
	if err := r.DB.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if count > 0 {
		return model.ErrUserExists
	}
	if err := r.DB.Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}
