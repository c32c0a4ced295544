package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/learnhub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash 邮箱不存在时仍做一次比较，避免通过耗时区分账号是否存在
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("learnhub-dummy-password"), bcrypt.DefaultCost)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户（供初始化数据和测试使用）
func (r *UserRepository) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// FindActiveByEmail 根据邮箱查找有效用户，不存在返回 nil
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	return &user, nil
}

// CheckPassword 验证密码；user 为 nil 时对占位哈希做比较并返回 false
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// HashPassword 生成 bcrypt 哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return string(hash), nil
}
