package service

import (
	"context"
	"errors"
	"log"

	"github.com/user/learnhub/internal/model"
)

// ErrInvalidCredentials 邮箱不存在、账号停用、密码错误统一返回此错误
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialStore 登录所需的用户查询与密码校验
type CredentialStore interface {
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
}

// TokenIssuer 签发会话令牌
type TokenIssuer interface {
	IssueToken(user *model.User) (string, error)
}

// LoginResult 登录结果
type LoginResult struct {
	Token string
	User  model.Identity
}

// AuthService 登录服务
type AuthService struct {
	users  CredentialStore
	tokens TokenIssuer
}

// NewAuthService 创建登录服务
func NewAuthService(users CredentialStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login 校验邮箱密码并签发令牌
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// user 为 nil 时 CheckPassword 仍会做一次哈希比较
	if !s.users.CheckPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		log.Printf("[AuthService] 签发令牌失败 (user=%d): %v", user.ID, err)
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Identity()}, nil
}
