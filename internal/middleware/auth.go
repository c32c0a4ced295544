package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/user/learnhub/internal/config"
	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/utils"
)

// 上下文键
const (
	ctxUserID      = "user_id"
	ctxTokenID     = "token_id"
	ctxTokenExpiry = "token_expiry"
)

// ErrTokenRevoked 令牌已注销
var ErrTokenRevoked = errors.New("token revoked")

// Claims JWT 声明
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator 令牌签发与校验
//
// jwt 模式下受保护接口必须携带有效且未注销的 Bearer 令牌；
// legacy 模式沿用旧行为：令牌不做校验，所有请求视为 legacyUserID。
type Authenticator struct {
	mode         string
	secret       string
	expiry       time.Duration
	legacyUserID int
	denylist     *utils.TokenDenylist
}

// NewAuthenticator 根据配置创建认证器
func NewAuthenticator(cfg *config.Config, denylist *utils.TokenDenylist) *Authenticator {
	return &Authenticator{
		mode:         cfg.AuthMode,
		secret:       cfg.AppSecret,
		expiry:       cfg.JWTExpiry,
		legacyUserID: cfg.LegacyUserID,
		denylist:     denylist,
	}
}

// IssueToken 为登录成功的用户签发令牌
func (a *Authenticator) IssueToken(user *model.User) (string, error) {
	if a.mode == config.AuthModeLegacy {
		return opaqueToken()
	}
	return GenerateToken(user.ID, user.Email, a.secret, a.expiry)
}

// RequireAuth 必须登录中间件
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.mode == config.AuthModeLegacy {
			c.Set(ctxUserID, a.legacyUserID)
			c.Next()
			return
		}

		claims, err := a.extractClaims(c)
		if err != nil {
			utils.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ctxTokenExpiry, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// Revoke 注销当前请求携带的令牌（legacy 模式下无操作）
func (a *Authenticator) Revoke(c *gin.Context) {
	if a.denylist == nil {
		return
	}
	tokenID := c.GetString(ctxTokenID)
	expiry, ok := c.Get(ctxTokenExpiry)
	if tokenID == "" || !ok {
		return
	}
	a.denylist.Revoke(tokenID, expiry.(time.Time))
}

// extractClaims 从 Authorization Header 中提取 JWT Claims
func (a *Authenticator) extractClaims(c *gin.Context) (*Claims, error) {
	authHeader := c.GetHeader("Authorization")
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if a.denylist != nil && a.denylist.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID int, email, jwtSecret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// opaqueToken 32 字节随机数的 base64，legacy 模式下的占位令牌
func opaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
