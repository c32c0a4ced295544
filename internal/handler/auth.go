package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/service"
	"github.com/user/learnhub/internal/utils"
)

const (
	msgCredentialsRequired = "Email and password are required."
	msgLoginFailed         = "Login failed. Invalid credentials."
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    model.Identity `json:"user"`
}

// Login 邮箱密码登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, msgCredentialsRequired)
		return
	}

	result, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.Unauthorized(c, msgLoginFailed)
			return
		}
		_ = c.Error(err)
		log.Printf("[Login] 登录失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Logout 注销当前令牌
func (h *Handler) Logout(c *gin.Context) {
	h.Authenticator.Revoke(c)
	utils.Message(c, http.StatusOK, "Logout successful")
}
