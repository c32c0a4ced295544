package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/learnhub/internal/handler"
	"github.com/user/learnhub/internal/middleware"
)

// NewEngine 创建 Gin 引擎并挂载全局中间件与路由
func NewEngine(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 预检请求由 CORS 中间件直接应答
	r.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.POST("/auth", h.Login)

	// ==================== 需要登录 ====================
	protected := r.Group("")
	protected.Use(h.Authenticator.RequireAuth())
	{
		protected.POST("/auth/logout", h.Logout)
		protected.GET("/dashboard", h.Dashboard)
		protected.GET("/courses", h.Courses)
		protected.GET("/videos", h.Videos)
		protected.POST("/videos", h.UpdateProgress)
	}
}
