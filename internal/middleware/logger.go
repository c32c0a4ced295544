package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// 处理请求
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if len(c.Errors) > 0 {
			log.Printf("[%s] %s %s %d %v user=%d errors=%s",
				c.Request.Method, path, c.ClientIP(), status, latency,
				GetUserID(c), c.Errors.String())
			return
		}

		log.Printf("[%s] %s %s %d %v user=%d",
			c.Request.Method,
			path,
			c.ClientIP(),
			status,
			latency,
			GetUserID(c),
		)
	}
}
