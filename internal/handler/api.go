package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/learnhub/internal/middleware"
	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/utils"
)

const msgProgressRequired = "Video ID and watched seconds are required"

type progressRequest struct {
	VideoID        *int  `json:"video_id" binding:"required,gt=0"`
	WatchedSeconds *int  `json:"watched_seconds" binding:"required,gte=0"`
	Completed      *bool `json:"completed"`
}

// Dashboard 仪表盘统计
func (h *Handler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	stats, err := h.DashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		log.Printf("[Dashboard] 获取统计失败 (user=%d): %v", userID, err)
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Courses 已选课程列表
func (h *Handler) Courses(c *gin.Context) {
	userID := middleware.GetUserID(c)

	courses, err := h.CourseService.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		log.Printf("[Courses] 获取课程失败 (user=%d): %v", userID, err)
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// Videos 已选课程下的已发布视频
func (h *Handler) Videos(c *gin.Context) {
	userID := middleware.GetUserID(c)

	videos, err := h.VideoService.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		log.Printf("[Videos] 获取视频失败 (user=%d): %v", userID, err)
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, videos)
}

// UpdateProgress 上报视频观看进度
func (h *Handler) UpdateProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingMessage(err, msgProgressRequired))
		return
	}

	update := model.ProgressUpdate{
		UserID:         middleware.GetUserID(c),
		VideoID:        *req.VideoID,
		WatchedSeconds: *req.WatchedSeconds,
		Completed:      req.Completed,
	}
	if err := h.VideoService.UpdateProgress(c.Request.Context(), update); err != nil {
		_ = c.Error(err)
		log.Printf("[UpdateProgress] 保存进度失败 (user=%d video=%d): %v", update.UserID, update.VideoID, err)
		utils.InternalServerError(c, "Failed to update progress")
		return
	}
	utils.Message(c, http.StatusOK, "Progress updated successfully")
}
