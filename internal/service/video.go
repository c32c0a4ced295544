package service

import (
	"context"
	"fmt"

	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/repository"
)

// DefaultVideoLimit 视频列表默认条数
const DefaultVideoLimit = 20

// VideoStore 视频列表与进度写入
type VideoStore interface {
	ListByUser(ctx context.Context, userID, limit int) ([]repository.EnrolledVideo, error)
	UpsertProgress(ctx context.Context, u model.ProgressUpdate) error
}

// VideoService 视频服务
type VideoService struct {
	repo  VideoStore
	limit int
}

// NewVideoService 创建视频服务
func NewVideoService(repo VideoStore, limit int) *VideoService {
	if limit <= 0 {
		limit = DefaultVideoLimit
	}
	return &VideoService{repo: repo, limit: limit}
}

// List 获取用户可见的视频列表
func (s *VideoService) List(ctx context.Context, userID int) ([]model.VideoItem, error) {
	rows, err := s.repo.ListByUser(ctx, userID, s.limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.VideoItem, 0, len(rows))
	for _, row := range rows {
		publishedAt := ""
		if row.PublishedAt.Valid {
			publishedAt = row.PublishedAt.Time.Format("2006-01-02")
		}
		items = append(items, model.VideoItem{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Duration:    FormatDuration(row.DurationSeconds),
			Views:       row.Views,
			Likes:       row.Likes,
			CourseID:    row.CourseID,
			CourseTitle: row.CourseTitle,
			PublishedAt: publishedAt,
			IsWatched:   row.IsWatched,
		})
	}
	return items, nil
}

// UpdateProgress 上报观看进度
func (s *VideoService) UpdateProgress(ctx context.Context, u model.ProgressUpdate) error {
	return s.repo.UpsertProgress(ctx, u)
}

// FormatDuration 秒数格式化为 "分:秒"，秒补齐两位
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
