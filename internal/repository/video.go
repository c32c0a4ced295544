package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/user/learnhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// EnrolledVideo 用户可见视频的一行查询结果
type EnrolledVideo struct {
	ID              int
	Title           string
	Description     string
	DurationSeconds int
	Views           int
	Likes           int
	CourseID        int
	CourseTitle     string
	PublishedAt     sql.NullTime
	IsWatched       bool
}

// ListByUser 获取用户已选课程下的已发布视频，按发布时间倒序
func (r *VideoRepository) ListByUser(ctx context.Context, userID, limit int) ([]EnrolledVideo, error) {
	rows, err := r.db.WithContext(ctx).
		Table("videos v").
		Select(`v.id, v.title, v.description, v.duration_seconds, v.views, v.likes,
			v.course_id, c.title, v.published_at, COALESCE(vp.completed, FALSE)`).
		Joins("INNER JOIN courses c ON c.id = v.course_id").
		Joins("INNER JOIN enrollments e ON e.course_id = c.id AND e.user_id = ? AND e.is_active = ?", userID, true).
		Joins("LEFT JOIN video_progress vp ON vp.video_id = v.id AND vp.user_id = ?", userID).
		Where("v.is_published = ?", true).
		Order("v.published_at DESC, v.id DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("查询用户视频失败: %w", err)
	}
	defer rows.Close()

	videos := make([]EnrolledVideo, 0)
	for rows.Next() {
		var v EnrolledVideo
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.DurationSeconds, &v.Views, &v.Likes,
			&v.CourseID, &v.CourseTitle, &v.PublishedAt, &v.IsWatched,
		); err != nil {
			return nil, fmt.Errorf("读取视频行失败: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历视频失败: %w", err)
	}

	return videos, nil
}

// UpsertProgress 更新或插入观看进度，单条语句依赖 (user_id, video_id) 唯一索引
func (r *VideoRepository) UpsertProgress(ctx context.Context, u model.ProgressUpdate) error {
	progress := &model.VideoProgress{
		UserID:         u.UserID,
		VideoID:        u.VideoID,
		WatchedSeconds: u.WatchedSeconds,
		LastWatchedAt:  time.Now().UTC(),
	}
	updates := []string{"watched_seconds", "last_watched_at"}
	if u.Completed != nil {
		progress.Completed = *u.Completed
		updates = append(updates, "completed")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(progress).Error
	if err != nil {
		return fmt.Errorf("保存观看进度失败 (user=%d, video=%d): %w", u.UserID, u.VideoID, err)
	}
	return nil
}

// FindProgress 查询某用户某视频的进度，不存在返回 nil
func (r *VideoRepository) FindProgress(ctx context.Context, userID, videoID int) (*model.VideoProgress, error) {
	var p model.VideoProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询观看进度失败: %w", err)
	}
	return &p, nil
}

// CountProgress 统计某用户某视频的进度行数
func (r *VideoRepository) CountProgress(ctx context.Context, userID, videoID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VideoProgress{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	return int(count), err
}
