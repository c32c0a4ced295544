package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/user/learnhub/internal/model"
	"gorm.io/gorm"
)

// DashboardRepository 仪表盘统计查询，每个方法都是独立的一条 SQL
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountActiveEnrollments 有效选课数
func (r *DashboardRepository) CountActiveEnrollments(ctx context.Context, userID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计选课数失败: %w", err)
	}
	return int(count), nil
}

// CountCompletedEnrollments 已完成课程数
func (r *DashboardRepository) CountCompletedEnrollments(ctx context.Context, userID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计完成课程数失败: %w", err)
	}
	return int(count), nil
}

// CountPublishedVideos 已选课程下已发布视频数（去重）
func (r *DashboardRepository) CountPublishedVideos(ctx context.Context, userID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("videos v").
		Select("COUNT(DISTINCT v.id)").
		Joins("INNER JOIN enrollments e ON e.course_id = v.course_id").
		Where("e.user_id = ? AND e.is_active = ? AND v.is_published = ?", userID, true, true).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计视频数失败: %w", err)
	}
	return int(count), nil
}

// CountCompletedVideos 已看完视频数
func (r *DashboardRepository) CountCompletedVideos(ctx context.Context, userID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VideoProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计已看视频数失败: %w", err)
	}
	return int(count), nil
}

// SumStudySeconds 统计 since 之后的学习总秒数，没有记录时为 0
func (r *DashboardRepository) SumStudySeconds(ctx context.Context, userID int, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Where("user_id = ? AND session_start >= ?", userID, since).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("统计学习时长失败: %w", err)
	}
	return total, nil
}
