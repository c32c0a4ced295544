package service

import (
	"context"
	"fmt"

	"github.com/user/learnhub/internal/config"
	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/repository"
)

// CourseLister 按用户列出已选课程
type CourseLister interface {
	ListByUser(ctx context.Context, userID int) ([]repository.EnrolledCourse, error)
}

// CourseService 课程列表服务
type CourseService struct {
	repo         CourseLister
	labels       *config.CategoryLabels
	durationUnit string
}

// NewCourseService 创建课程服务
func NewCourseService(repo CourseLister, labels *config.CategoryLabels, durationUnit string) *CourseService {
	if labels == nil {
		labels = config.DefaultCategoryLabels()
	}
	return &CourseService{repo: repo, labels: labels, durationUnit: durationUnit}
}

// List 获取用户课程，附带进度和分类图标
func (s *CourseService) List(ctx context.Context, userID int) ([]model.CourseItem, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.CourseItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.CourseItem{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Duration:    s.formatHours(row.DurationHours),
			Level:       row.Level,
			Progress:    row.ProgressPercentage,
			Thumbnail:   s.labels.Label(row.CategoryName),
			Category:    row.CategoryName,
		})
	}
	return items, nil
}

func (s *CourseService) formatHours(hours int) string {
	if s.durationUnit == "" {
		return fmt.Sprintf("%d", hours)
	}
	return fmt.Sprintf("%d %s", hours, s.durationUnit)
}
