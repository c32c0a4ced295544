package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// EnrolledCourse 用户已选课程的一行查询结果
type EnrolledCourse struct {
	ID                 int
	Title              string
	Description        string
	DurationHours      int
	Level              string
	ProgressPercentage float64
	CategoryName       string
}

// ListByUser 获取用户有效选课的课程，按选课时间倒序
func (r *CourseRepository) ListByUser(ctx context.Context, userID int) ([]EnrolledCourse, error) {
	rows, err := r.db.WithContext(ctx).
		Table("courses c").
		Select("c.id, c.title, c.description, c.duration_hours, c.level, e.progress_percentage, cat.name").
		Joins("INNER JOIN enrollments e ON e.course_id = c.id").
		Joins("INNER JOIN categories cat ON cat.id = c.category_id").
		Where("e.user_id = ? AND e.is_active = ?", userID, true).
		Order("e.enrolled_at DESC, e.id DESC").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("查询用户课程失败: %w", err)
	}
	defer rows.Close()

	courses := make([]EnrolledCourse, 0)
	for rows.Next() {
		var c EnrolledCourse
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.DurationHours, &c.Level,
			&c.ProgressPercentage, &c.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("读取课程行失败: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历课程失败: %w", err)
	}

	return courses, nil
}
