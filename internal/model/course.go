package model

import (
	"time"
)

// Category 课程分类
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name" gorm:"unique;not null"`
}

// Course 课程
type Course struct {
	ID            int       `json:"id" db:"id"`
	Title         string    `json:"title" db:"title" gorm:"not null"`
	Description   string    `json:"description" db:"description"`
	DurationHours int       `json:"duration_hours" db:"duration_hours"`
	Level         string    `json:"level" db:"level"`
	CategoryID    int       `json:"category_id" db:"category_id" gorm:"index;not null"`
	Category      *Category `json:"category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}

// Enrollment 选课记录，同一用户同一课程最多一条有效记录
type Enrollment struct {
	ID                 int        `json:"id" db:"id"`
	UserID             int        `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course_active,where:is_active = true"`
	CourseID           int        `json:"course_id" db:"course_id" gorm:"not null;index;uniqueIndex:idx_enrollments_user_course_active,where:is_active = true"`
	ProgressPercentage float64    `json:"progress_percentage" db:"progress_percentage" gorm:"not null;default:0;check:progress_percentage >= 0 AND progress_percentage <= 100"`
	EnrolledAt         time.Time  `json:"enrolled_at" db:"enrolled_at" gorm:"not null;index"`
	IsActive           bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	CompletedAt        *time.Time `json:"completed_at" db:"completed_at"`
	User               *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Course             *Course    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// StudySession 学习时长记录（只追加）
type StudySession struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id" gorm:"index:idx_study_sessions_user_start;not null"`
	SessionStart    time.Time `json:"session_start" db:"session_start" gorm:"index:idx_study_sessions_user_start;not null"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds" gorm:"not null;default:0"`
}

// CourseItem 课程列表项（GET /courses）
type CourseItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Level       string  `json:"level"`
	Progress    float64 `json:"progress"`
	Thumbnail   string  `json:"thumbnail"`
	Category    string  `json:"category"`
}

// DashboardStats 仪表盘统计（GET /dashboard）
type DashboardStats struct {
	TotalCourses     int `json:"totalCourses"`
	CompletedCourses int `json:"completedCourses"`
	TotalVideos      int `json:"totalVideos"`
	WatchedVideos    int `json:"watchedVideos"`
	StudyTime        int `json:"studyTime"`
}
