package model

import (
	"time"
)

// Video 课程视频
type Video struct {
	ID              int        `json:"id" db:"id"`
	CourseID        int        `json:"course_id" db:"course_id" gorm:"index;not null"`
	Title           string     `json:"title" db:"title" gorm:"not null"`
	Description     string     `json:"description" db:"description"`
	DurationSeconds int        `json:"duration_seconds" db:"duration_seconds" gorm:"not null;default:0"`
	IsPublished     bool       `json:"is_published" db:"is_published" gorm:"not null;default:false"`
	PublishedAt     *time.Time `json:"published_at" db:"published_at" gorm:"index"`
	Views           int        `json:"views" db:"views" gorm:"not null;default:0"`
	Likes           int        `json:"likes" db:"likes" gorm:"not null;default:0"`
	Course          *Course    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// VideoProgress 观看进度，(user_id, video_id) 唯一
type VideoProgress struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_video_progress_user_video;not null"`
	VideoID        int       `json:"video_id" db:"video_id" gorm:"uniqueIndex:idx_video_progress_user_video;not null"`
	WatchedSeconds int       `json:"watched_seconds" db:"watched_seconds" gorm:"not null;default:0"`
	Completed      bool      `json:"completed" db:"completed" gorm:"not null;default:false"`
	LastWatchedAt  time.Time `json:"last_watched_at" db:"last_watched_at" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	User           *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Video          *Video    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName 固定表名
func (VideoProgress) TableName() string {
	return "video_progress"
}

// ProgressUpdate 一次进度上报；Completed 为 nil 表示请求中未携带
type ProgressUpdate struct {
	UserID         int
	VideoID        int
	WatchedSeconds int
	Completed      *bool
}

// VideoItem 视频列表项（GET /videos）
type VideoItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Views       int    `json:"views"`
	Likes       int    `json:"likes"`
	CourseID    int    `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	PublishedAt string `json:"publishedAt"`
	IsWatched   bool   `json:"isWatched"`
}
