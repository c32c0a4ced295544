// Package testsupport 测试用内存数据库与数据构造函数
package testsupport

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 打开已迁移的内存 SQLite 数据库，每个测试独享
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser 插入用户，密码以 bcrypt 哈希保存
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, active bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Name: name, Email: email, PasswordHash: string(hash), IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if !active {
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate user: %v", err)
		}
		user.IsActive = false
	}
	return user
}

// CreateCategory 插入分类
func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// CreateCourse 在指定分类下插入课程
func CreateCourse(t *testing.T, db *gorm.DB, categoryID int, title string, hours int) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:         title,
		Description:   title + " description",
		DurationHours: hours,
		Level:         "Iniciante",
		CategoryID:    categoryID,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

// Enroll 插入有效选课记录
func Enroll(t *testing.T, db *gorm.DB, userID, courseID int, enrolledAt time.Time, progress float64) *model.Enrollment {
	t.Helper()

	enrollment := &model.Enrollment{
		UserID:             userID,
		CourseID:           courseID,
		ProgressPercentage: progress,
		EnrolledAt:         enrolledAt.UTC(),
		IsActive:           true,
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	return enrollment
}

// CompleteEnrollment 标记课程完成时间
func CompleteEnrollment(t *testing.T, db *gorm.DB, enrollment *model.Enrollment, at time.Time) {
	t.Helper()

	if err := db.Model(enrollment).Update("completed_at", at.UTC()).Error; err != nil {
		t.Fatalf("complete enrollment: %v", err)
	}
}

// DeactivateEnrollment 停用选课记录
func DeactivateEnrollment(t *testing.T, db *gorm.DB, enrollment *model.Enrollment) {
	t.Helper()

	if err := db.Model(enrollment).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate enrollment: %v", err)
	}
}

// CreateVideo 插入视频，publishedAt 为 nil 时视为未发布
func CreateVideo(t *testing.T, db *gorm.DB, courseID int, title string, seconds int, publishedAt *time.Time) *model.Video {
	t.Helper()

	video := &model.Video{
		CourseID:        courseID,
		Title:           title,
		Description:     title + " description",
		DurationSeconds: seconds,
		Views:           10,
		Likes:           2,
	}
	if publishedAt != nil {
		at := publishedAt.UTC()
		video.IsPublished = true
		video.PublishedAt = &at
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}

// AddStudySession 追加一条学习时长记录
func AddStudySession(t *testing.T, db *gorm.DB, userID int, start time.Time, seconds int) {
	t.Helper()

	session := &model.StudySession{UserID: userID, SessionStart: start.UTC(), DurationSeconds: seconds}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create study session: %v", err)
	}
}

// Ptr 返回 v 的指针
func Ptr[T any](v T) *T {
	return &v
}
