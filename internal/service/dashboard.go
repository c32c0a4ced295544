package service

import (
	"context"
	"time"

	"github.com/user/learnhub/internal/model"
	"golang.org/x/sync/errgroup"
)

// studyWindow 学习时长统计窗口
const studyWindow = 7 * 24 * time.Hour

// DashboardCounter 仪表盘所需的五项独立统计
type DashboardCounter interface {
	CountActiveEnrollments(ctx context.Context, userID int) (int, error)
	CountCompletedEnrollments(ctx context.Context, userID int) (int, error)
	CountPublishedVideos(ctx context.Context, userID int) (int, error)
	CountCompletedVideos(ctx context.Context, userID int) (int, error)
	SumStudySeconds(ctx context.Context, userID int, since time.Time) (int64, error)
}

// DashboardService 仪表盘聚合服务
type DashboardService struct {
	counter DashboardCounter
	now     func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(counter DashboardCounter) *DashboardService {
	return &DashboardService{counter: counter, now: time.Now}
}

// Stats 并发执行五项统计并合并，任意一项失败则整体失败
func (s *DashboardService) Stats(ctx context.Context, userID int) (*model.DashboardStats, error) {
	var (
		stats        model.DashboardStats
		studySeconds int64
	)
	since := s.now().UTC().Add(-studyWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalCourses, err = s.counter.CountActiveEnrollments(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedCourses, err = s.counter.CountCompletedEnrollments(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalVideos, err = s.counter.CountPublishedVideos(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.WatchedVideos, err = s.counter.CountCompletedVideos(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		studySeconds, err = s.counter.SumStudySeconds(gctx, userID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.StudyTime = StudyHours(studySeconds)
	return &stats, nil
}

// StudyHours 秒数换算为整小时，四舍五入（半数进位）
func StudyHours(seconds int64) int {
	if seconds <= 0 {
		return 0
	}
	return int((seconds + 1800) / 3600)
}
