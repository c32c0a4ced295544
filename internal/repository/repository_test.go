package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/user/learnhub/internal/model"
	"github.com/user/learnhub/internal/repository"
	"github.com/user/learnhub/internal/testsupport"
)

func TestFindActiveByEmailSkipsInactiveUsers(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	testsupport.CreateUser(t, db, "Bruno", "bruno@example.com", "secret", false)

	user, err := repo.FindActiveByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("FindActiveByEmail returned error: %v", err)
	}
	if user == nil || user.Name != "Ana" {
		t.Fatalf("expected Ana, got %+v", user)
	}

	inactive, err := repo.FindActiveByEmail(ctx, "bruno@example.com")
	if err != nil {
		t.Fatalf("FindActiveByEmail returned error: %v", err)
	}
	if inactive != nil {
		t.Fatalf("expected inactive user to be hidden, got %+v", inactive)
	}

	missing, err := repo.FindActiveByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown email, got (%+v, %v)", missing, err)
	}
}

func TestCheckPassword(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewUserRepository(db)

	user, err := repo.Create(context.Background(), "Ana", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !repo.CheckPassword(user, "secret") {
		t.Fatal("expected correct password to verify")
	}
	if repo.CheckPassword(user, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if repo.CheckPassword(nil, "secret") {
		t.Fatal("expected nil user to fail")
	}
}

func TestCourseListByUserOrdersByEnrollmentDesc(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewCourseRepository(db)

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	other := testsupport.CreateUser(t, db, "Bruno", "bruno@example.com", "secret", true)
	web := testsupport.CreateCategory(t, db, "Desenvolvimento Web")
	design := testsupport.CreateCategory(t, db, "Design")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testsupport.CreateCourse(t, db, web.ID, "HTML", 10)
	second := testsupport.CreateCourse(t, db, design.ID, "Figma", 6)
	third := testsupport.CreateCourse(t, db, web.ID, "React", 20)
	dropped := testsupport.CreateCourse(t, db, design.ID, "Photoshop", 8)

	testsupport.Enroll(t, db, user.ID, first.ID, base, 100)
	testsupport.Enroll(t, db, user.ID, third.ID, base.Add(48*time.Hour), 12.5)
	testsupport.Enroll(t, db, user.ID, second.ID, base.Add(24*time.Hour), 40)
	old := testsupport.Enroll(t, db, user.ID, dropped.ID, base.Add(72*time.Hour), 5)
	testsupport.DeactivateEnrollment(t, db, old)
	testsupport.Enroll(t, db, other.ID, dropped.ID, base, 0)

	courses, err := repo.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}

	want := []int{third.ID, second.ID, first.ID}
	if len(courses) != len(want) {
		t.Fatalf("unexpected course count: got %d want %d", len(courses), len(want))
	}
	for i, id := range want {
		if courses[i].ID != id {
			t.Fatalf("position %d: got course %d want %d", i, courses[i].ID, id)
		}
	}
	if courses[0].ProgressPercentage != 12.5 {
		t.Fatalf("unexpected progress: %v", courses[0].ProgressPercentage)
	}
	if courses[1].CategoryName != "Design" {
		t.Fatalf("unexpected category: %q", courses[1].CategoryName)
	}
}

func TestCourseListByUserEmpty(t *testing.T) {
	db := testsupport.NewDB(t)
	courses, err := repository.NewCourseRepository(db).ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if courses == nil || len(courses) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", courses)
	}
}

func TestVideoListByUser(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	enrolled := testsupport.CreateCourse(t, db, cat.ID, "Figma", 6)
	notEnrolled := testsupport.CreateCourse(t, db, cat.ID, "Blender", 6)
	testsupport.Enroll(t, db, user.ID, enrolled.ID, time.Now().UTC(), 0)

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	older := testsupport.CreateVideo(t, db, enrolled.ID, "Intro", 65, testsupport.Ptr(base))
	newer := testsupport.CreateVideo(t, db, enrolled.ID, "Frames", 3599, testsupport.Ptr(base.Add(24*time.Hour)))
	testsupport.CreateVideo(t, db, enrolled.ID, "Draft", 30, nil)
	testsupport.CreateVideo(t, db, notEnrolled.ID, "Other", 30, testsupport.Ptr(base))

	if err := repo.UpsertProgress(ctx, model.ProgressUpdate{
		UserID: user.ID, VideoID: older.ID, WatchedSeconds: 65, Completed: testsupport.Ptr(true),
	}); err != nil {
		t.Fatalf("UpsertProgress returned error: %v", err)
	}

	videos, err := repo.ListByUser(ctx, user.ID, 20)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 published enrolled videos, got %d", len(videos))
	}
	if videos[0].ID != newer.ID || videos[1].ID != older.ID {
		t.Fatalf("unexpected order: %d, %d", videos[0].ID, videos[1].ID)
	}
	if videos[0].IsWatched {
		t.Fatal("video without progress must not be watched")
	}
	if !videos[1].IsWatched {
		t.Fatal("completed video should be watched")
	}
	if videos[1].CourseTitle != "Figma" {
		t.Fatalf("unexpected course title: %q", videos[1].CourseTitle)
	}
	if !videos[1].PublishedAt.Valid || !videos[1].PublishedAt.Time.Equal(base) {
		t.Fatalf("unexpected published_at: %+v", videos[1].PublishedAt)
	}

	limited, err := repo.ListByUser(ctx, user.ID, 1)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestUpsertProgressIsIdempotent(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	course := testsupport.CreateCourse(t, db, cat.ID, "Figma", 6)
	video := testsupport.CreateVideo(t, db, course.ID, "Intro", 600, testsupport.Ptr(time.Now()))

	update := model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: 300, Completed: testsupport.Ptr(true)}
	for i := 0; i < 2; i++ {
		if err := repo.UpsertProgress(ctx, update); err != nil {
			t.Fatalf("UpsertProgress #%d returned error: %v", i, err)
		}
	}

	count, err := repo.CountProgress(ctx, user.ID, video.ID)
	if err != nil {
		t.Fatalf("CountProgress returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one progress row, got %d", count)
	}

	p, err := repo.FindProgress(ctx, user.ID, video.ID)
	if err != nil || p == nil {
		t.Fatalf("FindProgress: (%+v, %v)", p, err)
	}
	if p.WatchedSeconds != 300 || !p.Completed {
		t.Fatalf("unexpected progress: %+v", p)
	}
}

func TestUpsertProgressKeepsCompletedWhenOmitted(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	course := testsupport.CreateCourse(t, db, cat.ID, "Figma", 6)
	video := testsupport.CreateVideo(t, db, course.ID, "Intro", 600, testsupport.Ptr(time.Now()))

	if err := repo.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: 300, Completed: testsupport.Ptr(true)}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: 310}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	p, err := repo.FindProgress(ctx, user.ID, video.ID)
	if err != nil || p == nil {
		t.Fatalf("FindProgress: (%+v, %v)", p, err)
	}
	if p.WatchedSeconds != 310 {
		t.Fatalf("unexpected watched seconds: %d", p.WatchedSeconds)
	}
	if !p.Completed {
		t.Fatal("completed flag should survive an update that omits it")
	}

	if err := repo.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: 20, Completed: testsupport.Ptr(false)}); err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	p, _ = repo.FindProgress(ctx, user.ID, video.ID)
	if p.Completed {
		t.Fatal("explicit completed=false should be stored")
	}
}

func TestUpsertProgressNewRowDefaultsToIncomplete(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	course := testsupport.CreateCourse(t, db, cat.ID, "Figma", 6)
	video := testsupport.CreateVideo(t, db, course.ID, "Intro", 600, testsupport.Ptr(time.Now()))

	if err := repo.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: 30}); err != nil {
		t.Fatalf("UpsertProgress returned error: %v", err)
	}
	p, err := repo.FindProgress(ctx, user.ID, video.ID)
	if err != nil || p == nil {
		t.Fatalf("FindProgress: (%+v, %v)", p, err)
	}
	if p.Completed {
		t.Fatal("new progress row should default to not completed")
	}
}

func TestUpsertProgressConcurrentSamePair(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	course := testsupport.CreateCourse(t, db, cat.ID, "Figma", 6)
	video := testsupport.CreateVideo(t, db, course.ID, "Intro", 600, testsupport.Ptr(time.Now()))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seconds int) {
			defer wg.Done()
			errs <- repo.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: video.ID, WatchedSeconds: seconds})
		}(i * 10)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert returned error: %v", err)
		}
	}

	count, err := repo.CountProgress(ctx, user.ID, video.ID)
	if err != nil {
		t.Fatalf("CountProgress returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row after concurrent upserts, got %d", count)
	}
}

func TestUpsertProgressUnknownVideoFails(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewVideoRepository(db)
	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)

	err := repo.UpsertProgress(context.Background(), model.ProgressUpdate{UserID: user.ID, VideoID: 9999, WatchedSeconds: 1})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown video")
	}
}

func TestDashboardCounts(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := repository.NewDashboardRepository(db)
	videos := repository.NewVideoRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	a := testsupport.CreateCourse(t, db, cat.ID, "A", 1)
	b := testsupport.CreateCourse(t, db, cat.ID, "B", 1)
	c := testsupport.CreateCourse(t, db, cat.ID, "C", 1)

	testsupport.Enroll(t, db, user.ID, a.ID, now, 100)
	eb := testsupport.Enroll(t, db, user.ID, b.ID, now, 100)
	ec := testsupport.Enroll(t, db, user.ID, c.ID, now, 10)
	testsupport.CompleteEnrollment(t, db, eb, now)
	testsupport.DeactivateEnrollment(t, db, ec)

	v1 := testsupport.CreateVideo(t, db, a.ID, "v1", 60, testsupport.Ptr(now))
	testsupport.CreateVideo(t, db, b.ID, "v2", 60, testsupport.Ptr(now))
	testsupport.CreateVideo(t, db, b.ID, "draft", 60, nil)
	testsupport.CreateVideo(t, db, c.ID, "inactive course", 60, testsupport.Ptr(now))

	if err := videos.UpsertProgress(ctx, model.ProgressUpdate{UserID: user.ID, VideoID: v1.ID, WatchedSeconds: 60, Completed: testsupport.Ptr(true)}); err != nil {
		t.Fatalf("UpsertProgress: %v", err)
	}

	testsupport.AddStudySession(t, db, user.ID, now.Add(-time.Hour), 3000)
	testsupport.AddStudySession(t, db, user.ID, now.Add(-6*24*time.Hour), 2400)
	testsupport.AddStudySession(t, db, user.ID, now.Add(-8*24*time.Hour), 99999)

	checks := []struct {
		name string
		fn   func(context.Context, int) (int, error)
		want int
	}{
		{"active enrollments", repo.CountActiveEnrollments, 2},
		{"completed enrollments", repo.CountCompletedEnrollments, 1},
		{"published videos", repo.CountPublishedVideos, 2},
		{"completed videos", repo.CountCompletedVideos, 1},
	}
	for _, check := range checks {
		got, err := check.fn(ctx, user.ID)
		if err != nil {
			t.Fatalf("%s returned error: %v", check.name, err)
		}
		if got != check.want {
			t.Fatalf("%s: got %d want %d", check.name, got, check.want)
		}
	}

	seconds, err := repo.SumStudySeconds(ctx, user.ID, now.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("SumStudySeconds returned error: %v", err)
	}
	if seconds != 5400 {
		t.Fatalf("unexpected study seconds: got %d want 5400", seconds)
	}

	none, err := repo.SumStudySeconds(ctx, 4242, now.Add(-7*24*time.Hour))
	if err != nil || none != 0 {
		t.Fatalf("expected 0 seconds without sessions, got (%d, %v)", none, err)
	}
}

func TestEnrollmentAllowsOneActiveRowPerCourse(t *testing.T) {
	db := testsupport.NewDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")
	course := testsupport.CreateCourse(t, db, cat.ID, "Figma", 4)
	published := now.Add(-time.Hour)
	testsupport.CreateVideo(t, db, course.ID, "Camadas", 60, &published)
	first := testsupport.Enroll(t, db, user.ID, course.ID, now.Add(-time.Hour), 10)

	dup := &model.Enrollment{UserID: user.ID, CourseID: course.ID, EnrolledAt: now, IsActive: true}
	if err := db.Create(dup).Error; err == nil {
		t.Fatal("expected second active enrollment for the same course to be rejected")
	}

	courses, err := repository.NewCourseRepository(db).ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser courses: %v", err)
	}
	videos, err := repository.NewVideoRepository(db).ListByUser(ctx, user.ID, 20)
	if err != nil {
		t.Fatalf("ListByUser videos: %v", err)
	}
	total, err := repository.NewDashboardRepository(db).CountActiveEnrollments(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountActiveEnrollments: %v", err)
	}
	if len(courses) != 1 || len(videos) != 1 || total != 1 {
		t.Fatalf("courses=%d videos=%d total=%d, want 1 each", len(courses), len(videos), total)
	}

	// 旧记录停用后可以重新选课
	testsupport.DeactivateEnrollment(t, db, first)
	again := &model.Enrollment{UserID: user.ID, CourseID: course.ID, EnrolledAt: now, IsActive: true}
	if err := db.Create(again).Error; err != nil {
		t.Fatalf("re-enroll after deactivation: %v", err)
	}
}

func TestEnrollmentProgressMustBeWithinRange(t *testing.T) {
	db := testsupport.NewDB(t)
	user := testsupport.CreateUser(t, db, "Ana", "ana@example.com", "secret", true)
	cat := testsupport.CreateCategory(t, db, "Design")

	for _, progress := range []float64{-1, 101} {
		course := testsupport.CreateCourse(t, db, cat.ID, fmt.Sprintf("Curso %v", progress), 2)
		e := &model.Enrollment{UserID: user.ID, CourseID: course.ID, ProgressPercentage: progress, EnrolledAt: time.Now().UTC(), IsActive: true}
		if err := db.Create(e).Error; err == nil {
			t.Fatalf("progress %v: expected check constraint violation", progress)
		}
	}

	course := testsupport.CreateCourse(t, db, cat.ID, "Limite", 2)
	testsupport.Enroll(t, db, user.ID, course.ID, time.Now().UTC(), 100)
}
