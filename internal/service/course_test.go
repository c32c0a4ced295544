package service

import (
	"context"
	"testing"

	"github.com/user/learnhub/internal/config"
	"github.com/user/learnhub/internal/repository"
)

type fakeCourseLister struct {
	rows []repository.EnrolledCourse
}

func (f *fakeCourseLister) ListByUser(ctx context.Context, userID int) ([]repository.EnrolledCourse, error) {
	return f.rows, nil
}

func TestCourseListAppliesLabelsAndDuration(t *testing.T) {
	lister := &fakeCourseLister{rows: []repository.EnrolledCourse{
		{ID: 2, Title: "React", DurationHours: 20, Level: "Intermediário", ProgressPercentage: 75.5, CategoryName: "Desenvolvimento Web"},
		{ID: 1, Title: "Fotografia", DurationHours: 6, ProgressPercentage: 0, CategoryName: "Arte"},
	}}
	labels := config.NewCategoryLabels(map[string]string{"Desenvolvimento Web": "W"}, "?")

	items, err := NewCourseService(lister, labels, "hours").List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Thumbnail != "W" || items[0].Duration != "20 hours" || items[0].Progress != 75.5 || items[0].Category != "Desenvolvimento Web" {
		t.Fatalf("first = %+v", items[0])
	}
	if items[1].Thumbnail != "?" || items[1].ID != 1 {
		t.Fatalf("second = %+v", items[1])
	}
}

func TestCourseListDefaults(t *testing.T) {
	lister := &fakeCourseLister{rows: []repository.EnrolledCourse{
		{ID: 1, Title: "Kotlin", DurationHours: 8, CategoryName: "Mobile Development"},
	}}

	items, err := NewCourseService(lister, nil, "").List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items[0].Thumbnail != "📱" || items[0].Duration != "8" {
		t.Fatalf("item = %+v", items[0])
	}
}
