package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show study statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.requireSession()
			if err != nil {
				return err
			}
			stats, err := ctx.client().Dashboard(cmd.Context(), session)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, stats)
			}

			rows := [][]string{
				{"Courses", strconv.Itoa(stats.TotalCourses)},
				{"Completed courses", strconv.Itoa(stats.CompletedCourses)},
				{"Videos", strconv.Itoa(stats.TotalVideos)},
				{"Watched videos", strconv.Itoa(stats.WatchedVideos)},
				{"Study time (7d, hours)", strconv.Itoa(stats.StudyTime)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newCoursesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List enrolled courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.requireSession()
			if err != nil {
				return err
			}
			courses, err := ctx.client().Courses(cmd.Context(), session)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, courses)
			}
			if len(courses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No enrolled courses")
				return nil
			}

			rows := make([][]string, 0, len(courses))
			for _, c := range courses {
				rows = append(rows, []string{
					strconv.Itoa(c.ID),
					c.Thumbnail + " " + c.Title,
					c.Category,
					c.Level,
					c.Duration,
					strconv.FormatFloat(c.Progress, 'f', -1, 64) + "%",
				})
			}
			headers := []string{"ID", "Title", "Category", "Level", "Duration", "Progress"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List recent videos from enrolled courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.requireSession()
			if err != nil {
				return err
			}
			videos, err := ctx.client().Videos(cmd.Context(), session)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, videos)
			}
			if len(videos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No videos")
				return nil
			}

			rows := make([][]string, 0, len(videos))
			for _, v := range videos {
				watched := ""
				if v.IsWatched {
					watched = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(v.ID),
					v.Title,
					v.CourseTitle,
					v.Duration,
					v.PublishedAt,
					watched,
				})
			}
			headers := []string{"ID", "Title", "Course", "Duration", "Published", "Watched"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "progress <video-id> <watched-seconds>",
		Short: "Record watch progress for a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid video id %q", args[0])
			}
			seconds, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid watched seconds %q", args[1])
			}

			// 未传 --completed 时不修改服务端已有的完成状态
			var completedPtr *bool
			if cmd.Flags().Changed("completed") {
				completedPtr = &completed
			}

			session, err := ctx.requireSession()
			if err != nil {
				return err
			}
			if err := ctx.client().UpdateVideoProgress(cmd.Context(), session, videoID, seconds, completedPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress updated for video %d\n", videoID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the video completed (--completed=false to reset)")
	return cmd
}
