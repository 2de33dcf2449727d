package main

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/report"
)

type reportParams struct {
	courseID string
	months   int
	limit    int
	category string
	query    string
	min, max float64
	tags     []string
	days     int
}

type reportFunc func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error)

var reportCatalog = map[string]reportFunc{
	"active-students": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.ActiveStudents(ctx)
	},
	"students-in-course": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.StudentsInCourse(ctx, p.courseID)
	},
	"recent-users": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.RecentUsers(ctx, p.months)
	},
	"average-grades": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.AverageGradePerStudent(ctx)
	},
	"top-students": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.TopPerformingStudents(ctx, p.limit)
	},
	"student-engagement": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.StudentEngagement(ctx)
	},
	"courses-with-instructor": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.CoursesWithInstructor(ctx)
	},
	"courses-by-category": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.CoursesByCategory(ctx, p.category)
	},
	"search-courses": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.SearchCoursesByTitle(ctx, p.query)
	},
	"courses-in-price-range": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.CoursesInPriceRange(ctx, p.min, p.max)
	},
	"courses-by-tags": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.CoursesByTags(ctx, p.tags)
	},
	"average-course-rating": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.AverageCourseRating(ctx)
	},
	"courses-per-category": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.CoursesPerCategory(ctx)
	},
	"rating-per-instructor": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.AverageRatingPerInstructor(ctx)
	},
	"popular-categories": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.PopularCategories(ctx)
	},
	"upcoming-assignments": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.UpcomingAssignments(ctx, core.Days(p.days))
	},
	"enrollments-per-course": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.EnrollmentsPerCourse(ctx)
	},
	"completion-rates": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.CompletionRates(ctx)
	},
	"course-completion-rate": func(ctx context.Context, svc *report.Service, p reportParams) (interface{}, error) {
		return svc.CourseCompletionRate(ctx, p.courseID)
	},
	"students-per-instructor": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.StudentsPerInstructor(ctx)
	},
	"revenue-per-instructor": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.RevenuePerInstructor(ctx)
	},
	"monthly-enrollments": func(ctx context.Context, svc *report.Service, _ reportParams) (interface{}, error) {
		return svc.MonthlyEnrollmentTrends(ctx)
	},
}

func reportNames() []string {
	names := make([]string, 0, len(reportCatalog))
	for name := range reportCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the report name closest to name, or "" when nothing is close enough.
func suggest(name string) string {
	var (
		best      string
		bestRatio = 0.6
	)
	for _, candidate := range reportNames() {
		m := difflib.NewMatcher(strings.Split(name, ""), strings.Split(candidate, ""))
		if ratio := m.Ratio(); ratio > bestRatio {
			best, bestRatio = candidate, ratio
		}
	}
	return best
}

func (cli *commandLine) report(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	name := core.CleanString(args[0], true /* lower */)
	if name == "list" {
		fmt.Fprintln(cli.out, strings.Join(reportNames(), "\n"))
		return nil
	}
	run, ok := reportCatalog[name]
	if !ok {
		msg := fmt.Sprintf("report: unknown report %q", name)
		if s := suggest(name); s != "" {
			msg += fmt.Sprintf("; did you mean %q?", s)
		}
		fmt.Fprintln(cli.out, msg)
		return errHelp
	}

	cmd := cli.flagSet("report " + name)
	asJSON := cmd.Bool("json", false, "Print the rows as a JSON array.")
	courseID := cmd.String("course", "", "Course id (students-in-course, course-completion-rate).")
	months := cmd.Int("months", report.DefaultRecentMonths, "Look-back in months (recent-users).")
	limit := cmd.Int("limit", report.DefaultTopLimit, "Number of rows (top-students).")
	category := cmd.String("category", "", "Category (courses-by-category).")
	query := cmd.String("q", "", "Title substring (search-courses).")
	minPrice := cmd.Float64("min", report.DefaultMinPrice, "Minimum price (courses-in-price-range).")
	maxPrice := cmd.Float64("max", report.DefaultMaxPrice, "Maximum price (courses-in-price-range).")
	tags := cmd.String("tags", "", "Comma separated tags (courses-by-tags).")
	days := cmd.Int("days", int(report.DefaultDueWindow/(24*time.Hour)), "Window in days (upcoming-assignments).")
	if err := parse(cmd, args[1:]); err != nil {
		return err
	}

	rows, err := run(ctx, cli.reports, reportParams{
		courseID: *courseID,
		months:   *months,
		limit:    *limit,
		category: *category,
		query:    *query,
		min:      *minPrice,
		max:      *maxPrice,
		tags:     splitList(*tags),
		days:     *days,
	})
	if err != nil {
		return cli.status("report "+name, err, "")
	}
	if *asJSON {
		return cli.printJSON(rows)
	}
	cli.printRows(name, rows)
	return nil
}

func (cli *commandLine) printJSON(rows interface{}) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}

func (cli *commandLine) printRows(name string, rows interface{}) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		fmt.Fprintf(cli.out, "%+v\n", rows)
		return
	}
	for i := 0; i < v.Len(); i++ {
		fmt.Fprintf(cli.out, "%+v\n", v.Index(i).Interface())
	}
	fmt.Fprintf(cli.out, "report %s: %d row(s)\n", name, v.Len())
}
