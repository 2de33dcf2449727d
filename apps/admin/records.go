package main

import (
	"context"

	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
)

func (cli *commandLine) addUser(ctx context.Context, args []string) error {
	cmd := cli.flagSet("adduser")
	email := cmd.String("email", "", "The user's email address. Must be unique.")
	first := cmd.String("first", "", "The user's first name.")
	last := cmd.String("last", "", "The user's last name.")
	role := cmd.String("role", user.RoleStudent, "student or instructor.")
	bio := cmd.String("bio", "", "A short biography.")
	avatar := cmd.String("avatar", "", "The avatar URL.")
	skills := cmd.String("skills", "", "Comma separated list of skills.")
	if err := parse(cmd, args, "email"); err != nil {
		return err
	}

	usr, err := cli.users.Create(ctx, user.NewUser{
		Email:     *email,
		FirstName: *first,
		LastName:  *last,
		Role:      *role,
		Bio:       *bio,
		Avatar:    *avatar,
		Skills:    splitList(*skills),
	})
	return cli.status("adduser", err, "created %s %s (%s)", usr.Role, usr.UserID, usr.Email)
}

func (cli *commandLine) addCourse(ctx context.Context, args []string) error {
	cmd := cli.flagSet("addcourse")
	instructor := cmd.String("instructor", "", "The instructor's id. A random instructor is picked when empty.")
	title := cmd.String("title", "", "The course title.")
	description := cmd.String("description", "", "The course description.")
	category := cmd.String("category", "", "The course category.")
	level := cmd.String("level", course.LevelBeginner, "beginner, intermediate or advanced.")
	duration := cmd.Float64("duration", 0, "The course duration in hours.")
	price := cmd.Float64("price", 0, "The course price.")
	tags := cmd.String("tags", "", "Comma separated list of tags.")
	published := cmd.Bool("published", false, "Publish the course right away.")
	if err := parse(cmd, args, "title"); err != nil {
		return err
	}

	crs, err := cli.courses.Create(ctx, course.NewCourse{
		InstructorID: *instructor,
		Title:        *title,
		Description:  *description,
		Category:     *category,
		Level:        *level,
		Duration:     *duration,
		Price:        *price,
		Tags:         splitList(*tags),
		IsPublished:  *published,
	})
	return cli.status("addcourse", err, "created course %s %q", crs.CourseID, crs.Title)
}

func (cli *commandLine) addLesson(ctx context.Context, args []string) error {
	cmd := cli.flagSet("addlesson")
	courseID := cmd.String("course", "", "The course id.")
	title := cmd.String("title", "", "The lesson title.")
	content := cmd.String("content", "", "The lesson content. Generated when empty.")
	duration := cmd.Int("duration", 0, "The lesson duration in minutes. Generated when 0.")
	if err := parse(cmd, args, "course"); err != nil {
		return err
	}
	minutes, err := int32Value(cmd, "duration", *duration)
	if err != nil {
		return err
	}

	lsn, err := cli.lessons.AddToCourse(ctx, lesson.NewLesson{
		CourseID: *courseID,
		Title:    *title,
		Content:  *content,
		Duration: minutes,
	})
	return cli.status("addlesson", err, "created lesson %s at position %d", lsn.LessonID, lsn.Position)
}

func (cli *commandLine) addAssignment(ctx context.Context, args []string) error {
	cmd := cli.flagSet("addassignment")
	courseID := cmd.String("course", "", "The course id.")
	title := cmd.String("title", "", "The assignment title.")
	description := cmd.String("description", "", "The assignment description.")
	due := cmd.Int("due", 7, "Days until the assignment is due.")
	maxScore := cmd.Int("maxscore", 100, "The maximum score.")
	published := cmd.Bool("published", true, "Publish the assignment.")
	if err := parse(cmd, args, "course"); err != nil {
		return err
	}
	ceiling, err := int32Value(cmd, "maxscore", *maxScore)
	if err != nil {
		return err
	}

	asg, err := cli.assignments.Create(ctx, assignment.NewAssignment{
		CourseID:    *courseID,
		Title:       *title,
		Description: *description,
		DueInDays:   *due,
		MaxScore:    ceiling,
		IsPublished: *published,
	})
	return cli.status("addassignment", err, "created assignment %s due %s", asg.AssignmentID, asg.DueDate.Format("2006-01-02"))
}

func (cli *commandLine) submit(ctx context.Context, args []string) error {
	cmd := cli.flagSet("submit")
	assignmentID := cmd.String("assignment", "", "The assignment id.")
	studentID := cmd.String("student", "", "The student's id.")
	if err := parse(cmd, args, "assignment", "student"); err != nil {
		return err
	}

	sub, err := cli.submissions.Submit(ctx, submission.NewSubmission{
		AssignmentID: *assignmentID,
		StudentID:    *studentID,
	})
	return cli.status("submit", err, "created submission %s", sub.SubmissionID)
}
