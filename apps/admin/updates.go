package main

import (
	"context"

	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
)

func (cli *commandLine) publish(ctx context.Context, args []string) error {
	cmd := cli.flagSet("publish")
	courseID := cmd.String("course", "", "The course id.")
	if err := parse(cmd, args, "course"); err != nil {
		return err
	}
	n, err := cli.courses.Publish(ctx, *courseID)
	return cli.status("publish", err, "%d course(s) modified", n)
}

func (cli *commandLine) addTags(ctx context.Context, args []string) error {
	cmd := cli.flagSet("addtags")
	courseID := cmd.String("course", "", "The course id.")
	tags := cmd.String("tags", "", "Comma separated list of tags.")
	if err := parse(cmd, args, "course", "tags"); err != nil {
		return err
	}
	n, err := cli.courses.AddTags(ctx, *courseID, splitList(*tags))
	return cli.status("addtags", err, "%d course(s) modified", n)
}

func (cli *commandLine) rate(ctx context.Context, args []string) error {
	cmd := cli.flagSet("rate")
	courseID := cmd.String("course", "", "The course id.")
	studentID := cmd.String("student", "", "The rating student's id.")
	rating := cmd.Float64("rating", 0, "A rating between 1 and 5.")
	if err := parse(cmd, args, "course", "student"); err != nil {
		return err
	}
	n, err := cli.courses.Rate(ctx, *courseID, course.NewRating{StudentID: *studentID, Rating: *rating})
	return cli.status("rate", err, "%d course(s) modified", n)
}

func (cli *commandLine) profile(ctx context.Context, args []string) error {
	cmd := cli.flagSet("profile")
	userID := cmd.String("user", "", "The user's id.")
	bio := cmd.String("bio", "", "A short biography.")
	avatar := cmd.String("avatar", "", "The avatar URL.")
	skills := cmd.String("skills", "", "Comma separated list of skills.")
	if err := parse(cmd, args, "user"); err != nil {
		return err
	}
	n, err := cli.users.UpdateProfile(ctx, *userID, user.UpdateProfile{
		Bio:    *bio,
		Avatar: *avatar,
		Skills: splitList(*skills),
	})
	return cli.status("profile", err, "%d user(s) modified", n)
}

func (cli *commandLine) deactivate(ctx context.Context, args []string) error {
	cmd := cli.flagSet("deactivate")
	userID := cmd.String("user", "", "The user's id.")
	if err := parse(cmd, args, "user"); err != nil {
		return err
	}
	n, err := cli.users.SoftDelete(ctx, *userID)
	return cli.status("deactivate", err, "%d user(s) modified", n)
}

func (cli *commandLine) enroll(ctx context.Context, args []string) error {
	cmd := cli.flagSet("enroll")
	studentID := cmd.String("student", "", "The student's id.")
	courseID := cmd.String("course", "", "The course id.")
	if err := parse(cmd, args, "student", "course"); err != nil {
		return err
	}
	enr, err := cli.enrollments.Enroll(ctx, *studentID, *courseID)
	return cli.status("enroll", err, "created enrollment %s", enr.EnrollmentID)
}

func (cli *commandLine) unenroll(ctx context.Context, args []string) error {
	cmd := cli.flagSet("unenroll")
	id := cmd.String("id", "", "The enrollment id.")
	if err := parse(cmd, args, "id"); err != nil {
		return err
	}
	n, err := cli.enrollments.Delete(ctx, *id)
	return cli.status("unenroll", err, "%d enrollment(s) deleted", n)
}

func (cli *commandLine) deleteLesson(ctx context.Context, args []string) error {
	cmd := cli.flagSet("deletelesson")
	id := cmd.String("id", "", "The lesson id.")
	if err := parse(cmd, args, "id"); err != nil {
		return err
	}
	n, err := cli.lessons.Delete(ctx, *id)
	return cli.status("deletelesson", err, "%d lesson(s) deleted", n)
}

func (cli *commandLine) grade(ctx context.Context, args []string) error {
	cmd := cli.flagSet("grade")
	id := cmd.String("id", "", "The submission id.")
	score := cmd.Int("score", -1, "The score, between 0 and the assignment's max score.")
	feedback := cmd.String("feedback", "", "Feedback for the student.")
	if err := parse(cmd, args, "id"); err != nil {
		return err
	}
	if *score < 0 {
		cmd.Usage()
		return errHelp
	}
	points, err := int32Value(cmd, "score", *score)
	if err != nil {
		return err
	}
	n, err := cli.submissions.Grade(ctx, *id, submission.Grade{Score: points, Feedback: *feedback})
	return cli.status("grade", err, "%d submission(s) modified", n)
}
