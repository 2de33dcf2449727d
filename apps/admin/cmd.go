package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out   io.Writer
	conf  *core.Config
	store core.Store
	repos repositories
	log   core.Logger

	users       *user.Service
	courses     *course.Service
	lessons     *lesson.Service
	assignments *assignment.Service
	enrollments *enrollment.Service
	submissions *submission.Service
	reports     *report.Service
}

func newCommandLine(out io.Writer, conf *core.Config, store core.Store, repos repositories, fake core.Faker, log core.Logger) *commandLine {
	return &commandLine{
		out:   out,
		conf:  conf,
		store: store,
		repos: repos,
		log:   log,

		users:       user.NewService(repos.users, fake, log),
		courses:     course.NewService(repos.courses, repos.users, fake, log),
		lessons:     lesson.NewService(repos.lessons, repos.courses, fake, log),
		assignments: assignment.NewService(repos.assignments, repos.courses, fake, log),
		enrollments: enrollment.NewService(repos.enrollments, repos.users, repos.courses, fake, log),
		submissions: submission.NewService(repos.submissions, repos.users, repos.assignments, fake, log),
		reports:     report.NewService(repos.reports, log),
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate                                  - install collections, validators and indexes")
	fmt.Fprintln(cli.out, "  seed [-n N] ENTITY|all                   - insert generated documents")
	fmt.Fprintln(cli.out, "  report NAME [-json] [params]             - run a named report (report list to list them)")
	fmt.Fprintln(cli.out, "  adduser -email E -first F -last L -role R")
	fmt.Fprintln(cli.out, "  addcourse -title T -category C -level L [-instructor ID] [-price P] [-tags a,b]")
	fmt.Fprintln(cli.out, "  addlesson -course ID -title T [-duration MIN]")
	fmt.Fprintln(cli.out, "  addassignment -course ID -title T [-due DAYS] [-maxscore N]")
	fmt.Fprintln(cli.out, "  publish -course ID")
	fmt.Fprintln(cli.out, "  addtags -course ID -tags a,b")
	fmt.Fprintln(cli.out, "  rate -course ID -student ID -rating R")
	fmt.Fprintln(cli.out, "  profile -user ID [-bio B] [-avatar URL] [-skills a,b]")
	fmt.Fprintln(cli.out, "  deactivate -user ID")
	fmt.Fprintln(cli.out, "  enroll -student ID -course ID")
	fmt.Fprintln(cli.out, "  unenroll -id ENROLLMENT_ID")
	fmt.Fprintln(cli.out, "  deletelesson -id LESSON_ID")
	fmt.Fprintln(cli.out, "  submit -assignment ID -student ID")
	fmt.Fprintln(cli.out, "  grade -id SUBMISSION_ID -score N [-feedback F]")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "migrate":
		return cli.migrate(ctx)
	case "seed":
		return cli.seed(ctx, args[2:])
	case "report":
		return cli.report(ctx, args[2:])
	case "adduser":
		return cli.addUser(ctx, args[2:])
	case "addcourse":
		return cli.addCourse(ctx, args[2:])
	case "addlesson":
		return cli.addLesson(ctx, args[2:])
	case "addassignment":
		return cli.addAssignment(ctx, args[2:])
	case "publish":
		return cli.publish(ctx, args[2:])
	case "addtags":
		return cli.addTags(ctx, args[2:])
	case "rate":
		return cli.rate(ctx, args[2:])
	case "profile":
		return cli.profile(ctx, args[2:])
	case "deactivate":
		return cli.deactivate(ctx, args[2:])
	case "enroll":
		return cli.enroll(ctx, args[2:])
	case "unenroll":
		return cli.unenroll(ctx, args[2:])
	case "deletelesson":
		return cli.deleteLesson(ctx, args[2:])
	case "submit":
		return cli.submit(ctx, args[2:])
	case "grade":
		return cli.grade(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args into fs and checks that every flag of required was given a value.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	for _, name := range required {
		if f := fs.Lookup(name); f == nil || f.Value.String() == "" {
			fmt.Fprintf(fs.Output(), "-%s is required\n", name)
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

// int32Value narrows the value of an int flag, printing the usage when it does not fit.
func int32Value(fs *flag.FlagSet, name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		fmt.Fprintf(fs.Output(), "-%s is out of range: %d\n", name, v)
		fs.Usage()
		return 0, errHelp
	}
	return int32(v), nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return core.CleanStrings(strings.Split(s, ","))
}

// isOutcome tells whether err is a domain outcome that gets reported rather than failing the command.
func isOutcome(err error) bool {
	return core.IsValidation(err) ||
		core.IsDuplicateKey(err) ||
		core.IsPrerequisite(err) ||
		core.IsPrecondition(err) ||
		core.IsNotFound(err)
}

// status prints the status line of op and only returns the errors that are not domain outcomes.
func (cli *commandLine) status(op string, err error, format string, a ...interface{}) error {
	switch {
	case err == nil:
		fmt.Fprintf(cli.out, "%s: %s\n", op, fmt.Sprintf(format, a...))
	case isOutcome(err):
		fmt.Fprintf(cli.out, "%s: %s\n", op, core.Describe(err))
		cli.log.Debug(op+" rejected", "reason", err.Error())
	default:
		return err
	}
	return nil
}

func (cli *commandLine) migrate(ctx context.Context) error {
	for _, install := range []func(context.Context) error{
		cli.repos.users.Install,
		cli.repos.courses.Install,
		cli.repos.lessons.Install,
		cli.repos.assignments.Install,
		cli.repos.enrollments.Install,
		cli.repos.submissions.Install,
	} {
		if err := install(ctx); err != nil {
			return err
		}
	}
	names, err := cli.store.CollectionNames(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "migrate: installed %s\n", strings.Join(names, ", "))
	return nil
}
