package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/assignment"
	"github.com/eduhub/eduhub/core/course"
	"github.com/eduhub/eduhub/core/enrollment"
	"github.com/eduhub/eduhub/core/lesson"
	"github.com/eduhub/eduhub/core/report"
	"github.com/eduhub/eduhub/core/submission"
	"github.com/eduhub/eduhub/core/user"
	"github.com/eduhub/eduhub/services/fixture"
	logsvc "github.com/eduhub/eduhub/services/logger"
	"github.com/eduhub/eduhub/storage/database/inmem"
	"github.com/eduhub/eduhub/storage/database/mongodb"
)

// repositories of one storage engine.
type repositories struct {
	users       user.Repository
	courses     course.Repository
	lessons     lesson.Repository
	assignments assignment.Repository
	enrollments enrollment.Repository
	submissions submission.Repository
	reports     report.Repository
}

func main() {
	conf := core.NewConfig()

	zapLogger, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("main.NewZapLogger(): %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := logsvc.NewRollbarLogger(zapLogger, conf)

	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.ConnectTimeout)
	store, repos, err := openStore(ctx, conf)
	cancel()
	if err != nil {
		logger.Error("opening database", err, "engine", conf.Database.Engine)
		os.Exit(1)
	}

	cli := newCommandLine(os.Stdout, conf, store, repos, fixture.New(conf.Seed.RandomSeed), logger)
	err = cli.run(os.Args)
	if cErr := store.Close(context.Background()); cErr != nil {
		logger.Warn("closing database", cErr)
	}
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}

func openStore(ctx context.Context, conf *core.Config) (core.Store, repositories, error) {
	switch conf.Database.Engine {
	case core.EngineMongo:
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			return nil, repositories{}, err
		}
		return db, repositories{
			users:       mongodb.NewUserRepository(db),
			courses:     mongodb.NewCourseRepository(db),
			lessons:     mongodb.NewLessonRepository(db),
			assignments: mongodb.NewAssignmentRepository(db),
			enrollments: mongodb.NewEnrollmentRepository(db),
			submissions: mongodb.NewSubmissionRepository(db),
			reports:     mongodb.NewReportRepository(db),
		}, nil
	case core.EngineMemory:
		db, err := inmemdb.Open()
		if err != nil {
			return nil, repositories{}, err
		}
		return db, memoryRepositories(db), nil
	default:
		return nil, repositories{}, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}

func memoryRepositories(db *inmemdb.DB) repositories {
	return repositories{
		users:       inmemdb.NewUserRepository(db),
		courses:     inmemdb.NewCourseRepository(db),
		lessons:     inmemdb.NewLessonRepository(db),
		assignments: inmemdb.NewAssignmentRepository(db),
		enrollments: inmemdb.NewEnrollmentRepository(db),
		submissions: inmemdb.NewSubmissionRepository(db),
		reports:     inmemdb.NewReportRepository(db),
	}
}
