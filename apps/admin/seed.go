package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eduhub/eduhub/core"
)

type seeder struct {
	entity string
	count  int
	seed   func(ctx context.Context, n int) (core.SeedResult, error)
}

// seeders are listed in dependency order.
func (cli *commandLine) seeders() []seeder {
	c := cli.conf.Seed
	return []seeder{
		{"users", c.Users, cli.users.Seed},
		{"courses", c.Courses, cli.courses.Seed},
		{"lessons", c.Lessons, cli.lessons.Seed},
		{"assignments", c.Assignments, cli.assignments.Seed},
		{"enrollments", c.Enrollments, cli.enrollments.Seed},
		{"submissions", c.Submissions, cli.submissions.Seed},
	}
}

func (cli *commandLine) seed(ctx context.Context, args []string) error {
	cmd := cli.flagSet("seed")
	n := cmd.Int("n", 0, "Number of documents to generate. Defaults to the configured batch size.")
	if err := parse(cmd, args); err != nil {
		return err
	}
	entity := core.CleanString(cmd.Arg(0), true /* lower */)
	if entity == "" || *n < 0 {
		cmd.Usage()
		return errHelp
	}

	var selected []seeder
	for _, s := range cli.seeders() {
		if entity == "all" || entity == s.entity {
			if *n > 0 {
				s.count = *n
			}
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		fmt.Fprintf(cli.out, "seed: unknown entity %q (want %s or all)\n", entity, strings.Join(cli.entities(), ", "))
		return errHelp
	}

	for _, s := range selected {
		res, err := s.seed(ctx, s.count)
		if err != nil {
			if err = cli.status("seed "+s.entity, err, ""); err != nil {
				return err
			}
			continue
		}
		for _, fErr := range res.Failures {
			cli.log.Debug("seed failure", "entity", s.entity, "reason", core.Describe(fErr))
		}
		fmt.Fprintf(cli.out, "seed %s in %s\n", res, res.Elapsed.Round(time.Millisecond))
	}
	return nil
}

func (cli *commandLine) entities() []string {
	seeders := cli.seeders()
	names := make([]string, 0, len(seeders))
	for _, s := range seeders {
		names = append(names, s.entity)
	}
	return names
}
