package user

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
)

type (
	Repository interface {
		// Install creates the users collection with its validator and indexes. Idempotent.
		Install(ctx context.Context) error
		CreateUser(ctx context.Context, usr User) error
		GetUserByID(ctx context.Context, id string) (User, error)
		QueryUsersByRole(ctx context.Context, role string) ([]User, error)
		// UpdateUserProfile and DeactivateUser return the number of modified documents.
		// DeactivateUser only matches an active user.
		UpdateUserProfile(ctx context.Context, id string, profile Profile, updatedAt time.Time) (int64, error)
		DeactivateUser(ctx context.Context, id string, updatedAt time.Time) (int64, error)
	}

	Service struct {
		repo Repository
		fake core.Faker
		log  core.Logger
	}
)

func NewService(repo Repository, fake core.Faker, log core.Logger) *Service {
	return &Service{repo: repo, fake: fake, log: log}
}

// Seed inserts n generated users with random roles.
func (svc *Service) Seed(ctx context.Context, n int) (core.SeedResult, error) {
	res := core.SeedResult{Entity: schema.UsersCollection}
	if err := svc.repo.Install(ctx); err != nil {
		return res, err
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		usr := User{
			UserID:     core.NewID(),
			Email:      svc.fake.UniqueEmail(),
			FirstName:  svc.fake.FirstName(),
			LastName:   svc.fake.LastName(),
			Role:       svc.fake.Pick(Roles),
			DateJoined: core.Now(),
			Profile: Profile{
				Bio:    svc.fake.Sentence(8),
				Avatar: svc.fake.ImageURL(),
				Skills: svc.fake.Sample(SkillsPool, 1, 4),
			},
			IsActive: svc.fake.Bool(),
		}
		err := svc.insert(ctx, usr)
		if err != nil {
			svc.log.Warn("failed to insert user", "entity", schema.UsersCollection, "reason", core.Describe(err))
		} else {
			svc.log.Debug("inserted user", "name", usr.FullName(), "role", usr.Role)
		}
		res.Record(err)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// Create inserts a single active user.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	if err := svc.repo.Install(ctx); err != nil {
		return User{}, err
	}

	usr := User{
		UserID:     core.NewID(),
		Email:      nu.Email,
		FirstName:  nu.FirstName,
		LastName:   nu.LastName,
		Role:       nu.Role,
		DateJoined: core.Now(),
		Profile:    Profile{Bio: nu.Bio, Avatar: nu.Avatar, Skills: nu.Skills},
		IsActive:   true,
	}
	if err := svc.insert(ctx, usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) insert(ctx context.Context, usr User) error {
	if usr.Profile.Skills == nil {
		usr.Profile.Skills = []string{}
	}
	if err := schema.ValidateValue(schema.Users, usr); err != nil {
		return err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	id, err := core.ParseID("userId", id)
	if err != nil {
		return User{}, err
	}
	return svc.repo.GetUserByID(ctx, id)
}

// Students returns every user with the student role.
func (svc *Service) Students(ctx context.Context) ([]User, error) {
	return svc.repo.QueryUsersByRole(ctx, RoleStudent)
}

// Instructors returns every user with the instructor role.
func (svc *Service) Instructors(ctx context.Context) ([]User, error) {
	return svc.repo.QueryUsersByRole(ctx, RoleInstructor)
}

// UpdateProfile replaces the user's profile and stamps updatedAt.
func (svc *Service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (int64, error) {
	id, err := core.ParseID("userId", id)
	if err != nil {
		return 0, err
	}
	if err := up.Validate(); err != nil {
		return 0, err
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return 0, err
	}

	now := core.Now()
	usr.Profile = up.Profile()
	usr.UpdatedAt = &now
	if err := schema.ValidateValue(schema.Users, usr); err != nil {
		return 0, err
	}
	return svc.repo.UpdateUserProfile(ctx, id, usr.Profile, now)
}

// SoftDelete marks an active user as inactive. Users are never removed.
func (svc *Service) SoftDelete(ctx context.Context, id string) (int64, error) {
	id, err := core.ParseID("userId", id)
	if err != nil {
		return 0, err
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !usr.IsActive {
		svc.log.Info("user already inactive", "userId", id)
		return 0, core.NewPreconditionError(usr.Ref(), "already inactive")
	}

	n, err := svc.repo.DeactivateUser(ctx, id, core.Now())
	if err != nil {
		return 0, err
	}
	if n == 0 {
		if _, err := svc.repo.GetUserByID(ctx, id); err != nil {
			return 0, err
		}
		return 0, core.NewPreconditionError(usr.Ref(), "already inactive")
	}
	return n, nil
}
