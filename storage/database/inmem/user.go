package inmemdb

import (
	"context"
	"time"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type userRepository struct {
	db   *DB
	coll *collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db, coll: db.collection(schema.UsersCollection)}
}

func byUserID(id string) func(user.User) bool {
	return func(u user.User) bool { return u.UserID == id }
}

func (repo *userRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Users)
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) error {
	return repo.coll.insert(usr)
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	return findOne(repo.coll, core.UserRef(id), byUserID(id))
}

func (repo *userRepository) QueryUsersByRole(_ context.Context, role string) ([]user.User, error) {
	return findDocs(repo.coll, func(u user.User) bool { return u.Role == role })
}

func (repo *userRepository) UpdateUserProfile(_ context.Context, id string, profile user.Profile, updatedAt time.Time) (int64, error) {
	return updateOne(repo.coll, byUserID(id), func(u *user.User) {
		u.Profile = profile
		u.UpdatedAt = &updatedAt
	})
}

func (repo *userRepository) DeactivateUser(_ context.Context, id string, updatedAt time.Time) (int64, error) {
	active := func(u user.User) bool { return u.UserID == id && u.IsActive }
	return updateOne(repo.coll, active, func(u *user.User) {
		u.IsActive = false
		u.UpdatedAt = &updatedAt
	})
}
