package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
	"github.com/eduhub/eduhub/core/user"
)

type userRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db, coll: db.Database.Collection(schema.UsersCollection)}
}

func (repo *userRepository) Install(ctx context.Context) error {
	return repo.db.Install(ctx, schema.Users)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) error {
	_, err := repo.coll.InsertOne(ctx, usr)
	return translate(err, schema.UsersCollection)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"userId": id}).Decode(&usr); err != nil {
		return user.User{}, notFound(err, core.UserRef(id))
	}
	return usr, nil
}

func (repo *userRepository) QueryUsersByRole(ctx context.Context, role string) ([]user.User, error) {
	return findAll[user.User](ctx, repo.coll, bson.M{"role": role})
}

func (repo *userRepository) update(ctx context.Context, filter, set bson.M) (int64, error) {
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, translate(err, schema.UsersCollection)
	}
	return res.ModifiedCount, nil
}

func (repo *userRepository) UpdateUserProfile(ctx context.Context, id string, profile user.Profile, updatedAt time.Time) (int64, error) {
	n, err := repo.update(ctx, bson.M{"userId": id}, bson.M{
		"profile.bio":    profile.Bio,
		"profile.avatar": profile.Avatar,
		"profile.skills": profile.Skills,
		"updatedAt":      updatedAt,
	})
	return n, errors.WithMessage(err, "updating user profile")
}

func (repo *userRepository) DeactivateUser(ctx context.Context, id string, updatedAt time.Time) (int64, error) {
	return repo.update(ctx,
		bson.M{"userId": id, "isActive": true},
		bson.M{"isActive": false, "updatedAt": updatedAt},
	)
}
