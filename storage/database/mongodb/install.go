package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduhub/eduhub/core/schema"
)

// Install creates the collection of s when missing, replaces its validator and creates its indexes.
// Every step is safe to repeat.
func (db *DB) Install(ctx context.Context, s schema.Schema) error {
	names, err := db.Database.ListCollectionNames(ctx, bson.D{{Key: "name", Value: s.Collection}})
	if err != nil {
		return errors.Wrapf(err, "listing collections")
	}
	if len(names) == 0 {
		if err = db.Database.CreateCollection(ctx, s.Collection); err != nil {
			return errors.Wrapf(err, "creating %s collection", s.Collection)
		}
	}
	if err = db.Database.RunCommand(ctx, collModCommand(s)).Err(); err != nil {
		return errors.Wrapf(err, "applying %s validator", s.Collection)
	}
	if models := indexModels(s); len(models) > 0 {
		if _, err = db.Database.Collection(s.Collection).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", s.Collection)
		}
	}
	return nil
}

func collModCommand(s schema.Schema) bson.D {
	return bson.D{
		{Key: "collMod", Value: s.Collection},
		{Key: "validator", Value: s.Validator()},
		{Key: "validationLevel", Value: "strict"},
		{Key: "validationAction", Value: "error"},
	}
}

func indexModels(s schema.Schema) []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, len(s.Indexes))
	for _, idx := range s.Indexes {
		keys := make(bson.D, 0, len(idx.Keys))
		for _, k := range idx.Keys {
			keys = append(keys, bson.E{Key: k, Value: 1})
		}
		opts := options.Index().SetName(idx.Name)
		if idx.Unique {
			opts.SetUnique(true)
		}
		models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
	}
	return models
}
