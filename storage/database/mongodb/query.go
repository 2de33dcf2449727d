package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findAll decodes every document of coll matching filter into T.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", coll.Name())
	}
	out := make([]T, 0)
	if err = cur.All(ctx, &out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", coll.Name())
	}
	return out, nil
}

// aggregate runs pipeline on coll and decodes the resulting rows into T.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrapf(err, "aggregating %s", coll.Name())
	}
	out := make([]T, 0)
	if err = cur.All(ctx, &out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s aggregation", coll.Name())
	}
	return out, nil
}
