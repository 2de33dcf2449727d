package inmemdb

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
)

type collection struct {
	sync.RWMutex
	name    string
	created bool           // false until installed or first written, and again after a drop
	schema  *schema.Schema // nil until installed
	docs    []bson.Raw
}

// prepare encodes v and checks it against the installed contract.
// skip is the position of the document being replaced, -1 for an insert.
func (c *collection) prepare(v interface{}, skip int) (bson.Raw, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s document", c.name)
	}
	if c.schema == nil {
		return raw, nil
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding %s document", c.name)
	}
	if err := schema.Validate(*c.schema, doc); err != nil {
		return nil, err
	}
	for _, idx := range c.schema.UniqueIndexes() {
		key, ok := indexKey(doc, idx)
		if !ok {
			continue
		}
		for i, other := range c.docs {
			if i == skip {
				continue
			}
			if otherKey, ok := rawIndexKey(other, idx); ok && otherKey == key {
				return nil, &core.DuplicateKeyError{Collection: c.name, Index: idx.Name, Key: key}
			}
		}
	}
	return raw, nil
}

// checkUnique fails when existing documents already collide on one of idxs.
func (c *collection) checkUnique(idxs []schema.Index) error {
	for _, idx := range idxs {
		seen := make(map[string]struct{}, len(c.docs))
		for _, raw := range c.docs {
			key, ok := rawIndexKey(raw, idx)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				return &core.DuplicateKeyError{Collection: c.name, Index: idx.Name, Key: key}
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

func (c *collection) insert(v interface{}) error {
	c.Lock()
	defer c.Unlock()

	raw, err := c.prepare(v, -1)
	if err != nil {
		return err
	}
	c.docs = append(c.docs, raw)
	c.created = true
	return nil
}

// indexKey renders the indexed values of doc like the store's duplicate key report.
func indexKey(doc bson.M, idx schema.Index) (string, bool) {
	parts := make([]string, 0, len(idx.Keys))
	for _, k := range idx.Keys {
		v, ok := doc[k]
		if !ok {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%s: %#v", k, v))
	}
	return "{ " + strings.Join(parts, ", ") + " }", true
}

func rawIndexKey(raw bson.Raw, idx schema.Index) (string, bool) {
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", false
	}
	return indexKey(doc, idx)
}

// findDocs decodes every document of c into T and keeps the ones match accepts, in insertion order.
func findDocs[T any](c *collection, match func(T) bool) ([]T, error) {
	c.RLock()
	defer c.RUnlock()

	out := make([]T, 0)
	for _, raw := range c.docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrapf(err, "decoding %s document", c.name)
		}
		if match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// findOne returns the first document match accepts.
func findOne[T any](c *collection, ref core.Ref, match func(T) bool) (T, error) {
	docs, err := findDocs(c, match)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(docs) == 0 {
		var zero T
		return zero, core.NewNotFoundError(ref)
	}
	return docs[0], nil
}

// updateOne applies mutate to the first document match accepts and returns the number of modified documents.
// A mutation that leaves the document unchanged modifies nothing.
func updateOne[T any](c *collection, match func(T) bool, mutate func(*T)) (int64, error) {
	c.Lock()
	defer c.Unlock()

	for i, raw := range c.docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return 0, errors.Wrapf(err, "decoding %s document", c.name)
		}
		if !match(v) {
			continue
		}

		mutate(&v)
		updated, err := c.prepare(v, i)
		if err != nil {
			return 0, err
		}
		if bytes.Equal(raw, updated) {
			return 0, nil
		}
		c.docs[i] = updated
		return 1, nil
	}
	return 0, nil
}

// deleteOne removes the first document match accepts and returns the number of deleted documents.
func deleteOne[T any](c *collection, match func(T) bool) (int64, error) {
	c.Lock()
	defer c.Unlock()

	for i, raw := range c.docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return 0, errors.Wrapf(err, "decoding %s document", c.name)
		}
		if match(v) {
			c.docs = append(c.docs[:i:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
