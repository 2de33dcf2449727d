package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/eduhub/eduhub/core"
	"github.com/eduhub/eduhub/core/schema"
)

// DB is a process-local document store. Collections keep documents in
// insertion order and enforce their installed validator and unique indexes.
type DB struct {
	sync.RWMutex
	collections map[string]*collection
}

func Open() (*DB, error) {
	db := &DB{collections: make(map[string]*collection)}
	return db, nil
}

// collection returns the handle of the named collection. It only shows up in
// CollectionNames once installed or written to.
func (db *DB) collection(name string) *collection {
	db.Lock()
	defer db.Unlock()

	coll, ok := db.collections[name]
	if !ok {
		coll = &collection{name: name}
		db.collections[name] = coll
	}
	return coll
}

var _ core.Store = (*DB)(nil) // interface compliance check

// CollectionNames lists the existing collections, sorted.
func (db *DB) CollectionNames(context.Context) ([]string, error) {
	db.RLock()
	defer db.RUnlock()

	names := make([]string, 0, len(db.collections))
	for name, coll := range db.collections {
		coll.RLock()
		if coll.created {
			names = append(names, name)
		}
		coll.RUnlock()
	}
	sort.Strings(names)
	return names, nil
}

// Close drops every collection; nothing outlives the process.
func (db *DB) Close(context.Context) error {
	db.Drop()
	return nil
}

// Install creates the collection of s if missing, then replaces its validator and indexes.
// Existing documents are not revalidated.
func (db *DB) Install(_ context.Context, s schema.Schema) error {
	coll := db.collection(s.Collection)
	coll.Lock()
	defer coll.Unlock()

	if err := coll.checkUnique(s.UniqueIndexes()); err != nil {
		return err
	}
	installed := s
	coll.schema = &installed
	coll.created = true
	return nil
}

// Drop empties every collection and removes its validator and indexes.
// Collections are cleared in place so repositories opened earlier keep working.
func (db *DB) Drop() {
	db.RLock()
	defer db.RUnlock()
	for _, coll := range db.collections {
		coll.Lock()
		coll.docs = nil
		coll.schema = nil
		coll.created = false
		coll.Unlock()
	}
}
