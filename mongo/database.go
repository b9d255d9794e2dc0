// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Database is a named group of in-memory collections.
type Database struct {
	client *Client
	name   string
	log    *logrus.Entry

	mu          sync.Mutex
	collections map[string]*Collection
}

func newDatabase(client *Client, name string) *Database {
	return &Database{
		client:      client,
		name:        name,
		log:         client.log.WithField("database", name),
		collections: make(map[string]*Collection),
	}
}

// Client returns the Client the Database was created from.
func (db *Database) Client() *Client { return db.client }

// Name returns the name of this database.
func (db *Database) Name() string { return db.name }

// Collection gets a handle for a given collection in the database, creating it when it does not
// exist yet.
func (db *Database) Collection(name string) *Collection {
	db.mu.Lock()
	defer db.mu.Unlock()

	coll, ok := db.collections[name]
	if !ok {
		coll = newCollection(db, name)
		db.collections[name] = coll
	}
	return coll
}

// ListCollectionNames returns the names of the collections in the database, sorted.
func (db *Database) ListCollectionNames(ctx context.Context) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	names := make([]string, 0, len(db.collections))
	for name := range db.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DropCollection removes a collection and its documents. Dropping a collection that does not exist
// is not an error.
func (db *Database) DropCollection(ctx context.Context, name string) error {
	db.mu.Lock()
	coll, ok := db.collections[name]
	delete(db.collections, name)
	db.mu.Unlock()

	if ok {
		coll.clear()
		db.log.WithField("collection", name).Info("dropped collection")
	}
	return nil
}

// Drop removes the database and all of its collections.
func (db *Database) Drop(ctx context.Context) error {
	return db.client.DropDatabase(ctx, db.name)
}
