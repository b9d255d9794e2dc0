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

	"github.com/ikmak/mongita/mongo/options"
)

// Client owns a set of in-memory databases.
type Client struct {
	log logrus.FieldLogger

	mu        sync.Mutex
	databases map[string]*Database
}

// NewClient creates a new in-memory client.
func NewClient(opts ...*options.ClientOptions) *Client {
	clientOpts := options.MergeClientOptions(opts...)
	log := clientOpts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		log:       log,
		databases: make(map[string]*Database),
	}
}

// Database returns a handle for a given database, creating it when it does not exist yet.
func (c *Client) Database(name string) *Database {
	c.mu.Lock()
	defer c.mu.Unlock()

	db, ok := c.databases[name]
	if !ok {
		db = newDatabase(c, name)
		c.databases[name] = db
	}
	return db
}

// ListDatabaseNames returns the names of the client's databases, sorted.
func (c *Client) ListDatabaseNames(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.databases))
	for name := range c.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DropDatabase removes a database and all of its collections.
func (c *Client) DropDatabase(ctx context.Context, name string) error {
	c.mu.Lock()
	db, ok := c.databases[name]
	delete(c.databases, name)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	names, _ := db.ListCollectionNames(ctx)
	for _, coll := range names {
		if err := db.DropCollection(ctx, coll); err != nil {
			return err
		}
	}
	c.log.WithField("database", name).Info("dropped database")
	return nil
}
