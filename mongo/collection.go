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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongita/mongo/options"
)

// Collection is an in-memory collection of documents. Documents are kept in insertion order. It is
// safe for concurrent use; cursors read a snapshot taken when their query runs.
type Collection struct {
	db   *Database
	name string
	log  *logrus.Entry

	mu   sync.RWMutex
	docs []bson.Raw
	ids  map[string]struct{}
}

var _ QueryExecutor = (*Collection)(nil)

func newCollection(db *Database, name string) *Collection {
	return &Collection{
		db:   db,
		name: name,
		log:  db.log.WithField("collection", name),
		ids:  make(map[string]struct{}),
	}
}

// Name provides access to the name of the collection.
func (coll *Collection) Name() string { return coll.name }

// Database provides access to the database that contains the collection.
func (coll *Collection) Database() *Database { return coll.db }

// ExecuteQuery filters, sorts and windows the collection's documents.
func (coll *Collection) ExecuteQuery(ctx context.Context, q Query) (Sequence, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Limit != nil && *q.Limit < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative limit %d", *q.Limit)
	}
	if q.Skip != nil && *q.Skip < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative skip %d", *q.Skip)
	}

	matched, err := coll.matching(q.Filter)
	if err != nil {
		return nil, err
	}
	sortDocuments(matched, q.Sort)
	window := applyWindow(matched, q.Skip, q.Limit)

	coll.log.WithFields(logrus.Fields{
		"filter":   q.Filter,
		"matched":  len(matched),
		"returned": len(window),
		"skip":     valueOrNil(q.Skip),
		"limit":    valueOrNil(q.Limit),
	}).Debug("executed query")

	docs := make([]bson.Raw, len(window))
	for i, doc := range window {
		docs[i] = copyDocument(doc)
	}
	return NewSequence(docs), nil
}

func (coll *Collection) matching(filter interface{}) ([]bson.Raw, error) {
	m, err := newMatcher(filter)
	if err != nil {
		return nil, err
	}

	coll.mu.RLock()
	defer coll.mu.RUnlock()

	var out []bson.Raw
	for _, doc := range coll.docs {
		if m.matches(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func sortDocuments(docs []bson.Raw, spec SortSpec) {
	if len(spec) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range spec {
			a, _ := lookupPath(docs[i], key.Field)
			b, _ := lookupPath(docs[j], key.Field)
			if c := compareValues(a, b) * int(key.Direction); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func applyWindow(docs []bson.Raw, skip, limit *int64) []bson.Raw {
	if skip != nil {
		if *skip >= int64(len(docs)) {
			return nil
		}
		docs = docs[*skip:]
	}
	if limit != nil && *limit < int64(len(docs)) {
		docs = docs[:*limit]
	}
	return docs
}

func valueOrNil(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// Find finds the documents matching a model. The returned cursor does not run the query until its
// first document is requested.
func (coll *Collection) Find(ctx context.Context, filter interface{},
	opts ...*options.FindOptions) (*Cursor, error) {

	if _, err := newMatcher(filter); err != nil {
		return nil, err
	}

	fo := options.MergeFindOptions(opts...)
	var spec SortSpec
	if fo.Sort != nil {
		var err error
		spec, err = ValidateSort(fo.Sort)
		if err != nil {
			return nil, err
		}
	}
	return NewCursor(coll, filter, spec, fo.Limit, fo.Skip)
}

// FindOne returns up to one document that matches the model.
func (coll *Collection) FindOne(ctx context.Context, filter interface{},
	opts ...*options.FindOneOptions) *SingleResult {

	fo := options.MergeFindOneOptions(opts...)
	findOpts := options.Find().SetLimit(1)
	if fo.Skip != nil {
		findOpts.SetSkip(*fo.Skip)
	}
	if fo.Sort != nil {
		findOpts.SetSort(fo.Sort)
	}

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return &SingleResult{err: err}
	}
	return newSingleResult(ctx, cursor)
}

// CountDocuments gets the number of documents matching the filter, honouring the skip and limit
// count options.
func (coll *Collection) CountDocuments(ctx context.Context, filter interface{},
	opts ...*options.CountOptions) (int64, error) {

	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	countOpts := options.MergeCountOptions(opts...)
	matched, err := coll.matching(filter)
	if err != nil {
		return 0, err
	}

	n := int64(len(matched))
	if countOpts.Skip != nil {
		n -= *countOpts.Skip
		if n < 0 {
			n = 0
		}
	}
	if countOpts.Limit != nil && *countOpts.Limit > 0 && *countOpts.Limit < n {
		n = *countOpts.Limit
	}
	return n, nil
}

// EstimatedDocumentCount gets the number of documents in the collection.
func (coll *Collection) EstimatedDocumentCount(ctx context.Context) (int64, error) {
	coll.mu.RLock()
	defer coll.mu.RUnlock()
	return int64(len(coll.docs)), nil
}

// InsertOne inserts a single document into the collection. A document without an _id is given a
// generated ObjectID.
func (coll *Collection) InsertOne(ctx context.Context, document interface{}) (*InsertOneResult, error) {
	if document == nil {
		return nil, ErrNilDocument
	}
	doc, err := prepareInsert(document)
	if err != nil {
		return nil, err
	}

	coll.mu.Lock()
	defer coll.mu.Unlock()

	if err := coll.insertLocked(doc); err != nil {
		return nil, err
	}
	coll.log.Debug("inserted 1 document")
	return NewInsertOneResult(documentID(doc)), nil
}

// InsertMany inserts the provided documents. Either every document is inserted or, if any _id
// is a duplicate, none is.
func (coll *Collection) InsertMany(ctx context.Context, documents []interface{}) (*InsertManyResult, error) {
	if len(documents) == 0 {
		return nil, ErrEmptySlice
	}

	docs := make([]bson.Raw, 0, len(documents))
	for _, document := range documents {
		if document == nil {
			return nil, ErrNilDocument
		}
		doc, err := prepareInsert(document)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	coll.mu.Lock()
	defer coll.mu.Unlock()

	var wes WriteErrors
	seen := make(map[string]struct{}, len(docs))
	for i, doc := range docs {
		key, _ := idKey(doc)
		_, exists := coll.ids[key]
		_, repeated := seen[key]
		if exists || repeated {
			wes = append(wes, duplicateKeyError(i, documentID(doc)))
		}
		seen[key] = struct{}{}
	}
	if len(wes) > 0 {
		return nil, wes
	}

	for _, doc := range docs {
		if err := coll.insertLocked(doc); err != nil {
			return nil, err
		}
	}
	coll.log.WithField("count", len(docs)).Debug("inserted documents")
	return NewInsertManyResult(docs), nil
}

func prepareInsert(document interface{}) (bson.Raw, error) {
	doc, err := transformDocument(document)
	if err != nil {
		return nil, err
	}
	doc, _, err = ensureID(doc)
	if err != nil {
		return nil, err
	}
	return copyDocument(doc), nil
}

func (coll *Collection) insertLocked(doc bson.Raw) error {
	key, _ := idKey(doc)
	if _, ok := coll.ids[key]; ok {
		return duplicateKeyError(0, documentID(doc))
	}
	coll.ids[key] = struct{}{}
	coll.docs = append(coll.docs, doc)
	return nil
}

// DeleteOne deletes a single document from the collection.
func (coll *Collection) DeleteOne(ctx context.Context, filter interface{}) (*DeleteResult, error) {
	return coll.delete(ctx, filter, true)
}

// DeleteMany deletes multiple documents from the collection.
func (coll *Collection) DeleteMany(ctx context.Context, filter interface{}) (*DeleteResult, error) {
	return coll.delete(ctx, filter, false)
}

func (coll *Collection) delete(ctx context.Context, filter interface{}, deleteOne bool) (*DeleteResult, error) {
	m, err := newMatcher(filter)
	if err != nil {
		return nil, err
	}

	coll.mu.Lock()
	defer coll.mu.Unlock()

	var n int64
	kept := coll.docs[:0:0]
	for _, doc := range coll.docs {
		if (!deleteOne || n == 0) && m.matches(doc) {
			key, _ := idKey(doc)
			delete(coll.ids, key)
			n++
			continue
		}
		kept = append(kept, doc)
	}
	coll.docs = kept

	coll.log.WithField("count", n).Debug("deleted documents")
	return NewDeleteResult(n), nil
}

// UpdateOne updates a single document in the collection.
func (coll *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{},
	opts ...*options.UpdateOptions) (*UpdateResult, error) {

	return coll.update(ctx, filter, update, true, options.MergeUpdateOptions(opts...).Upsert)
}

// UpdateMany updates multiple documents in the collection.
func (coll *Collection) UpdateMany(ctx context.Context, filter interface{}, update interface{},
	opts ...*options.UpdateOptions) (*UpdateResult, error) {

	return coll.update(ctx, filter, update, false, options.MergeUpdateOptions(opts...).Upsert)
}

func (coll *Collection) update(ctx context.Context, filter interface{}, update interface{},
	updateOne bool, upsert *bool) (*UpdateResult, error) {

	m, err := newMatcher(filter)
	if err != nil {
		return nil, err
	}
	spec, err := newUpdateSpec(update)
	if err != nil {
		return nil, err
	}

	coll.mu.Lock()
	defer coll.mu.Unlock()

	var matched, modified int64
	for i, doc := range coll.docs {
		if updateOne && matched == 1 {
			break
		}
		if !m.matches(doc) {
			continue
		}
		matched++

		updated, changed, err := spec.apply(doc)
		if err != nil {
			return nil, err
		}
		if changed {
			coll.docs[i] = updated
			modified++
		}
	}

	if matched == 0 && upsert != nil && *upsert {
		seed, err := bson.Marshal(m.equalityFields())
		if err != nil {
			return nil, err
		}
		doc, _, err := spec.apply(seed)
		if err != nil {
			return nil, err
		}
		return coll.upsertLocked(doc)
	}

	coll.log.WithFields(logrus.Fields{"matched": matched, "modified": modified}).Debug("updated documents")
	return NewUpdateResult(matched, modified, nil), nil
}

func (coll *Collection) upsertLocked(doc bson.Raw) (*UpdateResult, error) {
	doc, id, err := ensureID(doc)
	if err != nil {
		return nil, err
	}
	if err := coll.insertLocked(copyDocument(doc)); err != nil {
		return nil, err
	}
	coll.log.WithField("upserted", id).Debug("upserted document")
	return NewUpdateResult(0, 0, id), nil
}

// ReplaceOne replaces a single document in the collection. The replacement keeps the _id of the
// document it replaces.
func (coll *Collection) ReplaceOne(ctx context.Context, filter interface{},
	replacement interface{}, opts ...*options.ReplaceOptions) (*UpdateResult, error) {

	m, err := newMatcher(filter)
	if err != nil {
		return nil, err
	}
	if replacement == nil {
		return nil, ErrNilDocument
	}
	r, err := transformDocument(replacement)
	if err != nil {
		return nil, err
	}
	if err := ensureNoDollarKey(r); err != nil {
		return nil, err
	}

	var repl bson.D
	if err := bson.Unmarshal(r, &repl); err != nil {
		return nil, err
	}
	repl = unsetPath(repl, []string{"_id"})

	coll.mu.Lock()
	defer coll.mu.Unlock()

	for i, doc := range coll.docs {
		if !m.matches(doc) {
			continue
		}
		withID := append(bson.D{{Key: "_id", Value: documentID(doc)}}, repl...)
		updated, err := bson.Marshal(withID)
		if err != nil {
			return nil, err
		}
		var modified int64
		if !bsonEqual(doc, updated) {
			coll.docs[i] = updated
			modified = 1
		}
		coll.log.WithField("modified", modified).Debug("replaced document")
		return NewUpdateResult(1, modified, nil), nil
	}

	if upsert := options.MergeReplaceOptions(opts...).Upsert; upsert != nil && *upsert {
		seed := m.equalityFields()
		var id []bson.E
		for _, e := range seed {
			if e.Key == "_id" {
				id = append(id, e)
			}
		}
		doc, err := bson.Marshal(append(bson.D(id), repl...))
		if err != nil {
			return nil, err
		}
		return coll.upsertLocked(doc)
	}
	return NewUpdateResult(0, 0, nil), nil
}

// Drop removes the collection from its database.
func (coll *Collection) Drop(ctx context.Context) error {
	return coll.db.DropCollection(ctx, coll.name)
}

func (coll *Collection) clear() {
	coll.mu.Lock()
	defer coll.mu.Unlock()
	coll.docs = nil
	coll.ids = make(map[string]struct{})
}
