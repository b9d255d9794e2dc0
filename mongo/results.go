// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// InsertOneResult is a result of an InsertOne operation.
type InsertOneResult struct {
	insertedID interface{}
}

// NewInsertOneResult returns the result of inserting the document with the given _id.
func NewInsertOneResult(insertedID interface{}) *InsertOneResult {
	return &InsertOneResult{insertedID: insertedID}
}

// Acknowledged is always true for the in-memory store.
func (r *InsertOneResult) Acknowledged() bool { return true }

// InsertedID returns the identifier that was inserted.
func (r *InsertOneResult) InsertedID() interface{} { return r.insertedID }

// InsertManyResult is a result of an InsertMany operation.
type InsertManyResult struct {
	insertedIDs []interface{}
}

// NewInsertManyResult returns the result of inserting docs. The inserted ids are read from each
// document's _id field, in insertion order; a document without one contributes a nil id.
func NewInsertManyResult(docs []bson.Raw) *InsertManyResult {
	ids := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, documentID(doc))
	}
	return &InsertManyResult{insertedIDs: ids}
}

// Acknowledged is always true for the in-memory store.
func (r *InsertManyResult) Acknowledged() bool { return true }

// InsertedIDs returns the identifiers of the inserted documents in insertion order.
func (r *InsertManyResult) InsertedIDs() []interface{} {
	out := make([]interface{}, len(r.insertedIDs))
	copy(out, r.insertedIDs)
	return out
}

// DeleteResult is a result of a DeleteOne or DeleteMany operation.
type DeleteResult struct {
	deletedCount int64
}

// NewDeleteResult returns the result of deleting n documents.
func NewDeleteResult(n int64) *DeleteResult {
	return &DeleteResult{deletedCount: n}
}

// Acknowledged is always true for the in-memory store.
func (r *DeleteResult) Acknowledged() bool { return true }

// DeletedCount returns the number of documents that were deleted.
func (r *DeleteResult) DeletedCount() int64 { return r.deletedCount }

// RawResult returns the server-style summary {n, ok}.
func (r *DeleteResult) RawResult() bson.M {
	return bson.M{"n": r.deletedCount, "ok": 1.0}
}

// UpdateResult is a result of an update or replace operation.
type UpdateResult struct {
	matchedCount  int64
	modifiedCount int64
	upsertedID    interface{}
	raw           bson.M
}

// NewUpdateResult returns the result of an update that matched and modified the given number of
// documents. upsertedID is nil unless the update inserted a document.
func NewUpdateResult(matchedCount, modifiedCount int64, upsertedID interface{}) *UpdateResult {
	raw := bson.M{
		"n":               matchedCount,
		"nModified":       modifiedCount,
		"ok":              1.0,
		"updatedExisting": matchedCount > 0 && modifiedCount > 0,
	}
	if isNil(upsertedID) {
		upsertedID = nil
	} else {
		raw["upserted"] = upsertedID
	}
	return &UpdateResult{
		matchedCount:  matchedCount,
		modifiedCount: modifiedCount,
		upsertedID:    upsertedID,
		raw:           raw,
	}
}

// Acknowledged is always true for the in-memory store.
func (r *UpdateResult) Acknowledged() bool { return true }

// MatchedCount returns the number of documents that matched the filter.
func (r *UpdateResult) MatchedCount() int64 { return r.matchedCount }

// ModifiedCount returns the number of documents that were modified.
func (r *UpdateResult) ModifiedCount() int64 { return r.modifiedCount }

// UpsertedID returns the identifier of the inserted document if an upsert took place.
func (r *UpdateResult) UpsertedID() interface{} { return r.upsertedID }

// RawResult returns the server-style summary {n, nModified, ok, updatedExisting}. The upserted key
// is present only when an upsert took place.
func (r *UpdateResult) RawResult() bson.M {
	out := make(bson.M, len(r.raw))
	for k, v := range r.raw {
		out[k] = v
	}
	return out
}

// isNil reports whether v is nil or a nil pointer, map, slice or interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
