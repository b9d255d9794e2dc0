// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongita/mongo/options"
)

// Query holds the parameters a Cursor passes to its QueryExecutor. A nil Limit is unbounded and a
// Limit of 0 selects nothing. A nil Skip means 0.
type Query struct {
	Filter interface{}
	Sort   SortSpec
	Limit  *int64
	Skip   *int64
}

// QueryExecutor is implemented by the collection that backs a Cursor.
type QueryExecutor interface {
	// ExecuteQuery runs q and returns the resulting documents. It is called at most once per Cursor.
	ExecuteQuery(ctx context.Context, q Query) (Sequence, error)

	// CountDocuments returns the number of documents matching filter.
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type cursorState uint8

const (
	cursorUnstarted cursorState = iota
	cursorStarted
	cursorClosed
)

// Cursor is a lazy, single-pass handle over the results of a query. Its filter, sort, limit and skip
// can be changed until the first document is requested; the query runs once, on the first call to
// Next.
//
// A typical usage of the Cursor type would be:
//
//		cur, err := coll.Find(ctx, bson.D{{"status", "active"}})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer cur.Close(ctx)
//
//		if _, err := cur.Sort("age", mongo.Descending); err != nil {
//			log.Fatal(err)
//		}
//		for cur.Next(ctx) {
//			var elem bson.M
//			if err := cur.Decode(&elem); err != nil {
//				log.Fatal(err)
//			}
//
//			// do something with elem....
//		}
//
//		if err := cur.Err(); err != nil {
//			log.Fatal(err)
//		}
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	// Current contains the document the cursor is positioned on.
	Current bson.Raw

	exec   QueryExecutor
	filter interface{}
	sort   SortSpec
	limit  *int64
	skip   *int64

	state cursorState
	seq   Sequence
	err   error
}

// NewCursor creates a Cursor that runs its query through exec. A limit or skip of 0 is treated as
// unset.
func NewCursor(exec QueryExecutor, filter interface{}, sort SortSpec, limit, skip *int64) (*Cursor, error) {
	if exec == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "query executor must not be nil")
	}
	if limit != nil && *limit < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "the 'limit' parameter must be >= 0, got %d", *limit)
	}
	if skip != nil && *skip < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "the 'skip' parameter must be >= 0, got %d", *skip)
	}
	spec, err := ValidateSort(sort)
	if err != nil {
		return nil, err
	}

	c := &Cursor{exec: exec, filter: filter, sort: spec}
	if limit != nil && *limit != 0 {
		c.limit = int64Ptr(*limit)
	}
	if skip != nil && *skip != 0 {
		c.skip = int64Ptr(*skip)
	}
	return c, nil
}

// Collection returns the executor this cursor was created from.
func (c *Cursor) Collection() QueryExecutor { return c.exec }

// Query returns the parameters the cursor will run, or has run, its query with.
func (c *Cursor) Query() Query {
	return Query{
		Filter: c.filter,
		Sort:   c.sort.clone(),
		Limit:  copyInt64Ptr(c.limit),
		Skip:   copyInt64Ptr(c.skip),
	}
}

func (c *Cursor) started() bool { return c.state != cursorUnstarted }

// Sort replaces the cursor's sort order. See ValidateSort for the accepted arguments. Only the last
// sort applied before iteration takes effect. It returns the same cursor.
func (c *Cursor) Sort(keyOrList interface{}, direction ...SortDirection) (*Cursor, error) {
	spec, err := ValidateSort(keyOrList, direction...)
	if err != nil {
		return nil, err
	}
	if c.started() {
		return nil, errors.Wrap(ErrInvalidOperation, "cursor has already started and can't be sorted")
	}

	c.sort = spec
	return c, nil
}

// Limit caps the number of documents the cursor returns. Only the last limit applied before
// iteration takes effect. It returns the same cursor.
//
// A limit of 0 removes the cap, as it does for the driver's FindOptions. This differs from a cursor
// returned by Slice for an empty window, which keeps an explicit limit of 0 and returns nothing.
func (c *Cursor) Limit(limit int64) (*Cursor, error) {
	if limit < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "the 'limit' parameter must be >= 0, got %d", limit)
	}
	if c.started() {
		return nil, errors.Wrap(ErrInvalidOperation, "cursor has already started and can't be limited")
	}

	c.limit = nil
	if limit != 0 {
		c.limit = &limit
	}
	return c, nil
}

// Skip sets the number of leading results the cursor skips. Only the last skip applied before
// iteration takes effect. It returns the same cursor.
func (c *Cursor) Skip(skip int64) (*Cursor, error) {
	if skip < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "the 'skip' parameter must be >= 0, got %d", skip)
	}
	if c.started() {
		return nil, errors.Wrap(ErrInvalidOperation, "cursor has already started and skip can't be applied")
	}

	c.skip = nil
	if skip != 0 {
		c.skip = &skip
	}
	return c, nil
}

// Index returns the document at offset index of the cursor's window. It runs a separate query on a
// clone and leaves this cursor unstarted.
func (c *Cursor) Index(ctx context.Context, index int64) (bson.Raw, error) {
	if c.started() {
		return nil, errors.Wrap(ErrInvalidOperation, "cannot index a cursor that has already been used")
	}
	if index < 0 {
		return nil, errors.Wrapf(ErrNegativeIndex, "index %d", index)
	}
	if c.limit != nil && index >= *c.limit {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, limit %d", index, *c.limit)
	}

	clone := c.Clone()
	skip := index
	if c.skip != nil {
		skip = addSkip(*c.skip, index)
	}
	clone.skip = &skip
	clone.limit = int64Ptr(1)
	defer clone.Close(ctx)

	if !clone.Next(ctx) {
		if err := clone.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Wrapf(ErrIndexOutOfRange, "no document at index %d", index)
	}
	return clone.Current, nil
}

// Slice returns a new cursor over the window r of this cursor's results. The new window is composed
// with this cursor's skip and limit; filter and sort are kept. An empty window is not an error.
func (c *Cursor) Slice(r Range) (*Cursor, error) {
	if c.started() {
		return nil, errors.Wrap(ErrInvalidOperation, "cannot slice a cursor that has already been used")
	}

	skip, limit, err := applyRange(c.skip, c.limit, r)
	if err != nil {
		return nil, err
	}

	nc := c.Clone()
	nc.skip = skip
	nc.limit = limit
	return nc, nil
}

// Clone returns an unstarted cursor with the same filter, sort, limit and skip.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{
		exec:   c.exec,
		filter: c.filter,
		sort:   c.sort.clone(),
		limit:  copyInt64Ptr(c.limit),
		skip:   copyInt64Ptr(c.skip),
	}
}

// Count returns the number of documents matching the cursor's filter. When withLimitAndSkip is
// true the count honours the cursor's window, which requires draining a clone of the cursor.
func (c *Cursor) Count(ctx context.Context, withLimitAndSkip bool) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.started() {
		return 0, errors.Wrap(ErrInvalidOperation, "cannot count a cursor that has already been used")
	}
	if !withLimitAndSkip {
		return c.exec.CountDocuments(ctx, c.filter)
	}

	clone := c.Clone()
	defer clone.Close(ctx)

	var n int64
	for clone.Next(ctx) {
		n++
	}
	return n, clone.Err()
}

// Next gets the next result from this cursor. Returns true if there were no errors and the next
// result is available for decoding. The first call runs the query.
func (c *Cursor) Next(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	seq := c.sequence(ctx)
	if seq.Next(ctx) {
		c.Current = seq.Current()
		return true
	}

	c.Current = nil
	if err := seq.Err(); err != nil && c.err == nil {
		c.err = err
	}
	_ = c.release(ctx)
	return false
}

func (c *Cursor) sequence(ctx context.Context) Sequence {
	if c.seq != nil {
		return c.seq
	}

	c.state = cursorStarted
	seq, err := c.exec.ExecuteQuery(ctx, c.Query())
	if err != nil {
		c.err = errors.Wrap(err, "executing query")
		seq = exhaustedSequence{}
	}
	c.seq = seq
	return seq
}

// release closes the held sequence and replaces it with an exhausted one.
func (c *Cursor) release(ctx context.Context) error {
	if _, ok := c.seq.(exhaustedSequence); ok {
		return nil
	}

	var err error
	if c.seq != nil {
		err = c.seq.Close(ctx)
	}
	c.seq = exhaustedSequence{}
	return err
}

// Decode will decode the current document into val.
func (c *Cursor) Decode(val interface{}) error {
	if c.Current == nil {
		return errors.New("cursor is not positioned on a document")
	}
	return bson.Unmarshal(c.Current, val)
}

// Err returns the current error.
func (c *Cursor) Err() error { return c.err }

// All decodes every remaining document into results, which must be a pointer to a slice, and
// closes the cursor.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	resultsVal := reflect.ValueOf(results)
	if resultsVal.Kind() != reflect.Ptr {
		return errors.Errorf("results argument must be a pointer to a slice, but was a %s", resultsVal.Kind())
	}
	sliceVal := resultsVal.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return errors.Errorf("results argument must be a pointer to a slice, but was a pointer to %s", sliceVal.Kind())
	}

	defer c.Close(ctx)

	out := reflect.MakeSlice(sliceVal.Type(), 0, 0)
	elementType := sliceVal.Type().Elem()
	for c.Next(ctx) {
		elem := reflect.New(elementType)
		if err := c.Decode(elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	if err := c.Err(); err != nil {
		return err
	}

	sliceVal.Set(out)
	return nil
}

// Close releases the cursor's documents. Any later call to Next returns false, and the cursor can
// no longer be configured. Close can be called more than once and on a cursor that never started;
// the cursor is closed even when releasing the underlying sequence reports an error.
func (c *Cursor) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.release(ctx)
	c.state = cursorClosed
	return err
}
