// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// SingleResult represents a single document returned from an operation. If the operation returned an
// error, the Err method of SingleResult will return that error.
type SingleResult struct {
	err error
	rdr bson.Raw
}

func newSingleResult(ctx context.Context, cur *Cursor) *SingleResult {
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return &SingleResult{err: err}
		}
		return &SingleResult{err: ErrNoDocuments}
	}
	return &SingleResult{rdr: cur.Current}
}

// Decode will attempt to decode the first document into v. If there was an error from the operation
// that created this SingleResult then the error will be returned. If there were no returned documents,
// ErrNoDocuments is returned.
func (sr *SingleResult) Decode(v interface{}) error {
	if sr.err != nil {
		return sr.err
	}
	return bson.Unmarshal(sr.rdr, v)
}

// DecodeBytes will return a copy of the document as a bson.Raw. If there was an error from the
// operation that created this SingleResult, it will be returned.
func (sr *SingleResult) DecodeBytes() (bson.Raw, error) {
	if sr.err != nil {
		return nil, sr.err
	}
	return copyDocument(sr.rdr), nil
}

// Err will return the error from the operation that created this SingleResult.
func (sr *SingleResult) Err() error {
	return sr.err
}
