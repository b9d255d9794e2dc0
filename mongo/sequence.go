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

// Sequence is the stream of documents produced by a QueryExecutor. The Cursor type is built on top
// of this type.
type Sequence interface {
	// Next advances to the next document and reports whether one is available.
	Next(context.Context) bool

	// Current returns the document the last call to Next advanced to.
	Current() bson.Raw

	// Err returns the last error encountered.
	Err() error

	// Close releases the sequence.
	Close(context.Context) error
}

type sliceSequence struct {
	docs    []bson.Raw
	current bson.Raw
	err     error
}

var _ Sequence = (*sliceSequence)(nil)

// NewSequence returns a Sequence over docs.
func NewSequence(docs []bson.Raw) Sequence {
	return &sliceSequence{docs: docs}
}

func (s *sliceSequence) Next(ctx context.Context) bool {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}
	if len(s.docs) == 0 {
		s.current = nil
		return false
	}
	s.current = s.docs[0]
	s.docs = s.docs[1:]
	return true
}

func (s *sliceSequence) Current() bson.Raw { return s.current }

func (s *sliceSequence) Err() error { return s.err }

func (s *sliceSequence) Close(context.Context) error {
	s.docs = nil
	s.current = nil
	return nil
}

// exhaustedSequence never yields a document.
type exhaustedSequence struct{}

var _ Sequence = exhaustedSequence{}

func (exhaustedSequence) Next(context.Context) bool   { return false }
func (exhaustedSequence) Current() bson.Raw           { return nil }
func (exhaustedSequence) Err() error                  { return nil }
func (exhaustedSequence) Close(context.Context) error { return nil }
