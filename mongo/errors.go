// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidOperation is returned when a cursor is configured, sliced, indexed or counted after it
// has started producing documents.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrInvalidSortFormat is returned when a sort specification has an unsupported shape or direction.
var ErrInvalidSortFormat = errors.New("unsupported sort parameter format")

// ErrInvalidArgument is returned when a limit, skip or constructor argument is out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNegativeIndex is returned when a cursor is indexed or sliced with a negative bound.
var ErrNegativeIndex = errors.New("negative indices are not supported")

// ErrSliceStep is returned when a cursor is sliced with a step other than 1.
var ErrSliceStep = errors.New("cursor slicing does not support step")

// ErrIndexOutOfRange is returned when an indexed document lies outside the cursor's window.
var ErrIndexOutOfRange = errors.New("cursor index out of range")

// ErrNotImplemented is matched by NotImplementedError values for operations that are not supported.
var ErrNotImplemented = errors.New("not implemented")

// ErrDeprecated is matched by NotImplementedError values for operations that are deprecated.
var ErrDeprecated = errors.New("deprecated")

// ErrNoDocuments is returned by SingleResult methods when the filter matched nothing.
var ErrNoDocuments = errors.New("mongo: no documents in result")

// ErrNilDocument is returned when a nil document is passed to a write operation.
var ErrNilDocument = errors.New("document is nil")

// ErrEmptySlice is returned when an empty slice is passed to InsertMany.
var ErrEmptySlice = errors.New("must provide at least one element in input slice")

// ErrNonDollarKey is returned when an update document has a key that is not an update operator.
var ErrNonDollarKey = errors.New("update document must contain key beginning with '$'")

// ErrDollarKey is returned when a replacement document contains an update operator.
var ErrDollarKey = errors.New("replacement document cannot contain keys beginning with '$'")

// ErrDuplicateKey is matched by WriteError values caused by a duplicate _id.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrUnsupportedFilter is returned when a filter uses an operator the in-memory store cannot evaluate.
var ErrUnsupportedFilter = errors.New("unsupported filter")

// ErrUnsupportedUpdate is returned when an update uses an operator the in-memory store cannot apply.
var ErrUnsupportedUpdate = errors.New("unsupported update")

// ErrImmutableField is returned when an update would change a document's _id.
var ErrImmutableField = errors.New("performing an update on the path '_id' would modify the immutable field '_id'")

// NotImplementedError is returned by the operations a Cursor exposes for driver compatibility but
// does not implement.
type NotImplementedError struct {
	Type       string
	Op         string
	Deprecated bool
}

func (e NotImplementedError) Error() string {
	if e.Deprecated {
		return fmt.Sprintf("%s.%s is deprecated and will not be implemented", e.Type, e.Op)
	}
	return fmt.Sprintf("%s.%s is not yet implemented", e.Type, e.Op)
}

// Is reports whether target is the sentinel for this error's kind.
func (e NotImplementedError) Is(target error) bool {
	if e.Deprecated {
		return target == ErrDeprecated
	}
	return target == ErrNotImplemented
}

// WriteError is a failure that occurred while writing a single document.
type WriteError struct {
	Index   int
	Code    int
	Message string
}

func (we WriteError) Error() string { return we.Message }

// Is reports whether the write error was caused by a duplicate key.
func (we WriteError) Is(target error) bool {
	return target == ErrDuplicateKey && we.Code == duplicateKeyCode
}

// WriteErrors is a group of write errors that occurred as a result of a write operation.
type WriteErrors []WriteError

func (we WriteErrors) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "write errors: [")
	for idx, err := range we {
		if idx != 0 {
			fmt.Fprintf(&buf, ", ")
		}
		fmt.Fprintf(&buf, "{%s}", err)
	}
	fmt.Fprint(&buf, "]")
	return buf.String()
}

// Is reports whether any of the write errors matches target.
func (we WriteErrors) Is(target error) bool {
	for _, err := range we {
		if err.Is(target) {
			return true
		}
	}
	return false
}

const duplicateKeyCode = 11000

func duplicateKeyError(index int, id interface{}) WriteError {
	return WriteError{
		Index:   index,
		Code:    duplicateKeyCode,
		Message: fmt.Sprintf("E11000 duplicate key error dup key: { _id: %v }", id),
	}
}
