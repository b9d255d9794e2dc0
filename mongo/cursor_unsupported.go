// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"time"

	"github.com/pkg/errors"
)

type unsupportedKind uint8

const (
	notImplemented unsupportedKind = iota + 1
	deprecated
)

// unsupportedCursorOps lists the driver Cursor operations this package exposes but does not support.
var unsupportedCursorOps = map[string]unsupportedKind{
	"AddOption":    notImplemented,
	"Address":      notImplemented,
	"Alive":        notImplemented,
	"AllowDiskUse": notImplemented,
	"BatchSize":    notImplemented,
	"Collation":    notImplemented,
	"Comment":      notImplemented,
	"CursorID":     notImplemented,
	"Distinct":     notImplemented,
	"Explain":      notImplemented,
	"Hint":         notImplemented,
	"Max":          notImplemented,
	"MaxAwaitTime": notImplemented,
	"MaxTime":      notImplemented,
	"Min":          notImplemented,
	"RemoveOption": notImplemented,
	"Retrieved":    notImplemented,
	"Rewind":       notImplemented,
	"Session":      notImplemented,
	"Where":        notImplemented,
	"MaxScan":      deprecated,
}

// CheckCursorOperation returns a NotImplementedError if op names an unsupported Cursor operation
// and nil otherwise.
func CheckCursorOperation(op string) error {
	kind, ok := unsupportedCursorOps[op]
	if !ok {
		return nil
	}
	return NotImplementedError{Type: "Cursor", Op: op, Deprecated: kind == deprecated}
}

func unsupportedCursorOp(op string) error {
	err := CheckCursorOperation(op)
	if err == nil {
		return errors.Errorf("Cursor.%s is not registered as an unsupported operation", op)
	}
	return err
}

// AddOption is not implemented.
func (c *Cursor) AddOption(mask int) error { return unsupportedCursorOp("AddOption") }

// Address is not implemented.
func (c *Cursor) Address() (string, error) { return "", unsupportedCursorOp("Address") }

// Alive is not implemented.
func (c *Cursor) Alive() (bool, error) { return false, unsupportedCursorOp("Alive") }

// AllowDiskUse is not implemented.
func (c *Cursor) AllowDiskUse(allow bool) error { return unsupportedCursorOp("AllowDiskUse") }

// BatchSize is not implemented.
func (c *Cursor) BatchSize(size int32) error { return unsupportedCursorOp("BatchSize") }

// Collation is not implemented.
func (c *Cursor) Collation(collation interface{}) error { return unsupportedCursorOp("Collation") }

// Comment is not implemented.
func (c *Cursor) Comment(comment string) error { return unsupportedCursorOp("Comment") }

// CursorID is not implemented.
func (c *Cursor) CursorID() (int64, error) { return 0, unsupportedCursorOp("CursorID") }

// Distinct is not implemented.
func (c *Cursor) Distinct(fieldName string) ([]interface{}, error) {
	return nil, unsupportedCursorOp("Distinct")
}

// Explain is not implemented.
func (c *Cursor) Explain() (interface{}, error) { return nil, unsupportedCursorOp("Explain") }

// Hint is not implemented.
func (c *Cursor) Hint(index interface{}) error { return unsupportedCursorOp("Hint") }

// Max is not implemented.
func (c *Cursor) Max(spec interface{}) error { return unsupportedCursorOp("Max") }

// MaxAwaitTime is not implemented.
func (c *Cursor) MaxAwaitTime(d time.Duration) error { return unsupportedCursorOp("MaxAwaitTime") }

// MaxTime is not implemented.
func (c *Cursor) MaxTime(d time.Duration) error { return unsupportedCursorOp("MaxTime") }

// Min is not implemented.
func (c *Cursor) Min(spec interface{}) error { return unsupportedCursorOp("Min") }

// RemoveOption is not implemented.
func (c *Cursor) RemoveOption(mask int) error { return unsupportedCursorOp("RemoveOption") }

// Retrieved is not implemented.
func (c *Cursor) Retrieved() (int, error) { return 0, unsupportedCursorOp("Retrieved") }

// Rewind is not implemented.
func (c *Cursor) Rewind() error { return unsupportedCursorOp("Rewind") }

// Session is not implemented.
func (c *Cursor) Session() (interface{}, error) { return nil, unsupportedCursorOp("Session") }

// Where is not implemented.
func (c *Cursor) Where(code string) error { return unsupportedCursorOp("Where") }

// MaxScan is deprecated.
func (c *Cursor) MaxScan(n int64) error { return unsupportedCursorOp("MaxScan") }
