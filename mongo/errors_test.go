// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotImplementedError(t *testing.T) {
	t.Parallel()

	err := NotImplementedError{Type: "Cursor", Op: "Hint"}
	assert.Equal(t, "Cursor.Hint is not yet implemented", err.Error())
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.False(t, errors.Is(err, ErrDeprecated))

	wrapped := errors.Wrap(err, "calling hint")
	assert.True(t, errors.Is(wrapped, ErrNotImplemented))

	dep := NotImplementedError{Type: "Cursor", Op: "MaxScan", Deprecated: true}
	assert.True(t, errors.Is(dep, ErrDeprecated))
	assert.False(t, errors.Is(dep, ErrNotImplemented))
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	dup := duplicateKeyError(1, int32(7))
	assert.Equal(t, 1, dup.Index)
	assert.Equal(t, "E11000 duplicate key error dup key: { _id: 7 }", dup.Error())
	assert.True(t, errors.Is(dup, ErrDuplicateKey))

	other := WriteError{Index: 0, Code: 2, Message: "bad value"}
	assert.False(t, errors.Is(other, ErrDuplicateKey))

	wes := WriteErrors{other, dup}
	assert.Equal(t, "write errors: [{bad value}, {E11000 duplicate key error dup key: { _id: 7 }}]", wes.Error())
	assert.True(t, errors.Is(wes, ErrDuplicateKey))
	assert.False(t, errors.Is(WriteErrors{other}, ErrDuplicateKey))
}
