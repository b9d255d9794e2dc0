// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSliceSequence(t *testing.T) {
	t.Parallel()

	var docs []bson.Raw
	for i := int32(0); i < 2; i++ {
		b, err := bson.Marshal(bson.D{{Key: "n", Value: i}})
		require.NoError(t, err)
		docs = append(docs, b)
	}

	ctx := context.Background()
	seq := NewSequence(docs)
	require.True(t, seq.Next(ctx))
	assert.Equal(t, int32(0), seq.Current().Lookup("n").Int32())
	require.True(t, seq.Next(ctx))
	assert.Equal(t, int32(1), seq.Current().Lookup("n").Int32())
	assert.False(t, seq.Next(ctx))
	assert.Nil(t, seq.Current())
	assert.NoError(t, seq.Err())
	assert.NoError(t, seq.Close(ctx))
}

func TestSliceSequenceCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := NewSequence([]bson.Raw{bson.Raw{5, 0, 0, 0, 0}})
	assert.False(t, seq.Next(ctx))
	assert.ErrorIs(t, seq.Err(), context.Canceled)
}
