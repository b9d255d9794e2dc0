// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawValue(t *testing.T, v interface{}) bson.RawValue {
	t.Helper()

	doc, err := bson.Marshal(bson.D{{Key: "v", Value: v}})
	require.NoError(t, err)
	return bson.Raw(doc).Lookup("v")
}

func TestCompareValues(t *testing.T) {
	testCases := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"null before numbers", nil, int32(0), -1},
		{"numbers before strings", 1e9, "a", -1},
		{"strings before documents", "z", bson.D{}, -1},
		{"documents before arrays", bson.D{{Key: "a", Value: 1}}, bson.A{}, -1},
		{"object ids before booleans", primitive.NewObjectID(), false, -1},
		{"booleans before dates", true, primitive.DateTime(0), -1},
		{"int32 equals double", int32(3), 3.0, 0},
		{"int64 above double", int64(4), 3.5, 1},
		{"strings", "apple", "banana", -1},
		{"false before true", false, true, -1},
		{"shorter array first", bson.A{1}, bson.A{1, 2}, -1},
		{"documents by field", bson.D{{Key: "a", Value: 2}}, bson.D{{Key: "a", Value: 1}}, 1},
		{"nan before numbers", math.NaN(), int32(-5), -1},
		{"min key first", primitive.MinKey{}, nil, -1},
		{"max key last", primitive.MaxKey{}, primitive.Timestamp{T: 1}, 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, b := rawValue(t, tc.a), rawValue(t, tc.b)
			assert.Equal(t, tc.want, compareValues(a, b))
			assert.Equal(t, -tc.want, compareValues(b, a))
		})
	}
}

func TestAddNumbers(t *testing.T) {
	testCases := []struct {
		name         string
		current, inc interface{}
		want         interface{}
	}{
		{"missing", nil, int32(2), int32(2)},
		{"int32", int32(2), int32(3), int32(5)},
		{"int32 overflow", int32(math.MaxInt32), int32(1), int64(math.MaxInt32) + 1},
		{"int64", int64(2), int32(3), int64(5)},
		{"double", int32(2), 0.5, 2.5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := addNumbers(tc.current, tc.inc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := addNumbers("x", int32(1))
	assert.Error(t, err)
	_, err = addNumbers(int32(1), "x")
	assert.Error(t, err)
}
