// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongita/mongo"
)

const people = `{"_id": 1, "name": "ada", "age": 36}
{"_id": 2, "name": "brian", "age": 29}

{"_id": 3, "name": "cleo", "age": 41}
{"_id": 4, "name": "dan", "age": 29}
`

func noEnv(string) string { return "" }

func runFind(t *testing.T, getenv func(string) string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(people), &stdout, &stderr, getenv)
	return stdout.String(), err
}

// ids decodes the _id of every pretty-printed document in out.
func ids(t *testing.T, out string) []int32 {
	t.Helper()

	var got []int32
	for _, chunk := range strings.SplitAfter(out, "}\n") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		var doc bson.M
		require.NoError(t, bson.UnmarshalExtJSON([]byte(chunk), false, &doc))
		got = append(got, doc["_id"].(int32))
	}
	return got
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []int32
	}{
		{"all", nil, []int32{1, 2, 3, 4}},
		{"filter", []string{"-filter", `{"age": 29}`}, []int32{2, 4}},
		{"sort", []string{"-sort", "age:-1,name:asc"}, []int32{3, 1, 2, 4}},
		{"skip and limit", []string{"-sort", "name", "-skip", "1", "-limit", "2"}, []int32{2, 3}},
		{"slice", []string{"-sort", "age:1", "-slice", "1:3"}, []int32{4, 1}},
		{"open slice", []string{"-slice", "2:"}, []int32{3, 4}},
		{"index", []string{"-sort", "age:desc", "-index", "1"}, []int32{1}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := runFind(t, noEnv, tc.args...)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, ids(t, out)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunCount(t *testing.T) {
	out, err := runFind(t, noEnv, "-count", "-limit", "1")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = runFind(t, noEnv, "-count", "-count-window", "-limit", "3", "-slice", "1:")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestRunEnvironmentDefaults(t *testing.T) {
	env := map[string]string{envSort: "age:-1", envLimit: "2", envLogLevel: "debug"}
	out, err := runFind(t, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 1}, ids(t, out))

	out, err = runFind(t, func(k string) string { return env[k] }, "-limit", "0")
	require.NoError(t, err)
	assert.Len(t, ids(t, out), 4, "flags override the environment")

	_, err = runFind(t, func(k string) string { return map[string]string{envSkip: "x"}[k] })
	assert.Error(t, err)
	_, err = runFind(t, func(k string) string { return map[string]string{envLogLevel: "loud"}[k] })
	assert.Error(t, err)
}

func TestRunInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(path, []byte(people), 0o600))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-count", path}, strings.NewReader(""), &stdout, &bytes.Buffer{}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout.String())

	err = run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.json")},
		strings.NewReader(""), &stdout, &bytes.Buffer{}, noEnv)
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	_, err := runFind(t, noEnv, "-slice", "0:4:2")
	assert.True(t, errors.Is(err, mongo.ErrSliceStep), "got %v", err)
	_, err = runFind(t, noEnv, "-index", "9")
	assert.True(t, errors.Is(err, mongo.ErrIndexOutOfRange), "got %v", err)
	_, err = runFind(t, noEnv, "-sort", "age:up")
	assert.True(t, errors.Is(err, mongo.ErrInvalidSortFormat), "got %v", err)
	_, err = runFind(t, noEnv, "-filter", "not json")
	assert.Error(t, err)
	_, err = runFind(t, noEnv, "-limit", "-1")
	assert.True(t, errors.Is(err, mongo.ErrInvalidArgument), "got %v", err)

	var stdout bytes.Buffer
	err = run(context.Background(), nil, strings.NewReader("{bad}\n"), &stdout, &bytes.Buffer{}, noEnv)
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	spec, err := parseSort("a, b:-1,c:DESC,d:1")
	require.NoError(t, err)
	assert.Equal(t, mongo.SortSpec{
		{Field: "a", Direction: mongo.Ascending},
		{Field: "b", Direction: mongo.Descending},
		{Field: "c", Direction: mongo.Descending},
		{Field: "d", Direction: mongo.Ascending},
	}, spec)

	for _, s := range []string{"a:1:2", ":1", "a,", "a:2"} {
		_, err := parseSort(s)
		assert.True(t, errors.Is(err, mongo.ErrInvalidSortFormat), "%q: got %v", s, err)
	}
}

func TestParseRange(t *testing.T) {
	five, two := int64(5), int64(2)
	testCases := []struct {
		in   string
		want mongo.Range
	}{
		{":", mongo.Range{}},
		{"2:", mongo.Range{Start: &two}},
		{":5", mongo.Range{Stop: &five}},
		{"2:5", mongo.Range{Start: &two, Stop: &five}},
		{"2:5:2", mongo.Range{Start: &two, Stop: &five, Step: &two}},
	}
	for _, tc := range testCases {
		got, err := parseRange(tc.in)
		require.NoError(t, err, tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tc.in, diff)
		}
	}

	for _, s := range []string{"", "3", "a:b", "1:2:3:4"} {
		_, err := parseRange(s)
		assert.True(t, errors.Is(err, mongo.ErrInvalidArgument), "%q: got %v", s, err)
	}
}
