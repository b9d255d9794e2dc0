// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrString(p *int64) string {
	if p == nil {
		return "nil"
	}
	return fmt.Sprint(*p)
}

func TestApplyRange(t *testing.T) {
	testCases := []struct {
		name      string
		skip      *int64
		limit     *int64
		r         Range
		wantSkip  *int64
		wantLimit *int64
	}{
		{"open range", nil, nil, From(0), int64Ptr(0), nil},
		{"start only", nil, nil, From(3), int64Ptr(3), nil},
		{"stop only", nil, nil, Until(4), int64Ptr(0), int64Ptr(4)},
		{"start and stop", int64Ptr(5), int64Ptr(10), Between(2, 4), int64Ptr(7), int64Ptr(2)},
		{"stop clipped by limit", nil, int64Ptr(3), Between(1, 10), int64Ptr(1), int64Ptr(2)},
		{"start past limit", nil, int64Ptr(3), From(5), int64Ptr(5), int64Ptr(0)},
		{"start at limit", nil, int64Ptr(3), Between(3, 6), int64Ptr(3), int64Ptr(0)},
		{"empty range", int64Ptr(1), nil, Between(4, 4), int64Ptr(5), int64Ptr(0)},
		{"reversed range", nil, nil, Between(6, 2), int64Ptr(6), int64Ptr(0)},
		{"empty window stays empty", nil, int64Ptr(0), Between(0, 5), int64Ptr(0), int64Ptr(0)},
		{"remaining limit", int64Ptr(2), int64Ptr(8), From(3), int64Ptr(5), int64Ptr(5)},
		{"skip saturates", int64Ptr(math.MaxInt64 - 1), nil, From(5), int64Ptr(math.MaxInt64), nil},
		{"skip saturates with limit", int64Ptr(math.MaxInt64), int64Ptr(10), Between(2, 4), int64Ptr(math.MaxInt64), int64Ptr(2)},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			skip, limit, err := applyRange(tc.skip, tc.limit, tc.r)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.wantSkip, skip); diff != "" {
				t.Errorf("skip mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantLimit, limit); diff != "" {
				t.Errorf("limit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyRangeErrors(t *testing.T) {
	t.Parallel()

	_, _, err := applyRange(nil, nil, Between(0, 3).WithStep(2))
	assert.True(t, errors.Is(err, ErrSliceStep), "got %v", err)
	_, _, err = applyRange(nil, nil, Between(0, 3).WithStep(-1))
	assert.True(t, errors.Is(err, ErrSliceStep), "got %v", err)
	_, _, err = applyRange(nil, nil, From(-2))
	assert.True(t, errors.Is(err, ErrNegativeIndex), "got %v", err)
	_, _, err = applyRange(nil, nil, Between(1, -2))
	assert.True(t, errors.Is(err, ErrNegativeIndex), "got %v", err)
	_, _, err = applyRange(nil, nil, From(-1).WithStep(3))
	assert.True(t, errors.Is(err, ErrSliceStep), "step is checked first, got %v", err)
}

// window returns the offsets selected by skip and limit out of n results.
func window(n int64, skip, limit *int64) []int64 {
	var out []int64
	start := int64(0)
	if skip != nil {
		start = *skip
	}
	for i := start; i < n; i++ {
		if limit != nil && int64(len(out)) >= *limit {
			break
		}
		out = append(out, i)
	}
	return out
}

// sliceOf slices s the way a half-open [start:stop) range does, clamping to its bounds.
func sliceOf(s []int64, start int64, stop *int64) []int64 {
	end := int64(len(s))
	if stop != nil && *stop < end {
		end = *stop
	}
	if start >= end {
		return nil
	}
	return s[start:end]
}

// Slicing a window must select exactly the elements that slicing its materialized results would.
func TestApplyRangeMatchesMaterializedSlice(t *testing.T) {
	t.Parallel()

	const n = 12
	limits := []*int64{nil}
	for l := int64(0); l <= 7; l++ {
		limits = append(limits, int64Ptr(l))
	}
	stops := []*int64{nil}
	for s := int64(0); s <= 9; s++ {
		stops = append(stops, int64Ptr(s))
	}

	for skip := int64(0); skip <= 4; skip++ {
		for _, limit := range limits {
			base := window(n, int64Ptr(skip), limit)
			for start := int64(0); start <= 8; start++ {
				for _, stop := range stops {
					r := Range{Start: int64Ptr(start), Stop: stop}
					newSkip, newLimit, err := applyRange(int64Ptr(skip), limit, r)
					require.NoError(t, err)

					want := sliceOf(base, start, stop)
					got := window(n, newSkip, newLimit)
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("skip=%d limit=%s [%d:%s] mismatch (-want +got):\n%s",
							skip, ptrString(limit), start, ptrString(stop), diff)
					}
				}
			}
		}
	}
}

func TestAddSkip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(7), addSkip(5, 2))
	assert.Equal(t, int64(math.MaxInt64), addSkip(math.MaxInt64, 1))
	assert.Equal(t, int64(math.MaxInt64), addSkip(math.MaxInt64-1, 5))
	assert.Equal(t, int64(math.MaxInt64), addSkip(3, math.MaxInt64))
}
