// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"math"

	"github.com/pkg/errors"
)

// Range selects a window of a cursor's results by offset. A nil Start means 0, a nil Stop means the
// end of the results and a nil Step means 1.
type Range struct {
	Start *int64
	Stop  *int64
	Step  *int64
}

// Between returns the Range [start, stop).
func Between(start, stop int64) Range {
	return Range{Start: &start, Stop: &stop}
}

// From returns the Range starting at start with no upper bound.
func From(start int64) Range {
	return Range{Start: &start}
}

// Until returns the Range [0, stop).
func Until(stop int64) Range {
	return Range{Stop: &stop}
}

// WithStep returns a copy of r with the given step. Only a step of 1 is accepted by Cursor.Slice.
func (r Range) WithStep(step int64) Range {
	r.Step = &step
	return r
}

// applyRange composes r on top of an existing skip/limit window and returns the new window.
// A nil limit is unbounded; a limit of 0 is an empty window.
func applyRange(skip, limit *int64, r Range) (*int64, *int64, error) {
	if r.Step != nil && *r.Step != 1 {
		return nil, nil, errors.Wrapf(ErrSliceStep, "got step %d", *r.Step)
	}

	var start int64
	if r.Start != nil {
		start = *r.Start
	}
	if start < 0 {
		return nil, nil, errors.Wrapf(ErrNegativeIndex, "slice start %d", start)
	}
	if r.Stop != nil && *r.Stop < 0 {
		return nil, nil, errors.Wrapf(ErrNegativeIndex, "slice stop %d", *r.Stop)
	}

	newSkip := start
	if skip != nil {
		newSkip = addSkip(*skip, start)
	}

	if r.Stop == nil {
		switch {
		case limit == nil:
			return &newSkip, nil, nil
		case start >= *limit:
			return &newSkip, int64Ptr(0), nil
		default:
			return &newSkip, int64Ptr(*limit - start), nil
		}
	}

	stop := *r.Stop
	if stop <= start {
		return &newSkip, int64Ptr(0), nil
	}

	sliceLen := stop - start
	switch {
	case limit == nil:
		return &newSkip, &sliceLen, nil
	case start >= *limit:
		return &newSkip, int64Ptr(0), nil
	default:
		remaining := *limit - start
		if sliceLen < remaining {
			return &newSkip, &sliceLen, nil
		}
		return &newSkip, &remaining, nil
	}
}

// addSkip adds two non-negative offsets, saturating at math.MaxInt64. A skip that large selects
// nothing, so the result stays correct.
func addSkip(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func int64Ptr(i int64) *int64 { return &i }

func copyInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	return int64Ptr(*p)
}
