// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// SortDirection is the order in which a sort key is applied.
type SortDirection int

// These constants are the only valid sort directions.
const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

func (d SortDirection) valid() bool { return d == Ascending || d == Descending }

// SortKey is a single field of a sort specification.
type SortKey struct {
	Field     string
	Direction SortDirection
}

// SortSpec is an ordered list of sort keys. An empty SortSpec leaves the order unspecified.
type SortSpec []SortKey

// BSON returns the sort specification as an ordered document.
func (s SortSpec) BSON() bson.D {
	d := make(bson.D, 0, len(s))
	for _, k := range s {
		d = append(d, bson.E{Key: k.Field, Value: int32(k.Direction)})
	}
	return d
}

func (s SortSpec) clone() SortSpec {
	if s == nil {
		return SortSpec{}
	}
	out := make(SortSpec, len(s))
	copy(out, s)
	return out
}

// ValidateSort normalizes the arguments of Cursor.Sort into a SortSpec.
//
// keyOrList is either a field name, optionally followed by one direction (Ascending when omitted),
// or an ordered list of pairs given as a SortSpec, a []SortKey or a bson.D of integral directions.
// A list must not be followed by a direction. Any other shape, an empty field name, or a direction
// other than Ascending or Descending yields an error matching ErrInvalidSortFormat.
func ValidateSort(keyOrList interface{}, direction ...SortDirection) (SortSpec, error) {
	if len(direction) > 1 {
		return nil, errors.Wrapf(ErrInvalidSortFormat, "expected at most one direction, got %d", len(direction))
	}

	var spec SortSpec
	switch t := keyOrList.(type) {
	case string:
		dir := Ascending
		if len(direction) == 1 {
			dir = direction[0]
		}
		spec = SortSpec{{Field: t, Direction: dir}}
	case SortSpec:
		if len(direction) != 0 {
			return nil, errors.Wrap(ErrInvalidSortFormat, "a direction cannot follow a list of sort keys")
		}
		spec = t.clone()
	case []SortKey:
		if len(direction) != 0 {
			return nil, errors.Wrap(ErrInvalidSortFormat, "a direction cannot follow a list of sort keys")
		}
		spec = SortSpec(t).clone()
	case bson.D:
		if len(direction) != 0 {
			return nil, errors.Wrap(ErrInvalidSortFormat, "a direction cannot follow a list of sort keys")
		}
		spec = make(SortSpec, 0, len(t))
		for _, e := range t {
			dir, ok := directionFromValue(e.Value)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidSortFormat,
					"sort direction for %q must be ASCENDING (1) or DESCENDING (-1), not %v", e.Key, e.Value)
			}
			spec = append(spec, SortKey{Field: e.Key, Direction: dir})
		}
	default:
		return nil, errors.Wrapf(ErrInvalidSortFormat, "cannot sort by a value of type %T", keyOrList)
	}

	for _, k := range spec {
		if k.Field == "" {
			return nil, errors.Wrap(ErrInvalidSortFormat, "sort keys must be non-empty field names")
		}
		if !k.Direction.valid() {
			return nil, errors.Wrapf(ErrInvalidSortFormat,
				"sort direction(s) must be either ASCENDING (1) or DESCENDING (-1), not %d", k.Direction)
		}
	}
	return spec, nil
}

func directionFromValue(v interface{}) (SortDirection, bool) {
	switch t := v.(type) {
	case SortDirection:
		return t, true
	case int:
		return SortDirection(t), true
	case int32:
		return SortDirection(t), true
	case int64:
		return SortDirection(t), true
	default:
		return 0, false
	}
}
