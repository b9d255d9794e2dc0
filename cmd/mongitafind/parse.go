// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ikmak/mongita/mongo"
)

// parseSort parses a comma separated list of field:direction pairs. A direction is 1, -1, asc or
// desc; a field without one sorts ascending.
func parseSort(s string) (mongo.SortSpec, error) {
	var spec mongo.SortSpec
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) > 2 {
			return nil, errors.Wrapf(mongo.ErrInvalidSortFormat, "sort key %q", pair)
		}

		key := strings.TrimSpace(parts[0])
		dir := mongo.Ascending
		if len(parts) == 2 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "1", "asc":
			case "-1", "desc":
				dir = mongo.Descending
			default:
				return nil, errors.Wrapf(mongo.ErrInvalidSortFormat, "sort direction %q", parts[1])
			}
		}
		spec = append(spec, mongo.SortKey{Field: key, Direction: dir})
	}
	return mongo.ValidateSort(spec)
}

// parseRange parses start:stop with either bound optional, and an optional :step.
func parseRange(s string) (mongo.Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return mongo.Range{}, errors.Wrapf(mongo.ErrInvalidArgument, "slice %q is not start:stop", s)
	}

	bounds := make([]*int64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return mongo.Range{}, errors.Wrapf(mongo.ErrInvalidArgument, "slice %q: %v", s, err)
		}
		bounds[i] = &n
	}

	r := mongo.Range{Start: bounds[0], Stop: bounds[1]}
	if len(bounds) == 3 {
		r.Step = bounds[2]
	}
	return r, nil
}
