// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// matcher evaluates a filter document. Only field equality and the comparison operators are
// supported.
type matcher struct {
	clauses []clause
}

type clause struct {
	path string
	op   string
	arg  bson.RawValue
}

func newMatcher(filter interface{}) (*matcher, error) {
	raw, err := transformDocument(filter)
	if err != nil {
		return nil, err
	}
	elems, err := raw.Elements()
	if err != nil {
		return nil, err
	}

	m := &matcher{}
	for _, elem := range elems {
		key, val := elem.Key(), elem.Value()
		if strings.HasPrefix(key, "$") {
			return nil, errors.Wrapf(ErrUnsupportedFilter, "top-level operator %s", key)
		}
		if !isOperatorDocument(val) {
			m.clauses = append(m.clauses, clause{path: key, op: "$eq", arg: val})
			continue
		}

		ops, _ := val.Document().Elements()
		for _, op := range ops {
			c := clause{path: key, op: op.Key(), arg: op.Value()}
			switch c.op {
			case "$eq", "$ne", "$gt", "$gte", "$lt", "$lte", "$exists":
			case "$in", "$nin":
				if c.arg.Type != bson.TypeArray {
					return nil, errors.Wrapf(ErrUnsupportedFilter, "%s needs an array", c.op)
				}
			default:
				return nil, errors.Wrapf(ErrUnsupportedFilter, "operator %s", c.op)
			}
			m.clauses = append(m.clauses, c)
		}
	}
	return m, nil
}

func isOperatorDocument(v bson.RawValue) bool {
	if v.Type != bson.TypeEmbeddedDocument {
		return false
	}
	elems, err := v.Document().Elements()
	if err != nil || len(elems) == 0 {
		return false
	}
	return strings.HasPrefix(elems[0].Key(), "$")
}

func (m *matcher) matches(doc bson.Raw) bool {
	for _, c := range m.clauses {
		if !c.matches(doc) {
			return false
		}
	}
	return true
}

func (c clause) matches(doc bson.Raw) bool {
	val, found := lookupPath(doc, c.path)

	switch c.op {
	case "$eq":
		return valueEquals(val, c.arg)
	case "$ne":
		return !valueEquals(val, c.arg)
	case "$in":
		return valueIn(val, c.arg)
	case "$nin":
		return !valueIn(val, c.arg)
	case "$exists":
		return found == truthy(c.arg)
	}

	if !found || typeOrder(val.Type) != typeOrder(c.arg.Type) {
		return false
	}
	cmp := compareValues(val, c.arg)
	switch c.op {
	case "$gt":
		return cmp > 0
	case "$gte":
		return cmp >= 0
	case "$lt":
		return cmp < 0
	case "$lte":
		return cmp <= 0
	}
	return false
}

// valueEquals reports whether val equals arg, or, when val is an array and arg is not, whether any
// element of val equals arg.
func valueEquals(val, arg bson.RawValue) bool {
	if compareValues(val, arg) == 0 {
		return true
	}
	if val.Type != bson.TypeArray || arg.Type == bson.TypeArray {
		return false
	}
	elems, _ := val.Array().Values()
	for _, elem := range elems {
		if compareValues(elem, arg) == 0 {
			return true
		}
	}
	return false
}

func valueIn(val, list bson.RawValue) bool {
	candidates, _ := list.Array().Values()
	for _, candidate := range candidates {
		if valueEquals(val, candidate) {
			return true
		}
	}
	return false
}

func truthy(v bson.RawValue) bool {
	switch v.Type {
	case bson.TypeBoolean:
		return v.Boolean()
	case bson.TypeNull, bson.TypeUndefined, 0:
		return false
	}
	if isNumber(v.Type) {
		return floatOf(v) != 0
	}
	return true
}

// equalityFields returns the fields a filter pins to a single value, used to seed upserted
// documents.
func (m *matcher) equalityFields() bson.D {
	var d bson.D
	for _, c := range m.clauses {
		if c.op != "$eq" || strings.Contains(c.path, ".") {
			continue
		}
		var v interface{}
		if err := c.arg.Unmarshal(&v); err != nil {
			continue
		}
		d = append(d, bson.E{Key: c.path, Value: v})
	}
	return d
}
