// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// updateSpec is a parsed update document made of $set, $unset and $inc operators.
type updateSpec struct {
	ops bson.D
}

func newUpdateSpec(update interface{}) (*updateSpec, error) {
	raw, err := transformDocument(update)
	if err != nil {
		return nil, err
	}
	if err := ensureDollarKey(raw); err != nil {
		return nil, err
	}

	var ops bson.D
	if err := bson.Unmarshal(raw, &ops); err != nil {
		return nil, err
	}
	for _, op := range ops {
		switch op.Key {
		case "$set", "$unset", "$inc":
		default:
			return nil, errors.Wrapf(ErrUnsupportedUpdate, "operator %s", op.Key)
		}
		fields, ok := op.Value.(bson.D)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedUpdate, "%s needs a document, got %T", op.Key, op.Value)
		}
		for _, f := range fields {
			if f.Key == "_id" || strings.HasPrefix(f.Key, "_id.") {
				return nil, ErrImmutableField
			}
		}
	}
	return &updateSpec{ops: ops}, nil
}

func ensureDollarKey(doc bson.Raw) error {
	elems, err := doc.Elements()
	if err != nil {
		return err
	}
	if len(elems) == 0 || !strings.HasPrefix(elems[0].Key(), "$") {
		return ErrNonDollarKey
	}
	return nil
}

func ensureNoDollarKey(doc bson.Raw) error {
	elems, err := doc.Elements()
	if err != nil {
		return err
	}
	for _, elem := range elems {
		if strings.HasPrefix(elem.Key(), "$") {
			return ErrDollarKey
		}
	}
	return nil
}

// apply returns doc with the update applied and whether the document changed.
func (u *updateSpec) apply(doc bson.Raw) (bson.Raw, bool, error) {
	var d bson.D
	if err := bson.Unmarshal(doc, &d); err != nil {
		return nil, false, err
	}

	var err error
	for _, op := range u.ops {
		for _, f := range op.Value.(bson.D) {
			path := strings.Split(f.Key, ".")
			switch op.Key {
			case "$set":
				d, err = setPath(d, path, f.Value)
			case "$unset":
				d = unsetPath(d, path)
			case "$inc":
				current, _ := getPath(d, path)
				var sum interface{}
				sum, err = addNumbers(current, f.Value)
				if err == nil {
					d, err = setPath(d, path, sum)
				}
			}
			if err != nil {
				return nil, false, errors.Wrapf(err, "applying %s to %q", op.Key, f.Key)
			}
		}
	}

	out, err := bson.Marshal(d)
	if err != nil {
		return nil, false, err
	}
	return out, !bsonEqual(doc, out), nil
}

func bsonEqual(a, b bson.Raw) bool { return string(a) == string(b) }

func getPath(d bson.D, path []string) (interface{}, bool) {
	for _, e := range d {
		if e.Key != path[0] {
			continue
		}
		if len(path) == 1 {
			return e.Value, true
		}
		sub, ok := e.Value.(bson.D)
		if !ok {
			return nil, false
		}
		return getPath(sub, path[1:])
	}
	return nil, false
}

func setPath(d bson.D, path []string, v interface{}) (bson.D, error) {
	for i := range d {
		if d[i].Key != path[0] {
			continue
		}
		if len(path) == 1 {
			d[i].Value = v
			return d, nil
		}
		sub, ok := d[i].Value.(bson.D)
		if !ok {
			return nil, errors.Errorf("cannot create field %q in element {%s: %v}", path[1], path[0], d[i].Value)
		}
		sub, err := setPath(sub, path[1:], v)
		if err != nil {
			return nil, err
		}
		d[i].Value = sub
		return d, nil
	}

	if len(path) == 1 {
		return append(d, bson.E{Key: path[0], Value: v}), nil
	}
	sub, err := setPath(bson.D{}, path[1:], v)
	if err != nil {
		return nil, err
	}
	return append(d, bson.E{Key: path[0], Value: sub}), nil
}

func unsetPath(d bson.D, path []string) bson.D {
	for i := range d {
		if d[i].Key != path[0] {
			continue
		}
		if len(path) == 1 {
			return append(d[:i:i], d[i+1:]...)
		}
		if sub, ok := d[i].Value.(bson.D); ok {
			d[i].Value = unsetPath(sub, path[1:])
		}
		return d
	}
	return d
}

// addNumbers adds inc to current, keeping the narrowest numeric type that holds the result. A
// missing current value counts as zero of inc's type.
func addNumbers(current, inc interface{}) (interface{}, error) {
	if !isNumeric(inc) {
		return nil, errors.Errorf("cannot increment with non-numeric argument %v", inc)
	}
	if current == nil {
		return inc, nil
	}
	if !isNumeric(current) {
		return nil, errors.Errorf("cannot apply $inc to a value of non-numeric type %T", current)
	}

	if isFloat(current) || isFloat(inc) {
		return toFloat(current) + toFloat(inc), nil
	}
	sum := toInt(current) + toInt(inc)
	_, curIs32 := current.(int32)
	_, incIs32 := inc.(int32)
	if curIs32 && incIs32 && sum >= math.MinInt32 && sum <= math.MaxInt32 {
		return int32(sum), nil
	}
	return sum, nil
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64, float64:
		return true
	}
	return false
}

func isFloat(v interface{}) bool {
	_, ok := v.(float64)
	return ok
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	default:
		return float64(toInt(v))
	}
}

func toInt(v interface{}) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	}
	return 0
}
