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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// transformDocument marshals a filter, update or document into raw BSON. A nil value is an empty
// document.
func transformDocument(document interface{}) (bson.Raw, error) {
	switch t := document.(type) {
	case nil:
		return emptyDocument(), nil
	case bson.Raw:
		return t, t.Validate()
	case []byte:
		return bson.Raw(t), bson.Raw(t).Validate()
	default:
		b, err := bson.Marshal(t)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot transform type %T to a BSON document", document)
		}
		return bson.Raw(b), nil
	}
}

func emptyDocument() bson.Raw {
	b, _ := bson.Marshal(bson.D{})
	return b
}

// ensureID returns doc with an _id, generating an ObjectID in the first position when it is
// missing, along with the _id value.
func ensureID(doc bson.Raw) (bson.Raw, interface{}, error) {
	if _, err := doc.LookupErr("_id"); err == nil {
		return doc, documentID(doc), nil
	}

	var d bson.D
	if err := bson.Unmarshal(doc, &d); err != nil {
		return nil, nil, err
	}
	oid := primitive.NewObjectID()
	d = append(bson.D{{Key: "_id", Value: oid}}, d...)
	b, err := bson.Marshal(d)
	if err != nil {
		return nil, nil, err
	}
	return b, oid, nil
}

// documentID returns the decoded _id of doc, or nil when it has none.
func documentID(doc bson.Raw) interface{} {
	rv, err := doc.LookupErr("_id")
	if err != nil {
		return nil
	}
	var id interface{}
	if err := rv.Unmarshal(&id); err != nil {
		return nil
	}
	return id
}

// idKey identifies an _id value by its type and bytes.
func idKey(doc bson.Raw) (string, bool) {
	rv, err := doc.LookupErr("_id")
	if err != nil {
		return "", false
	}
	return string(rune(rv.Type)) + string(rv.Value), true
}

// lookupPath returns the value at a dotted path, or a zero RawValue when the path is missing.
func lookupPath(doc bson.Raw, path string) (bson.RawValue, bool) {
	rv, err := doc.LookupErr(strings.Split(path, ".")...)
	if err != nil {
		return bson.RawValue{}, false
	}
	return rv, true
}

func copyDocument(doc bson.Raw) bson.Raw {
	return append(bson.Raw(nil), doc...)
}
