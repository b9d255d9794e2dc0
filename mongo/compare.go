// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// typeOrder returns the position of t in the canonical BSON comparison order. A zero type is a
// missing value and sorts with null.
func typeOrder(t bsontype.Type) int {
	switch t {
	case bson.TypeMinKey:
		return 1
	case 0, bson.TypeNull, bson.TypeUndefined:
		return 2
	case bson.TypeInt32, bson.TypeInt64, bson.TypeDouble, bson.TypeDecimal128:
		return 3
	case bson.TypeString, bson.TypeSymbol:
		return 4
	case bson.TypeEmbeddedDocument:
		return 5
	case bson.TypeArray:
		return 6
	case bson.TypeBinary:
		return 7
	case bson.TypeObjectID:
		return 8
	case bson.TypeBoolean:
		return 9
	case bson.TypeDateTime:
		return 10
	case bson.TypeTimestamp:
		return 11
	case bson.TypeRegex:
		return 12
	case bson.TypeMaxKey:
		return 14
	default:
		return 13
	}
}

func isNumber(t bsontype.Type) bool { return typeOrder(t) == 3 }

// compareValues orders two BSON values the way the server sorts them. Values of different types
// are ordered by type; numbers compare numerically across numeric types.
func compareValues(a, b bson.RawValue) int {
	oa, ob := typeOrder(a.Type), typeOrder(b.Type)
	if oa != ob {
		return compareInts(int64(oa), int64(ob))
	}

	switch oa {
	case 2:
		return 0
	case 3:
		return compareNumbers(a, b)
	case 4:
		return strings.Compare(stringOf(a), stringOf(b))
	case 5:
		return compareDocuments(a.Document(), b.Document())
	case 6:
		return compareArrays(a.Array(), b.Array())
	case 7:
		sa, da := a.Binary()
		sb, db := b.Binary()
		if c := compareInts(int64(len(da)), int64(len(db))); c != 0 {
			return c
		}
		if c := compareInts(int64(sa), int64(sb)); c != 0 {
			return c
		}
		return bytes.Compare(da, db)
	case 8:
		ia, ib := a.ObjectID(), b.ObjectID()
		return bytes.Compare(ia[:], ib[:])
	case 9:
		ba, bb := a.Boolean(), b.Boolean()
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case 10:
		return compareInts(a.DateTime(), b.DateTime())
	case 11:
		ta, ia := a.Timestamp()
		tb, ib := b.Timestamp()
		if c := compareInts(int64(ta), int64(tb)); c != 0 {
			return c
		}
		return compareInts(int64(ia), int64(ib))
	case 12:
		pa, fa := a.Regex()
		pb, fb := b.Regex()
		if c := strings.Compare(pa, pb); c != 0 {
			return c
		}
		return strings.Compare(fa, fb)
	default:
		return bytes.Compare(a.Value, b.Value)
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringOf(v bson.RawValue) string {
	if v.Type == bson.TypeSymbol {
		return v.Symbol()
	}
	return v.StringValue()
}

func compareNumbers(a, b bson.RawValue) int {
	ia, aIsInt := a.AsInt64OK()
	ib, bIsInt := b.AsInt64OK()
	if aIsInt && bIsInt && a.Type != bson.TypeDouble && b.Type != bson.TypeDouble {
		return compareInts(ia, ib)
	}

	fa, fb := floatOf(a), floatOf(b)
	switch {
	case math.IsNaN(fa) && math.IsNaN(fb):
		return 0
	case math.IsNaN(fa):
		return -1
	case math.IsNaN(fb):
		return 1
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

func floatOf(v bson.RawValue) float64 {
	switch v.Type {
	case bson.TypeInt32:
		return float64(v.Int32())
	case bson.TypeInt64:
		return float64(v.Int64())
	case bson.TypeDouble:
		return v.Double()
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(v.Decimal128().String(), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func compareDocuments(a, b bson.Raw) int {
	ea, _ := a.Elements()
	eb, _ := b.Elements()
	for i := 0; i < len(ea) && i < len(eb); i++ {
		if c := compareValues(ea[i].Value(), eb[i].Value()); c != 0 {
			return c
		}
		if c := strings.Compare(ea[i].Key(), eb[i].Key()); c != 0 {
			return c
		}
	}
	return compareInts(int64(len(ea)), int64(len(eb)))
}

func compareArrays(a, b bson.Raw) int {
	va, _ := a.Values()
	vb, _ := b.Values()
	for i := 0; i < len(va) && i < len(vb); i++ {
		if c := compareValues(va[i], vb[i]); c != 0 {
			return c
		}
	}
	return compareInts(int64(len(va)), int64(len(vb)))
}
