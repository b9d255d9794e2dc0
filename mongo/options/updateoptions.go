// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

// UpdateOptions represents all possible options to the UpdateOne() and UpdateMany() functions.
type UpdateOptions struct {
	// If true, a new document will be inserted if the filter does not match any documents in the collection. The
	// default value is false.
	Upsert *bool
}

// Update returns a pointer to a new UpdateOptions
func Update() *UpdateOptions {
	return &UpdateOptions{}
}

// SetUpsert allows the creation of a new document if not document matches the query
func (u *UpdateOptions) SetUpsert(b bool) *UpdateOptions {
	u.Upsert = &b
	return u
}

// MergeUpdateOptions combines the argued UpdateOptions into a single UpdateOptions in a last-one-wins fashion
func MergeUpdateOptions(opts ...*UpdateOptions) *UpdateOptions {
	uOpts := Update()
	for _, uo := range opts {
		if uo == nil {
			continue
		}
		if uo.Upsert != nil {
			uOpts.Upsert = uo.Upsert
		}
	}

	return uOpts
}

// ReplaceOptions represents all possible options to the ReplaceOne() function.
type ReplaceOptions struct {
	// If true, a new document will be inserted if the filter does not match any documents in the collection. The
	// default value is false.
	Upsert *bool
}

// Replace returns a pointer to a new ReplaceOptions
func Replace() *ReplaceOptions {
	return &ReplaceOptions{}
}

// SetUpsert allows the creation of a new document if not document matches the query
func (r *ReplaceOptions) SetUpsert(b bool) *ReplaceOptions {
	r.Upsert = &b
	return r
}

// MergeReplaceOptions combines the argued ReplaceOptions into a single ReplaceOptions in a last-one-wins fashion
func MergeReplaceOptions(opts ...*ReplaceOptions) *ReplaceOptions {
	rOpts := Replace()
	for _, ro := range opts {
		if ro == nil {
			continue
		}
		if ro.Upsert != nil {
			rOpts.Upsert = ro.Upsert
		}
	}

	return rOpts
}
