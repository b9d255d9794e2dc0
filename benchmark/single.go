// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongita/mongo"
	"github.com/ikmak/mongita/mongo/options"
)

const (
	corpusSize = thousand
	windowSize = 50
	groupCount = 10

	// smallDocSize is the encoded size of smallDocument for ids below 100000.
	smallDocSize = 60
)

func getCollection() *mongo.Collection {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)

	client := mongo.NewClient(options.Client().SetLogger(logger))
	return client.Database("perftest").Collection("corpus")
}

func smallDocument(i int) bson.D {
	return bson.D{
		{Key: "_id", Value: int32(i)},
		{Key: "group", Value: int32(i % groupCount)},
		{Key: "score", Value: float64((i*7919)%corpusSize) / 10},
		{Key: "name", Value: fmt.Sprintf("doc-%05d", i)},
	}
}

// loadCorpus returns a collection holding n small documents.
func loadCorpus(ctx context.Context, n int) (*mongo.Collection, error) {
	coll := getCollection()
	if n == 0 {
		return coll, nil
	}
	docs := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, smallDocument(i))
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return nil, errors.Wrap(err, "loading corpus")
	}
	return coll, nil
}

func SingleFindOneByID(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, corpusSize)
	if err != nil {
		return err
	}

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		id := int32(i % corpusSize)
		raw, err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).DecodeBytes()
		if err != nil {
			return err
		}
		if raw.Lookup("_id").Int32() != id {
			return errors.Errorf("found the wrong document for _id %d", id)
		}
	}
	tm.StopTimer()

	return coll.Drop(ctx)
}

func SingleInsertSmallDocument(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll := getCollection()

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		if _, err := coll.InsertOne(ctx, smallDocument(i)); err != nil {
			return err
		}
	}
	tm.StopTimer()

	n, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n != int64(iters) {
		return errors.Errorf("inserted %d documents, collection holds %d", iters, n)
	}
	return coll.Drop(ctx)
}
