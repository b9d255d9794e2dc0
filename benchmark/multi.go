// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/ikmak/mongita/mongo"
	"github.com/ikmak/mongita/mongo/options"
)

const clonedCursorWorkers = 4

func drainCursor(ctx context.Context, cur *mongo.Cursor) (int, error) {
	defer cur.Close(ctx)

	counter := 0
	for cur.Next(ctx) {
		counter++
	}
	return counter, cur.Err()
}

func FindManyIterate(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, iters)
	if err != nil {
		return err
	}

	tm.ResetTimer()

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	counter, err := drainCursor(ctx, cursor)
	if err != nil {
		return err
	}
	if counter != iters {
		return errors.New("problem iterating cursors")
	}

	tm.StopTimer()

	return coll.Drop(ctx)
}

func SliceWindowIterate(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, corpusSize)
	if err != nil {
		return err
	}
	base, err := coll.Find(ctx, nil, options.Find().SetSort(bson.D{{Key: "score", Value: 1}}))
	if err != nil {
		return err
	}

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		start := int64(i % (corpusSize - windowSize))
		page, err := base.Slice(mongo.Between(start, start+windowSize))
		if err != nil {
			return err
		}
		counter, err := drainCursor(ctx, page)
		if err != nil {
			return err
		}
		if counter != windowSize {
			return errors.Errorf("window at %d returned %d documents", start, counter)
		}
	}
	tm.StopTimer()

	return coll.Drop(ctx)
}

func IndexLookup(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, corpusSize)
	if err != nil {
		return err
	}
	base, err := coll.Find(ctx, nil, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return err
	}

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		k := int64(i % corpusSize)
		doc, err := base.Index(ctx, k)
		if err != nil {
			return err
		}
		if want := int32(corpusSize - 1 - k); doc.Lookup("_id").Int32() != want {
			return errors.Errorf("index %d returned _id %d, want %d", k, doc.Lookup("_id").Int32(), want)
		}
	}
	tm.StopTimer()

	return coll.Drop(ctx)
}

func CountWithLimitAndSkip(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, corpusSize)
	if err != nil {
		return err
	}

	const limit = 20
	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		opts := options.Find().SetSkip(int64(i % windowSize)).SetLimit(limit)
		cur, err := coll.Find(ctx, bson.D{{Key: "group", Value: int32(i % groupCount)}}, opts)
		if err != nil {
			return err
		}
		n, err := cur.Count(ctx, true)
		if err != nil {
			return err
		}
		if n != limit {
			return errors.Errorf("counted %d documents, want %d", n, limit)
		}
	}
	tm.StopTimer()

	return coll.Drop(ctx)
}

// ConcurrentClonedCursors drains clones of one cursor from several goroutines at once.
func ConcurrentClonedCursors(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	coll, err := loadCorpus(ctx, corpusSize)
	if err != nil {
		return err
	}
	base, err := coll.Find(ctx, nil, options.Find().SetSort(bson.D{{Key: "score", Value: -1}}))
	if err != nil {
		return err
	}

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < clonedCursorWorkers; w++ {
			clone := base.Clone()
			g.Go(func() error {
				counter, err := drainCursor(gctx, clone)
				if err != nil {
					return err
				}
				if counter != corpusSize {
					return errors.Errorf("cloned cursor returned %d documents", counter)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	tm.StopTimer()

	return coll.Drop(ctx)
}
