// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	ExecutionTimeout = 5 * time.Minute
	StandardRuntime  = time.Minute
	MinimumRuntime   = 10 * time.Second
	MinIterations    = 100

	ten         = 10
	hundred     = ten * ten
	thousand    = ten * hundred
	tenThousand = ten * thousand
)

// TimerManager is the subset of *testing.B a case uses to exclude its setup from the measurement.
type TimerManager interface {
	ResetTimer()
	StartTimer()
	StopTimer()
}

type BenchCase func(context.Context, TimerManager, int) error
type BenchFunction func(*testing.B)

func WrapCase(bench BenchCase) BenchFunction {
	name := getName(bench)
	return func(b *testing.B) {
		ctx := context.Background()
		b.ResetTimer()
		err := bench(ctx, b, b.N)
		require.NoError(b, err, "case='%s'", name)
	}
}

// RunAll runs every registered case and returns their results in order.
func RunAll(ctx context.Context) []*BenchResult {
	cases := getAllCases()
	out := make([]*BenchResult, 0, len(cases))
	for _, c := range cases {
		if ctx.Err() != nil {
			break
		}
		out = append(out, c.Run(ctx))
	}
	return out
}

func getAllCases() []*CaseDefinition {
	return []*CaseDefinition{
		{
			Bench:   CanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   GlobalCanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   SingleFindOneByID,
			Count:   tenThousand,
			Size:    smallDocSize * tenThousand,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SingleInsertSmallDocument,
			Count:   tenThousand,
			Size:    smallDocSize * tenThousand,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FindManyIterate,
			Count:   tenThousand,
			Size:    smallDocSize * tenThousand,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SliceWindowIterate,
			Count:   thousand,
			Size:    smallDocSize * windowSize * thousand,
			Runtime: StandardRuntime,
		},
		{
			Bench:   IndexLookup,
			Count:   thousand,
			Size:    smallDocSize * thousand,
			Runtime: StandardRuntime,
		},
		{
			Bench:   CountWithLimitAndSkip,
			Count:   thousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   ConcurrentClonedCursors,
			Count:   hundred,
			Size:    smallDocSize * corpusSize * hundred,
			Runtime: StandardRuntime,
		},
	}
}
