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

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasesRunOnce(t *testing.T) {
	ctx := context.Background()
	for _, c := range getAllCases() {
		c := c
		t.Run(c.Name(), func(t *testing.T) {
			t.Parallel()
			require.NoError(t, c.Bench(ctx, trialTimer{}, 3))
		})
	}
}

func TestCaseDefinitionRun(t *testing.T) {
	c := &CaseDefinition{Bench: CanaryIncCase, Count: 10, Size: 100}
	res := c.Run(context.Background())

	assert.Equal(t, "CanaryIncCase", res.Name)
	assert.Equal(t, MinIterations, res.Trials)
	assert.Len(t, res.Raw, MinIterations)
	assert.False(t, res.HasErrors())

	perf, err := res.PerfFormat()
	require.NoError(t, err)
	assert.Len(t, perf, 2, "a case with a data size reports adjusted throughput")
}

func TestCaseDefinitionRunReportsErrors(t *testing.T) {
	failing := func(context.Context, TimerManager, int) error { return errors.New("boom") }
	c := &CaseDefinition{Bench: failing, Count: 1}
	res := c.Run(context.Background())

	assert.True(t, res.HasErrors())
	assert.Contains(t, res.errReport(), "boom")
}

func TestBenchResultSummary(t *testing.T) {
	res := &BenchResult{Name: "x", Operations: 10}
	for _, ms := range []int{4, 1, 3, 2, 5} {
		res.Raw = append(res.Raw, Result{Duration: time.Duration(ms) * time.Second, Iterations: 10})
	}

	s, err := res.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 4.5, s.P90, 0.5)

	perf, err := res.PerfFormat()
	require.NoError(t, err)
	require.Len(t, perf, 1)
	metrics := perf[0].(map[string]interface{})["metrics"].([]Metric)
	assert.Equal(t, Metric{Name: "ops_per_second", Value: 10.0 / 3.0}, metrics[1])

	_, err = (&BenchResult{Name: "empty"}).Summary()
	assert.Error(t, err)
}

func TestRunAllStopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, RunAll(ctx))
}
