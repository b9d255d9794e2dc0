// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command mongitabench runs every benchmark case and writes the throughput metrics as JSON.
//
//	mongitabench -output perf.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ikmak/mongita/benchmark"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), benchmark.ExecutionTimeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("mongitabench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "", "write results to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(stderr)

	results := benchmark.RunAll(ctx)

	var failed int
	perf := []interface{}{}
	for _, res := range results {
		log.WithField("case", res.Name).Info(res.String())
		if res.HasErrors() {
			failed++
			log.WithField("case", res.Name).Error("case reported errors")
			continue
		}
		out, err := res.PerfFormat()
		if err != nil {
			return errors.Wrapf(err, "formatting %s", res.Name)
		}
		perf = append(perf, out...)
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(perf); err != nil {
		return errors.Wrap(err, "writing results")
	}

	if failed > 0 {
		return errors.Errorf("%d of %d cases reported errors", failed, len(results))
	}
	return nil
}
