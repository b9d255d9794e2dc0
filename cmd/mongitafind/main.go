// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command mongitafind loads extended JSON documents, one per line, into an in-memory collection and
// runs a single query against them.
//
//	mongitafind -filter '{"age": {"$gt": 30}}' -sort age:-1 -slice 0:10 people.json
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/pretty"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongita/mongo"
	"github.com/ikmak/mongita/mongo/options"
)

const (
	envLogLevel = "MONGITA_LOG_LEVEL"
	envSort     = "MONGITA_SORT"
	envLimit    = "MONGITA_LIMIT"
	envSkip     = "MONGITA_SKIP"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
		os.Exit(2)
	}

	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	input       string
	filter      string
	sort        string
	slice       string
	limit       int64
	skip        int64
	index       int64
	count       bool
	countWindow bool
	logLevel    logrus.Level
}

func parseConfig(args []string, getenv func(string) string) (*config, error) {
	limit, err := envInt(getenv, envLimit)
	if err != nil {
		return nil, err
	}
	skip, err := envInt(getenv, envSkip)
	if err != nil {
		return nil, err
	}
	level := logrus.WarnLevel
	if s := getenv(envLogLevel); s != "" {
		if level, err = logrus.ParseLevel(s); err != nil {
			return nil, errors.Wrapf(err, "%s", envLogLevel)
		}
	}

	cfg := &config{input: "-", logLevel: level}
	fs := flag.NewFlagSet("mongitafind", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.filter, "filter", "{}", "query filter as extended JSON")
	fs.StringVar(&cfg.sort, "sort", getenv(envSort), "sort keys, e.g. name:1,age:-1")
	fs.Int64Var(&cfg.limit, "limit", limit, "maximum number of documents to return, 0 for no limit")
	fs.Int64Var(&cfg.skip, "skip", skip, "number of documents to skip")
	fs.StringVar(&cfg.slice, "slice", "", "window of the results as start:stop")
	fs.Int64Var(&cfg.index, "index", -1, "print only the document at this offset")
	fs.BoolVar(&cfg.count, "count", false, "print the number of matching documents")
	fs.BoolVar(&cfg.countWindow, "count-window", false, "with -count, honour -skip, -limit and -slice")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		cfg.input = fs.Arg(0)
	}
	return cfg, nil
}

func envInt(getenv func(string) string, key string) (int64, error) {
	s := getenv(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return n, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer,
	getenv func(string) string) error {

	cfg, err := parseConfig(args, getenv)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.logLevel)

	in := stdin
	if cfg.input != "-" {
		file, err := os.Open(cfg.input)
		if err != nil {
			return errors.Wrapf(err, "cannot open file (%s)", cfg.input)
		}
		defer file.Close()
		in = file
	}

	coll := mongo.NewClient(options.Client().SetLogger(logger)).Database("mongitafind").Collection("input")
	n, err := loadDocuments(ctx, coll, in)
	if err != nil {
		return err
	}
	logger.WithField("documents", n).Info("loaded input")

	cursor, err := buildCursor(ctx, coll, cfg)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	switch {
	case cfg.count:
		count, err := cursor.Count(ctx, cfg.countWindow)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, count)
		return err
	case cfg.index >= 0:
		doc, err := cursor.Index(ctx, cfg.index)
		if err != nil {
			return err
		}
		return writeDocument(stdout, doc)
	}

	for cursor.Next(ctx) {
		if err := writeDocument(stdout, cursor.Current); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// loadDocuments inserts every non-blank line of r into coll.
func loadDocuments(ctx context.Context, coll *mongo.Collection, r io.Reader) (int, error) {
	var docs []interface{}
	lineNumber := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		var doc bson.D
		if err := bson.UnmarshalExtJSON([]byte(line), false, &doc); err != nil {
			return 0, errors.Wrapf(err, "error parsing line %d", lineNumber)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func buildCursor(ctx context.Context, coll *mongo.Collection, cfg *config) (*mongo.Cursor, error) {
	var filter bson.D
	if err := bson.UnmarshalExtJSON([]byte(cfg.filter), false, &filter); err != nil {
		return nil, errors.Wrap(err, "parsing -filter")
	}

	opts := options.Find().SetLimit(cfg.limit).SetSkip(cfg.skip)
	if cfg.sort != "" {
		spec, err := parseSort(cfg.sort)
		if err != nil {
			return nil, err
		}
		opts.SetSort(spec)
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if cfg.slice == "" {
		return cursor, nil
	}

	r, err := parseRange(cfg.slice)
	if err != nil {
		return nil, err
	}
	return cursor.Slice(r)
}

func writeDocument(w io.Writer, doc bson.Raw) error {
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(out))
	return err
}
