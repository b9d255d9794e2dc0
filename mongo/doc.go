// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongo provides an embedded, in-memory document store with a MongoDB-style API.
//
// Basic usage starts with creating a Client and getting a Collection from one of its databases:
//
//    client := mongo.NewClient()
//    collection := client.Database("baz").Collection("qux")
//
// A Collection can be used to insert documents:
//
//    res, err := collection.InsertOne(context.Background(), bson.D{{"hello", "world"}})
//    if err != nil { log.Fatal(err) }
//    id := res.InsertedID()
//
// Find returns a lazy Cursor. Its sort, limit and skip can be changed, and it can be sliced, until
// the first document is requested; the query runs exactly once, on the first call to Next:
//
//    cur, err := collection.Find(context.Background(), bson.D{{"status", "active"}})
//    if err != nil { log.Fatal(err) }
//    page, err := cur.Slice(mongo.Between(20, 30))
//    if err != nil { log.Fatal(err) }
//    defer page.Close(context.Background())
//    for page.Next(context.Background()) {
//       var elem bson.M
//       if err := page.Decode(&elem); err != nil { log.Fatal(err) }
//       // do something with elem....
//    }
//    if err := page.Err(); err != nil {
//        log.Fatal(err)
//    }
//
// Any type implementing QueryExecutor can back a Cursor created with NewCursor.
//
// Methods that only return a single document will return a *SingleResult:
//
//    var result bson.M
//    err := collection.FindOne(context.Background(), bson.D{{"hello", "world"}}).Decode(&result)
//    if err != nil { log.Fatal(err) }
//    // do something with result...
package mongo
