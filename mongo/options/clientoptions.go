// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"github.com/sirupsen/logrus"
)

// ClientOptions represents all possible options to configure a client.
type ClientOptions struct {
	// Logger receives the client's log output. The default is logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Client creates a new ClientOptions instance.
func Client() *ClientOptions {
	return &ClientOptions{}
}

// SetLogger specifies the logger the client and its databases and collections log to.
func (c *ClientOptions) SetLogger(l logrus.FieldLogger) *ClientOptions {
	c.Logger = l
	return c
}

// MergeClientOptions combines the argued ClientOptions into a single ClientOptions in a last-one-wins fashion
func MergeClientOptions(opts ...*ClientOptions) *ClientOptions {
	c := Client()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.Logger != nil {
			c.Logger = opt.Logger
		}
	}

	return c
}
