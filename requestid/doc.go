// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package requestid stamps request attempts with unique tracing ids.
// Install the Handler in a client's handler group and every attempt
// carries a fresh UUID in its X-Request-ID header:
//
//	handlers := &yafetch.HandlerGroup{}
//	requestid.NewHandler().Install(handlers)
//	cl := &yafetch.Client{Handlers: handlers}
//
// The stamp happens before the OnRequest callback runs, so callbacks
// can read the current attempt's id with FromExecution.
package requestid
