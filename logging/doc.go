// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging instruments request executions with structured log
// events through zerolog. The core client never logs on its own;
// install the Handler in a client's handler group to make every call,
// attempt by attempt, visible in the application's log stream:
//
//	handlers := &yafetch.HandlerGroup{}
//	logging.NewHandler(log.Logger).Install(handlers)
//	cl := &yafetch.Client{Handlers: handlers}
package logging
