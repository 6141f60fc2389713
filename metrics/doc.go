// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics instruments request executions with Prometheus
// metrics. Install the Handler in a client's handler group and every
// call made through that client feeds the collectors:
//
//	handlers := &yafetch.HandlerGroup{}
//	metrics.NewHandler().Install(handlers)
//	cl := &yafetch.Client{Handlers: handlers}
package metrics
