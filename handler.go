// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

import (
	"fmt"

	"github.com/exah/ya-fetch/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// The zero value is an empty group ready for use. A HandlerGroup must
// be fully populated before its Client starts executing requests, and
// may not be modified afterward.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler
// chain for a specific event type. It panics if h is nil or evt is not
// a known event.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("yafetch: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic(fmt.Sprintf("yafetch: unknown event %d", int(evt)))
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, e)
	}
}

func run(chain []Handler, evt Event, e *request.Execution) {
	for _, h := range chain {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of an event during a request
// execution. Handlers are for cross-cutting instrumentation installed
// once on a client; for per-request behavior, use the callback fields
// on request.Options instead.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with the appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
