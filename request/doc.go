// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Options (a composable request
configuration), Plan (the materialized form of a configuration), and
Execution (the state of a Plan execution). These three types are
fundamental to issuing requests with the yafetch client.

Options is a partial, inheritable configuration. Options values combine
with Merge, which unions headers and query parameters key-by-key with
the child configuration winning collisions, concatenates path
fragments, and lets child scalar fields override parent ones:

	base := request.Options{
		Base:   "https://api.example.com",
		Header: http.Header{"Authorization": {token}},
	}
	call := request.Merge(base, request.Options{
		Path:   "/posts",
		Params: map[string]any{"userId": 1},
	})

Merge is pure: it never mutates its inputs and the merged value never
aliases an input's containers, so base configurations can be shared
between goroutines and extended instances without copying.

A Plan is what a merged configuration materializes into: an absolute
URL with the serialized query appended, finalized headers, and a
pre-buffered body. A Plan describes a logical request whose execution
may involve several attempts if retry is necessary; each attempt
derives a fresh http.Request from the Plan via ToRequest, which is what
lets retried attempts replay the body and pick up headers refreshed by
an OnRequest callback. Materialization fails with *InvalidTargetError
when no absolute target can be resolved:

	p, err := request.NewPlan(ctx, call)
	...

The plan context bounds the entire logical request: every attempt,
every callback, and every retry pause. It is distinct from the
per-attempt deadline configured through Options.Timeout or the
client's timeout policy; exceeding a per-attempt deadline is
potentially retryable, cancellation of the plan context is not.

An Execution records the state of one Plan execution. It is the value
handed to configuration callbacks (OnRequest, OnResponse, OnSuccess,
OnFailure), retry deciders and delay functions, and event handlers, and
it is the settled value behind the pending result returned to the
caller. You will typically not allocate Execution values yourself; work
with the ones handed out by the client's execution loop.
*/
package request
