// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package yafetch provides a composable HTTP request client with lazy
results, lifecycle callbacks and retry support within a small and
familiar interface.

Create a Client around a base configuration to begin making requests.
Requests are opened by the verb methods and settle when a decode
operation is invoked on the Pending result:

	api := yafetch.New(request.Options{
		Base:   "https://api.example.com",
		Header: http.Header{"Authorization": {"Bearer " + token}},
	})

	var post Post
	err := api.Get(ctx, "/posts/1").JSON(&post)
	...
	text, err := api.Post(ctx, "/posts", request.Options{
		JSON: map[string]string{"title": "hello"},
	}).Text()

Derive narrower instances from a shared one with Extend. The derived
instance concatenates paths and unions headers and parameters with the
parent, and shares the parent's transport and policies:

	posts := api.Extend(request.Options{Path: "/posts"})
	err := posts.Get(ctx, "/1").JSON(&post) // GET /posts/1

For control over how requests are sent on the wire, use a custom
HTTPDoer. For example, use a standard library HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &yafetch.Client{
		HTTPDoer: doer,
	}

For control over the client's retry decisions and timing, create a
custom retry policy using components from package retry:

	retryWaiter := retry.NewRetryAfterWaiter(retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now()))
	retryPolicy := retry.NewPolicy(retry.DefaultDecider, retryWaiter)
	client := &yafetch.Client{
		RetryPolicy: retryPolicy,
	}

For control over individual attempt deadlines, set a Timeout in the
configuration or a timeout policy on the client:

	client := &yafetch.Client{
		TimeoutPolicy: timeout.Fixed(10 * time.Second),
	}

Per-request behavior, such as mutating the outgoing request, rejecting
responses, or recovering failures, lives in the callback fields of
request.Options; see that package for details. To hook into the
fine-grained details of the execution loop from the outside, for
instrumentation shared by all requests, install a handler into the
appropriate handler chain:

	logger := log.New(os.Stdout, "", log.LstdFlags)
	handlers := &yafetch.HandlerGroup{}
	handlers.PushBack(yafetch.BeforeAttempt, yafetch.HandlerFunc(
		func(_ yafetch.Event, e *request.Execution) {
			logger.Printf("attempt %d to %s", e.Attempt, e.Request.URL.String())
		})
	)
	client := &yafetch.Client{
		Handlers: handlers,
	}

Ready-made handlers live in the plugin packages logging, metrics and
requestid; the ratelimit package throttles at the HTTPDoer level
instead.

Package yafetch provides basic interfaces for each method of the
client (Requester, Getter, Header, Poster, Putter, Patcher, Deleter
and IdleCloser); a combined interface that composes all the basic
methods (Executor); a utility function for promoting a Requester into
an Executor (Inflate); and package-level verb functions that issue
requests through DefaultClient.
*/
package yafetch
