// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package yafetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/exah/ya-fetch/request"
	"github.com/exah/ya-fetch/retry"
	"github.com/exah/ya-fetch/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client is a composable HTTP request client with retry support. Its
// zero value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, retry.DefaultPolicy as the retry policy, no attempt
// timeouts, an empty base configuration, and an empty handler group.
//
// Client's HTTPDoer typically has internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines
// provided its fields are not modified after first use.
//
// A Client is higher-level than its HTTPDoer. The HTTPDoer is
// responsible for all details of sending one HTTP request and
// receiving the response (redirects included), while Client builds on
// top of the HTTPDoer's feature set:
//
// • Client carries a base configuration which every request extends,
// so a target origin, shared headers and shared callbacks are declared
// once (see New and Extend);
//
// • Client materializes each call's merged configuration into a
// replayable plan, reads and buffers the entire response body, and
// hands back a lazy Pending result with typed decode operations;
//
// • Client retries failed attempts using a customizable retry policy,
// respecting any Retry-After directive the server sends when the
// default policy is in play;
//
// • Client bounds individual attempts with per-attempt deadlines from
// the merged configuration's Timeout or the client's timeout policy;
//
// • Client runs the configuration's OnRequest, OnResponse, OnSuccess
// and OnFailure callbacks at the corresponding points of the request
// lifecycle; and
//
// • Client invokes installed event handlers at designated plug-in
// points within the attempt/retry loop, allowing instrumentation to be
// mixed in from outside packages.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// Options is the client's base configuration. Every request issued
	// through the client starts from it; the path argument and the
	// call-site options extend it via request.Merge.
	Options request.Options
	// RetryPolicy decides when to retry failed attempts and how long
	// to pause after a failed attempt before retrying. The merged
	// configuration's Retry and Delay fields override the two halves
	// of the policy for an individual request.
	//
	// If RetryPolicy is nil, retry.DefaultPolicy is used.
	RetryPolicy retry.Policy
	// TimeoutPolicy sets deadlines on individual request attempts. It
	// is only consulted for requests whose merged configuration has no
	// Timeout of its own.
	//
	// If TimeoutPolicy is nil, attempts run without their own
	// deadline, bounded only by the caller's context.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// DefaultClient is the client used by the package-level verb
// functions. It is a zero value Client and shares http.DefaultClient
// with the net/http package.
var DefaultClient = &Client{}

// New constructs a Client whose base configuration is the merge of
// opts, left to right.
//
// The transport, policies and handlers of the new client are left at
// their zero values; assign the corresponding fields to change them.
func New(opts ...request.Options) *Client {
	return &Client{Options: request.Merge(opts...)}
}

// Extend derives a new Client whose base configuration is this
// client's base configuration merged with opts. The derived client
// shares the parent's transport, retry and timeout policies, and
// handler group; only the configuration is extended.
//
// Deriving is cheap, so narrowly scoped clients (one per API resource,
// say) are idiomatic:
//
//	api := yafetch.New(request.Options{Base: "https://example.com"})
//	posts := api.Extend(request.Options{Path: "/posts"})
func (c *Client) Extend(opts ...request.Options) *Client {
	c2 := *c
	c2.Options = request.Merge(append([]request.Options{c.Options}, opts...)...)
	return &c2
}

// Request opens a request to path, extending the client's base
// configuration with opts, and returns the Pending result. The HTTP
// method comes from the merged configuration; an unset method means
// GET.
//
// The returned Pending is lazy: nothing is sent until one of its
// settling operations is invoked. The context bounds the entire
// request lifecycle, attempts and retry waits included, and may not be
// nil.
func (c *Client) Request(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, "", path, opts)
}

// Get opens a GET request to path. See Request for the merge and
// dispatch semantics.
func (c *Client) Get(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodGet, path, opts)
}

// Head opens a HEAD request to path. See Request for the merge and
// dispatch semantics.
func (c *Client) Head(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodHead, path, opts)
}

// Post opens a POST request to path. Provide the payload through the
// JSON or Body field of an option. See Request for the merge and
// dispatch semantics.
func (c *Client) Post(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodPost, path, opts)
}

// Put opens a PUT request to path. See Request for the merge and
// dispatch semantics.
func (c *Client) Put(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodPut, path, opts)
}

// Patch opens a PATCH request to path. See Request for the merge and
// dispatch semantics.
func (c *Client) Patch(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodPatch, path, opts)
}

// Delete opens a DELETE request to path. See Request for the merge and
// dispatch semantics.
func (c *Client) Delete(ctx context.Context, path string, opts ...request.Options) *Pending {
	return c.open(ctx, http.MethodDelete, path, opts)
}

// open merges the client's base configuration, the path fragment, and
// the call-site options into the configuration the request will be
// materialized from. A non-empty method is the verb method's and wins
// over any method in opts.
func (c *Client) open(ctx context.Context, method, path string, opts []request.Options) *Pending {
	merged := request.Merge(c.Options, request.Options{Path: path})
	for i := range opts {
		merged = request.Merge(merged, opts[i])
	}
	if method != "" {
		merged.Method = method
	}
	return &Pending{client: c, ctx: ctx, opts: merged}
}

// run executes one request to completion: it materializes the merged
// configuration into a plan, drives the attempt/retry loop, and
// finalizes the outcome through the OnSuccess and OnFailure callbacks.
//
// The returned error, nil included, is always the same value as the
// execution's Err field. The execution is nil only when the
// configuration could not be materialized, in which case no attempt
// was made and no event fired.
func (c *Client) run(ctx context.Context, opts request.Options) (*request.Execution, error) {
	plan, err := request.NewPlan(ctx, opts)
	if err != nil {
		return nil, err
	}
	e := &request.Execution{
		Plan:    plan,
		Options: opts,
	}

	doer := c.doer()

	retryPolicy := c.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}
	decide := retryPolicy.Decide
	if opts.Retry != nil {
		decide = opts.Retry
	}
	delay := retryPolicy.Wait
	if opts.Delay != nil {
		delay = opts.Delay
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	var vetoed bool
RetryLoop:
	for {
		vetoed = c.attempt(e, doer, handlers)
		var timeoutErr *TimeoutError
		if errors.As(e.Err, &timeoutErr) {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, e)
		}
		if e.Err == nil && e.Response != nil {
			e.Err = classify(e)
		}
		handlers.run(AfterAttempt, e)
		if vetoed || plan.Context().Err() != nil {
			break
		}
		if !decide(e) {
			break
		}
		timer := time.NewTimer(delay(e))
		select {
		case <-timer.C:
		case <-plan.Context().Done():
			timer.Stop()
			e.Err = plan.Context().Err()
			break RetryLoop
		}
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()

	if e.Err == nil && opts.OnSuccess != nil {
		if err := opts.OnSuccess(e); err != nil {
			e.Err = err
		}
	}
	if e.Err != nil && !vetoed && opts.OnFailure != nil {
		e.Err = opts.OnFailure(e, e.Err)
	}

	handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

// attempt makes a single HTTP request attempt: it derives a fresh
// request from the plan, arms the attempt deadline, runs the
// BeforeAttempt handlers and the OnRequest callback, sends the request
// and buffers the response body.
//
// A true return means the OnRequest callback vetoed the attempt before
// the transport was invoked; the veto error is recorded on the
// execution.
func (c *Client) attempt(e *request.Execution, doer HTTPDoer, handlers *HandlerGroup) (vetoed bool) {
	ctx := e.Plan.Context()
	limit := c.attemptTimeout(e)
	var attemptCtx context.Context
	var cancel context.CancelFunc
	if limit > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, limit)
	} else {
		attemptCtx, cancel = context.WithCancel(ctx)
	}
	// Cancelling after the body is buffered is safe, and guarantees the
	// attempt's resources are released even if a handler panics.
	defer cancel()

	e.Request = e.Plan.ToRequest(attemptCtx)
	handlers.run(BeforeAttempt, e)
	if f := e.Options.OnRequest; f != nil {
		if err := f(e); err != nil {
			e.Err = err
			return true
		}
	}

	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = attemptErr(err, attemptCtx, ctx, limit, e.Attempt)
		return false
	}
	if err = readBody(e, handlers); err != nil {
		e.Err = attemptErr(err, attemptCtx, ctx, limit, e.Attempt)
	}
	return false
}

func readBody(e *request.Execution, handlers *HandlerGroup) error {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	return err
}

// attemptErr maps a transport or body-read error to the error recorded
// on the execution. An error caused by expiry of the attempt's own
// deadline becomes a *TimeoutError. An error caused by the caller's
// context, like any other transport error, passes through as-is so
// external cancellation keeps its own semantics.
func attemptErr(err error, attemptCtx, ctx context.Context, limit time.Duration, attempt int) error {
	if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return &TimeoutError{Limit: limit, Attempt: attempt}
	}
	return err
}

// classify turns an attempt that produced a response into a success or
// a failure. The configuration's OnResponse callback decides when set;
// otherwise any 2xx status is a success and everything else fails with
// a *ResponseError.
func classify(e *request.Execution) error {
	if f := e.Options.OnResponse; f != nil {
		return f(e)
	}
	if code := e.StatusCode(); code >= 200 && code < 300 {
		return nil
	}
	return &ResponseError{Execution: e}
}

// attemptTimeout resolves the deadline for the next attempt. The
// merged configuration's Timeout wins, then the client's timeout
// policy. A non-positive result leaves the attempt without its own
// deadline.
func (c *Client) attemptTimeout(e *request.Execution) time.Duration {
	if d := e.Options.Timeout; d > 0 {
		return d
	}
	if c.TimeoutPolicy != nil {
		return c.TimeoutPolicy.Timeout(e)
	}
	return 0
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
//
// If the HTTPDoer does have a CloseIdleConnections method, then the
// effect of this method depends entirely on its implementation in the
// HTTPDoer. For example, the http.Client type forwards the call to its
// Transport, but only if the Transport itself has a
// CloseIdleConnections method (otherwise it does nothing).
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

// Request opens a request to path using DefaultClient. See
// Client.Request.
func Request(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Request(ctx, path, opts...)
}

// Get opens a GET request to path using DefaultClient. See Client.Get.
func Get(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Get(ctx, path, opts...)
}

// Head opens a HEAD request to path using DefaultClient. See
// Client.Head.
func Head(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Head(ctx, path, opts...)
}

// Post opens a POST request to path using DefaultClient. See
// Client.Post.
func Post(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Post(ctx, path, opts...)
}

// Put opens a PUT request to path using DefaultClient. See Client.Put.
func Put(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Put(ctx, path, opts...)
}

// Patch opens a PATCH request to path using DefaultClient. See
// Client.Patch.
func Patch(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Patch(ctx, path, opts...)
}

// Delete opens a DELETE request to path using DefaultClient. See
// Client.Delete.
func Delete(ctx context.Context, path string, opts ...request.Options) *Pending {
	return DefaultClient.Delete(ctx, path, opts...)
}
